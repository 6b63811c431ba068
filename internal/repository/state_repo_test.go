package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListStates_OrderedByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewStateRepository(db)
	seedState(t, db, "Texas", "TX")
	seedState(t, db, "Georgia", "GA")
	seedState(t, db, "Alabama", "AL")

	states, err := repo.ListStates(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 3)
	assert.Equal(t, "Alabama", states[0].Name)
	assert.Equal(t, "Georgia", states[1].Name)
	assert.Equal(t, "Texas", states[2].Name)
}

func TestGetStateByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewStateRepository(db)
	seedState(t, db, "Georgia", "GA")

	s, err := repo.GetStateByName(context.Background(), "Georgia")
	require.NoError(t, err)
	assert.Equal(t, "GA", s.Abbreviation)

	_, err = repo.GetStateByName(context.Background(), "Atlantis")
	assert.Error(t, err)
}

func TestFirstState_EmptyTableYieldsNilNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewStateRepository(db)

	s, err := repo.FirstState(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestFirstState_LowestID(t *testing.T) {
	db := newTestDB(t)
	repo := NewStateRepository(db)
	first := seedState(t, db, "Texas", "TX")
	seedState(t, db, "Alabama", "AL")

	s, err := repo.FirstState(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, first.ID, s.ID)
}
