package repository

import (
	"context"
	"errors"
	"testing"

	"CineSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreatePetition_DuplicateTitleCreatorRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewPetitionRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "alice")

	p := &model.Petition{Title: "Bring it back", Description: "classic", MovieTitle: "Heat", CreatedByID: user.ID, Status: model.PetitionStatusPending}
	require.NoError(t, repo.CreatePetition(ctx, p))

	dup := &model.Petition{Title: "again", Description: "please", MovieTitle: "Heat", CreatedByID: user.ID, Status: model.PetitionStatusPending}
	err := repo.CreatePetition(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestListPetitions_FilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewPetitionRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	low := &model.Petition{Title: "Add Heat", Description: "crime classic", MovieTitle: "Heat", CreatedByID: alice.ID, Status: model.PetitionStatusPending, VotesCount: 1}
	high := &model.Petition{Title: "Add Alien", Description: "sci-fi horror", MovieTitle: "Alien", CreatedByID: bob.ID, Status: model.PetitionStatusPending, VotesCount: 5}
	rejected := &model.Petition{Title: "Add Room", Description: "no", MovieTitle: "The Room", CreatedByID: bob.ID, Status: model.PetitionStatusRejected}
	require.NoError(t, repo.CreatePetition(ctx, low))
	require.NoError(t, repo.CreatePetition(ctx, high))
	require.NoError(t, repo.CreatePetition(ctx, rejected))

	petitions, total, err := repo.ListPetitions(ctx, PetitionFilter{Status: model.PetitionStatusPending}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, petitions, 2)
	assert.Equal(t, "Alien", petitions[0].MovieTitle)

	// 大小写不敏感的模糊搜索覆盖片名
	petitions, total, err = repo.ListPetitions(ctx, PetitionFilter{Search: "alien"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, petitions, 1)
	assert.Equal(t, "Alien", petitions[0].MovieTitle)
}

func TestVoteRoundTripAndRefreshCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewPetitionRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	p := &model.Petition{Title: "Add Heat", Description: "crime classic", MovieTitle: "Heat", CreatedByID: alice.ID, Status: model.PetitionStatusPending}
	require.NoError(t, repo.CreatePetition(ctx, p))

	require.NoError(t, repo.CreateVote(ctx, &model.PetitionVote{PetitionID: p.ID, UserID: alice.ID}))
	require.NoError(t, repo.CreateVote(ctx, &model.PetitionVote{PetitionID: p.ID, UserID: bob.ID}))

	// 一人一票
	err := repo.CreateVote(ctx, &model.PetitionVote{PetitionID: p.ID, UserID: alice.ID})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	count, err := repo.RefreshVotesCount(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.DeleteVote(ctx, p.ID, alice.ID))
	count, err = repo.RefreshVotesCount(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	v, err := repo.GetVote(ctx, p.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, v)

	votes, err := repo.ListRecentVotes(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, "bob", votes[0].Username)
}
