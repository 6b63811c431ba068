package service

import (
	"context"
	"errors"
	"testing"

	"CineSync/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) addOrder(t *testing.T, userID uint64, items ...*model.OrderItem) {
	t.Helper()
	var total int64
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	order := &model.Order{OrderUUID: uuid.New().String(), UserID: userID, Total: total}
	require.NoError(t, f.orders.CreateOrderWithItems(context.Background(), order, items))
}

func TestTrendingForState_TotalActivityWeighting(t *testing.T) {
	f := newFixture(t)
	ga := f.addState(t, "Georgia", "GA")
	movie := f.addMovie(t, "Inception", 15)
	ctx := context.Background()
	_, err := f.ledger.UpsertAndIncrement(ctx, movie.ID, ga.ID, 7, 3)
	require.NoError(t, err)

	result, err := f.trending("Georgia").TrendingForState(ctx, ga.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, "Georgia", result.State.Name)
	assert.Equal(t, "GA", result.State.Abbreviation)
	require.Len(t, result.Movies, 1)
	entry := result.Movies[0]
	assert.Equal(t, int64(7), entry.PurchaseCount)
	assert.Equal(t, int64(3), entry.ViewCount)
	assert.InDelta(t, 7.3, entry.TotalActivity, 1e-9)
	assert.Equal(t, int64(15), entry.Price)
}

func TestTrendingForState_UnknownState(t *testing.T) {
	f := newFixture(t)

	_, err := f.trending("Georgia").TrendingForState(context.Background(), 404, 10)
	assert.True(t, errors.Is(err, ErrStateNotFound))
}

func TestTrendingForState_NoActivityIsEmptyList(t *testing.T) {
	f := newFixture(t)
	ga := f.addState(t, "Georgia", "GA")

	result, err := f.trending("Georgia").TrendingForState(context.Background(), ga.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, result.Movies)
}

func TestGlobalTrending_SkipsDeletedMovies(t *testing.T) {
	f := newFixture(t)
	ga := f.addState(t, "Georgia", "GA")
	tx := f.addState(t, "Texas", "TX")
	movie := f.addMovie(t, "Inception", 15)
	ctx := context.Background()
	_, err := f.ledger.UpsertAndIncrement(ctx, movie.ID, ga.ID, 4, 1)
	require.NoError(t, err)
	_, err = f.ledger.UpsertAndIncrement(ctx, movie.ID, tx.ID, 2, 0)
	require.NoError(t, err)
	// 目录里已不存在的电影留有计数
	_, err = f.ledger.UpsertAndIncrement(ctx, 999, ga.ID, 100, 0)
	require.NoError(t, err)

	movies, err := f.trending("Georgia").GlobalTrending(ctx, 20)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, movie.ID, movies[0].ID)
	assert.Equal(t, int64(6), movies[0].TotalPurchases)
	assert.Equal(t, int64(1), movies[0].TotalViews)
	assert.Equal(t, int64(2), movies[0].StateCount)
}

func TestCompareStates_ReportsFailingSide(t *testing.T) {
	f := newFixture(t)
	ga := f.addState(t, "Georgia", "GA")
	svc := f.trending("Georgia")
	ctx := context.Background()

	_, err := svc.CompareStates(ctx, ga.ID, 404, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStateNotFound))
	var sideErr *SideError
	require.True(t, errors.As(err, &sideErr))
	assert.Equal(t, 2, sideErr.Side)

	_, err = svc.CompareStates(ctx, 404, ga.ID, 10)
	require.True(t, errors.As(err, &sideErr))
	assert.Equal(t, 1, sideErr.Side)
}

func TestCompareStates_BothSidesReturned(t *testing.T) {
	f := newFixture(t)
	ga := f.addState(t, "Georgia", "GA")
	tx := f.addState(t, "Texas", "TX")
	movie := f.addMovie(t, "Inception", 15)
	ctx := context.Background()
	_, err := f.ledger.UpsertAndIncrement(ctx, movie.ID, ga.ID, 5, 0)
	require.NoError(t, err)

	result, err := f.trending("Georgia").CompareStates(ctx, ga.ID, tx.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, "Georgia", result.State1.State.Name)
	assert.Len(t, result.State1.Movies, 1)
	assert.Equal(t, "Texas", result.State2.State.Name)
	assert.Empty(t, result.State2.Movies)
}

func TestPersonalSummary_AnonymousUnauthorized(t *testing.T) {
	f := newFixture(t)

	_, err := f.trending("Georgia").PersonalSummary(context.Background(), 0, 10)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestPersonalSummary_AggregatesByMovie(t *testing.T) {
	f := newFixture(t)
	ga := f.addState(t, "Georgia", "GA")
	user := f.addUser(t, "alice", &ga.ID)
	m1 := f.addMovie(t, "Inception", 15)
	m2 := f.addMovie(t, "Avatar", 20)

	f.addOrder(t, user.ID, &model.OrderItem{MovieID: m1.ID, Price: 15, Quantity: 1})
	f.addOrder(t, user.ID,
		&model.OrderItem{MovieID: m1.ID, Price: 15, Quantity: 2},
		&model.OrderItem{MovieID: m2.ID, Price: 20, Quantity: 1})

	purchases, err := f.trending("Georgia").PersonalSummary(context.Background(), user.ID, 10)
	require.NoError(t, err)
	require.Len(t, purchases, 2)

	// 按总数量降序：m1 共3份在前
	assert.Equal(t, m1.ID, purchases[0].ID)
	assert.Equal(t, int64(3), purchases[0].TotalQuantity)
	assert.Equal(t, int64(45), purchases[0].TotalSpent)
	assert.Len(t, purchases[0].PurchaseDates, 2)

	assert.Equal(t, m2.ID, purchases[1].ID)
	assert.Equal(t, int64(1), purchases[1].TotalQuantity)
	assert.Equal(t, int64(20), purchases[1].TotalSpent)
}

func TestPersonalVsState_NoResolvableStateStillReturnsPersonal(t *testing.T) {
	f := newFixture(t)
	// 州表为空
	user := &model.User{Username: "alice"}
	require.NoError(t, f.db.Create(user).Error)
	m1 := f.addMovie(t, "Inception", 15)
	f.addOrder(t, user.ID, &model.OrderItem{MovieID: m1.ID, Price: 15, Quantity: 1})

	result, err := f.trending("Georgia").PersonalVsState(context.Background(), user.ID, 10)
	require.NoError(t, err)
	assert.Len(t, result.Personal, 1)
	assert.Nil(t, result.State)
	assert.Empty(t, result.Movies)
}

func TestPersonalVsState_ResolvedStateTrendingIncluded(t *testing.T) {
	f := newFixture(t)
	ga := f.addState(t, "Georgia", "GA")
	user := f.addUser(t, "alice", &ga.ID)
	m1 := f.addMovie(t, "Inception", 15)
	ctx := context.Background()
	_, err := f.ledger.UpsertAndIncrement(ctx, m1.ID, ga.ID, 2, 0)
	require.NoError(t, err)
	f.addOrder(t, user.ID, &model.OrderItem{MovieID: m1.ID, Price: 15, Quantity: 2})

	result, err := f.trending("Georgia").PersonalVsState(ctx, user.ID, 10)
	require.NoError(t, err)
	require.NotNil(t, result.State)
	assert.Equal(t, "Georgia", result.State.Name)
	assert.Len(t, result.Movies, 1)
	assert.Len(t, result.Personal, 1)
}

func TestOtherUsers_SkipsUsersWithoutPurchases(t *testing.T) {
	f := newFixture(t)
	ga := f.addState(t, "Georgia", "GA")
	me := f.addUser(t, "me", &ga.ID)
	buyer := f.addUser(t, "buyer", &ga.ID)
	f.addUser(t, "lurker", &ga.ID)
	m1 := f.addMovie(t, "Inception", 15)
	f.addOrder(t, buyer.ID, &model.OrderItem{MovieID: m1.ID, Price: 15, Quantity: 1})
	// 我自己的购买不得出现在结果里
	f.addOrder(t, me.ID, &model.OrderItem{MovieID: m1.ID, Price: 15, Quantity: 5})

	users, err := f.trending("Georgia").OtherUsers(context.Background(), nil, me.ID, 15, 5)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "buyer", users[0].Username)
	require.Len(t, users[0].Purchases, 1)
	assert.Equal(t, int64(1), users[0].Purchases[0].TotalQuantity)
}

func TestOtherUsers_StateFilterAndValidation(t *testing.T) {
	f := newFixture(t)
	ga := f.addState(t, "Georgia", "GA")
	tx := f.addState(t, "Texas", "TX")
	me := f.addUser(t, "me", &ga.ID)
	gaBuyer := f.addUser(t, "georgian", &ga.ID)
	txBuyer := f.addUser(t, "texan", &tx.ID)
	m1 := f.addMovie(t, "Inception", 15)
	f.addOrder(t, gaBuyer.ID, &model.OrderItem{MovieID: m1.ID, Price: 15, Quantity: 1})
	f.addOrder(t, txBuyer.ID, &model.OrderItem{MovieID: m1.ID, Price: 15, Quantity: 1})
	svc := f.trending("Georgia")
	ctx := context.Background()

	users, err := svc.OtherUsers(ctx, &tx.ID, me.ID, 15, 5)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "texan", users[0].Username)

	missing := tx.ID + 100
	_, err = svc.OtherUsers(ctx, &missing, me.ID, 15, 5)
	assert.True(t, errors.Is(err, ErrStateNotFound))

	_, err = svc.OtherUsers(ctx, nil, 0, 15, 5)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestResetPopularity_ClearsLedger(t *testing.T) {
	f := newFixture(t)
	ga := f.addState(t, "Georgia", "GA")
	movie := f.addMovie(t, "Inception", 15)
	ctx := context.Background()
	_, err := f.ledger.UpsertAndIncrement(ctx, movie.ID, ga.ID, 5, 5)
	require.NoError(t, err)

	require.NoError(t, f.trending("Georgia").ResetPopularity(ctx))

	rec, err := f.ledger.Get(ctx, movie.ID, ga.ID)
	require.NoError(t, err)
	assert.Nil(t, rec)
}
