package service

import (
	"io"
	"testing"

	"CineSync/internal/model"
	"CineSync/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixture 服务层测试脚手架：内存SQLite + 真实仓储，不打桩
type fixture struct {
	db       *gorm.DB
	states   repository.StateRepository
	movies   repository.MovieRepository
	orders   repository.OrderRepository
	profiles repository.ProfileRepository
	ledger   repository.PopularityRepository
	logger   *logrus.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.State{},
		&model.UserProfile{},
		&model.Movie{},
		&model.Review{},
		&model.Rating{},
		&model.Order{},
		&model.OrderItem{},
		&model.MoviePopularity{},
		&model.ActivityEvent{},
		&model.Petition{},
		&model.PetitionVote{},
	))

	log := logrus.New()
	log.SetOutput(io.Discard)
	return &fixture{
		db:       db,
		states:   repository.NewStateRepository(db),
		movies:   repository.NewMovieRepository(db),
		orders:   repository.NewOrderRepository(db),
		profiles: repository.NewProfileRepository(db),
		ledger:   repository.NewPopularityRepository(db),
		logger:   log,
	}
}

func (f *fixture) resolver(defaultState string) *RegionResolver {
	return NewRegionResolver(f.states, f.profiles, defaultState, f.logger)
}

func (f *fixture) activity(defaultState string) *ActivityService {
	return NewActivityService(f.movies, f.ledger, f.resolver(defaultState), f.logger)
}

func (f *fixture) trending(defaultState string) *TrendingService {
	return NewTrendingService(f.states, f.ledger, f.movies, f.orders, f.profiles, f.resolver(defaultState), f.logger)
}

func (f *fixture) addState(t *testing.T, name, abbr string) *model.State {
	t.Helper()
	s := &model.State{Name: name, Abbreviation: abbr, CenterLat: 33.0, CenterLng: -83.5}
	require.NoError(t, f.db.Create(s).Error)
	return s
}

func (f *fixture) addMovie(t *testing.T, name string, price int64) *model.Movie {
	t.Helper()
	m := &model.Movie{Name: name, Price: price, Genre: "Action", Rating: "PG"}
	require.NoError(t, f.db.Create(m).Error)
	return m
}

func (f *fixture) addUser(t *testing.T, username string, stateID *uint64) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, f.db.Create(u).Error)
	require.NoError(t, f.db.Create(&model.UserProfile{UserID: u.ID, StateID: stateID}).Error)
	return u
}
