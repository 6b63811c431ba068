package seed

import (
	"io"
	"testing"

	"CineSync/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.State{}, &model.Movie{}))
	return db
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestStates_SeedsAllFiftyOnce(t *testing.T) {
	db := newTestDB(t)
	log := discardLogger()

	require.NoError(t, States(db, log))
	var count int64
	require.NoError(t, db.Model(&model.State{}).Count(&count).Error)
	assert.Equal(t, int64(50), count)

	var ga model.State
	require.NoError(t, db.Where("abbreviation = ?", "GA").First(&ga).Error)
	assert.Equal(t, "Georgia", ga.Name)

	// 再跑一遍不会重复写
	require.NoError(t, States(db, log))
	require.NoError(t, db.Model(&model.State{}).Count(&count).Error)
	assert.Equal(t, int64(50), count)
}

func TestMovies_Idempotent(t *testing.T) {
	db := newTestDB(t)
	log := discardLogger()

	require.NoError(t, Movies(db, log))
	var count int64
	require.NoError(t, db.Model(&model.Movie{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)

	require.NoError(t, Movies(db, log))
	require.NoError(t, db.Model(&model.Movie{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)
}
