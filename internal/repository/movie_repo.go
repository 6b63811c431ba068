package repository

import (
	"context"
	"strings"

	"CineSync/internal/model"

	"gorm.io/gorm"
)

// MovieRepository 电影目录仓储
type MovieRepository interface {
	// GetByID 按ID查电影
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
	// GetByIDs 批量查电影，返回 id -> movie 映射
	GetByIDs(ctx context.Context, ids []uint64) (map[uint64]*model.Movie, error)
	// Search 片名模糊搜索（不区分大小写），search 为空时返回全部
	Search(ctx context.Context, search string) ([]*model.Movie, error)
	// Create 新增电影（种子数据用）
	Create(ctx context.Context, m *model.Movie) error
}

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository 创建 MovieRepository 实例
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	var m model.Movie
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movieRepository) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]*model.Movie, error) {
	result := make(map[uint64]*model.Movie, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var movies []*model.Movie
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&movies).Error; err != nil {
		return nil, err
	}
	for _, m := range movies {
		result[m.ID] = m
	}
	return result, nil
}

func (r *movieRepository) Search(ctx context.Context, search string) ([]*model.Movie, error) {
	db := r.db.WithContext(ctx).Model(&model.Movie{})
	if search != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var movies []*model.Movie
	if err := db.Order("id ASC").Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepository) Create(ctx context.Context, m *model.Movie) error {
	return r.db.WithContext(ctx).Create(m).Error
}
