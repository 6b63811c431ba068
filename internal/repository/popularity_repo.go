package repository

import (
	"context"
	"errors"
	"time"

	"CineSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateMovieRow 单州热门电影行（movie_popularity 与 movies 的联查视图）
type StateMovieRow struct {
	MovieID       uint64
	Name          string
	PurchaseCount int64
	ViewCount     int64
	Image         string
	Price         int64
	Genre         string
	Rating        string
}

// TotalActivity 综合热度分，与 model.MoviePopularity 同一口径，读取时计算
func (r *StateMovieRow) TotalActivity() float64 {
	return float64(r.PurchaseCount) + float64(r.ViewCount)*0.1
}

// GlobalMovieRow 全国维度按电影聚合后的行
type GlobalMovieRow struct {
	MovieID        uint64
	TotalPurchases int64
	TotalViews     int64
	StateCount     int64
}

// PopularityRepository 热度计数仓储
type PopularityRepository interface {
	// UpsertAndIncrement 原子化的"不存在则建零值行+累加增量"，并发对同一 (movie, state)
	// 累加时不丢计数、不产生重复行；每次写入刷新 last_updated
	UpsertAndIncrement(ctx context.Context, movieID, stateID uint64, purchaseDelta, viewDelta int64) (*model.MoviePopularity, error)
	// Get 读取单条计数，无记录时返回 (nil, nil)（尚未产生活动，不是错误）
	Get(ctx context.Context, movieID, stateID uint64) (*model.MoviePopularity, error)
	// TopForState 单州排行：购买数降序、浏览数降序、movie_id 升序保证确定性
	TopForState(ctx context.Context, stateID uint64, limit int) ([]*StateMovieRow, error)
	// AggregateAcrossStates 跨州聚合：按电影求和，购买总数降序、浏览总数降序
	AggregateAcrossStates(ctx context.Context, limit int) ([]*GlobalMovieRow, error)
	// ResetAll 管理端整表清零，不可逆，只允许显式调用
	ResetAll(ctx context.Context) error
	// AppendEvent 追加一条热度事件流水
	AppendEvent(ctx context.Context, ev *model.ActivityEvent) error
}

type popularityRepository struct {
	db *gorm.DB
}

// NewPopularityRepository 创建 PopularityRepository 实例
func NewPopularityRepository(db *gorm.DB) PopularityRepository {
	return &popularityRepository{db: db}
}

// UpsertAndIncrement 用单条 INSERT ... ON CONFLICT DO UPDATE 完成建行与累加，
// 避免"先查后写"在并发首插时的双行竞争
func (r *popularityRepository) UpsertAndIncrement(ctx context.Context, movieID, stateID uint64, purchaseDelta, viewDelta int64) (*model.MoviePopularity, error) {
	rec := &model.MoviePopularity{
		MovieID:       movieID,
		StateID:       stateID,
		PurchaseCount: purchaseDelta,
		ViewCount:     viewDelta,
		LastUpdated:   time.Now(),
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "movie_id"}, {Name: "state_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"purchase_count": gorm.Expr("purchase_count + excluded.purchase_count"),
			"view_count":     gorm.Expr("view_count + excluded.view_count"),
			"last_updated":   time.Now(),
		}),
	}).Create(rec).Error; err != nil {
		return nil, err
	}
	// 冲突路径下 rec 不携带库内最新计数，按键回读一次
	var out model.MoviePopularity
	if err := r.db.WithContext(ctx).
		Where("movie_id = ? AND state_id = ?", movieID, stateID).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *popularityRepository) Get(ctx context.Context, movieID, stateID uint64) (*model.MoviePopularity, error) {
	var p model.MoviePopularity
	err := r.db.WithContext(ctx).
		Where("movie_id = ? AND state_id = ?", movieID, stateID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *popularityRepository) TopForState(ctx context.Context, stateID uint64, limit int) ([]*StateMovieRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []*StateMovieRow
	if err := r.db.WithContext(ctx).Model(&model.MoviePopularity{}).
		Select("movie_popularity.movie_id, movies.name, movie_popularity.purchase_count, movie_popularity.view_count, movies.image, movies.price, movies.genre, movies.rating").
		Joins("JOIN movies ON movies.id = movie_popularity.movie_id").
		Where("movie_popularity.state_id = ?", stateID).
		Order("movie_popularity.purchase_count DESC, movie_popularity.view_count DESC, movie_popularity.movie_id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *popularityRepository) AggregateAcrossStates(ctx context.Context, limit int) ([]*GlobalMovieRow, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []*GlobalMovieRow
	if err := r.db.WithContext(ctx).Model(&model.MoviePopularity{}).
		Select("movie_id, SUM(purchase_count) AS total_purchases, SUM(view_count) AS total_views, COUNT(DISTINCT state_id) AS state_count").
		Group("movie_id").
		Order("total_purchases DESC, total_views DESC, movie_id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *popularityRepository) ResetAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.MoviePopularity{}).Error
}

func (r *popularityRepository) AppendEvent(ctx context.Context, ev *model.ActivityEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}
