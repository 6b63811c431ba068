package repository

import (
	"context"
	"time"

	"CineSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository 影评与评分仓储
type ReviewRepository interface {
	CreateReview(ctx context.Context, rv *model.Review) error
	GetReviewByID(ctx context.Context, id uint64) (*model.Review, error)
	// ListVisibleByMovie 电影的未被举报影评，按时间倒序
	ListVisibleByMovie(ctx context.Context, movieID uint64) ([]*model.Review, error)
	UpdateReviewComment(ctx context.Context, id uint64, comment string) error
	DeleteReview(ctx context.Context, id uint64) error
	MarkReported(ctx context.Context, id uint64) error

	// UpsertRating 写入评分，同一 (user, movie) 重复提交则覆盖旧值
	UpsertRating(ctx context.Context, rating *model.Rating) error
	// ListRatingsByMovie 电影的全部评分
	ListRatingsByMovie(ctx context.Context, movieID uint64) ([]*model.Rating, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建 ReviewRepository 实例
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *reviewRepository) GetReviewByID(ctx context.Context, id uint64) (*model.Review, error) {
	var rv model.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) ListVisibleByMovie(ctx context.Context, movieID uint64) ([]*model.Review, error) {
	var reviews []*model.Review
	if err := r.db.WithContext(ctx).
		Where("movie_id = ? AND is_reported = ?", movieID, false).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) UpdateReviewComment(ctx context.Context, id uint64, comment string) error {
	return r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ?", id).
		Update("comment", comment).Error
}

func (r *reviewRepository) DeleteReview(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Review{}).Error
}

func (r *reviewRepository) MarkReported(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ?", id).
		Update("is_reported", true).Error
}

func (r *reviewRepository) UpsertRating(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "movie_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating":     rating.Rating,
			"updated_at": time.Now(),
		}),
	}).Create(rating).Error
}

func (r *reviewRepository) ListRatingsByMovie(ctx context.Context, movieID uint64) ([]*model.Rating, error) {
	var ratings []*model.Rating
	if err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}
