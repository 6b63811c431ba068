package service

import (
	"context"
	"errors"
	"fmt"

	"CineSync/internal/model"
	"CineSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MovieInfo 目录条目
type MovieInfo struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	ReleaseYear int    `json:"release_year"`
	Director    string `json:"director"`
	Genre       string `json:"genre"`
	Rating      string `json:"rating"`
	ImageURL    string `json:"image_url"`
}

// ReviewInfo 影评条目
type ReviewInfo struct {
	ID        uint64 `json:"id"`
	Comment   string `json:"comment"`
	UserID    uint64 `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

// MovieDetail 详情页数据：电影 + 未被举报的影评
type MovieDetail struct {
	Movie   MovieInfo    `json:"movie"`
	Reviews []ReviewInfo `json:"reviews"`
}

// RatingSummary 评分汇总
type RatingSummary struct {
	AverageRating      float64        `json:"average_rating"`
	TotalRatings       int64          `json:"total_ratings"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}

// MovieService 电影目录、影评与评分
type MovieService struct {
	movies   repository.MovieRepository
	reviews  repository.ReviewRepository
	activity *ActivityService
	logger   *logrus.Logger
}

// NewMovieService 创建 MovieService
func NewMovieService(movies repository.MovieRepository, reviews repository.ReviewRepository, activity *ActivityService, logger *logrus.Logger) *MovieService {
	return &MovieService{
		movies:   movies,
		reviews:  reviews,
		activity: activity,
		logger:   logger,
	}
}

func movieInfo(m *model.Movie) MovieInfo {
	return MovieInfo{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		Director:    m.Director,
		Genre:       m.Genre,
		Rating:      m.Rating,
		ImageURL:    m.ImageURL(),
	}
}

// ListMovies 目录列表，search 非空时按片名模糊过滤
func (s *MovieService) ListMovies(ctx context.Context, search string) ([]MovieInfo, error) {
	movies, err := s.movies.Search(ctx, search)
	if err != nil {
		return nil, err
	}
	result := make([]MovieInfo, 0, len(movies))
	for _, m := range movies {
		result = append(result, movieInfo(m))
	}
	return result, nil
}

// GetMovieDetail 详情页。已识别用户访问时记一次浏览热度；
// 浏览计数失败不阻断详情展示，降级为告警
func (s *MovieService) GetMovieDetail(ctx context.Context, movieID, userID uint64) (*MovieDetail, error) {
	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrMovieNotFound, movieID)
		}
		return nil, err
	}

	if err := s.activity.RecordView(ctx, movieID, userID); err != nil {
		s.logger.WithError(err).WithField("movie_id", movieID).Warn("记录浏览热度失败")
	}

	reviews, err := s.reviews.ListVisibleByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	reviewInfos := make([]ReviewInfo, 0, len(reviews))
	for _, rv := range reviews {
		reviewInfos = append(reviewInfos, ReviewInfo{
			ID:        rv.ID,
			Comment:   rv.Comment,
			UserID:    rv.UserID,
			CreatedAt: rv.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return &MovieDetail{Movie: movieInfo(movie), Reviews: reviewInfos}, nil
}

// CreateReview 发表影评
func (s *MovieService) CreateReview(ctx context.Context, movieID, userID uint64, comment string) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	if comment == "" {
		return fmt.Errorf("%w: comment is required", ErrInvalidArgument)
	}
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id=%d", ErrMovieNotFound, movieID)
		}
		return err
	}
	return s.reviews.CreateReview(ctx, &model.Review{
		Comment: comment,
		MovieID: movieID,
		UserID:  userID,
	})
}

// UpdateReview 修改影评，仅作者本人可改
func (s *MovieService) UpdateReview(ctx context.Context, reviewID, userID uint64, comment string) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	if comment == "" {
		return fmt.Errorf("%w: comment is required", ErrInvalidArgument)
	}
	rv, err := s.getReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != userID {
		return fmt.Errorf("%w: not the review author", ErrUnauthorized)
	}
	return s.reviews.UpdateReviewComment(ctx, reviewID, comment)
}

// DeleteReview 删除影评，仅作者本人可删
func (s *MovieService) DeleteReview(ctx context.Context, reviewID, userID uint64) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	rv, err := s.getReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != userID {
		return fmt.Errorf("%w: not the review author", ErrUnauthorized)
	}
	return s.reviews.DeleteReview(ctx, reviewID)
}

// ReportReview 举报影评，举报后从展示列表隐藏
func (s *MovieService) ReportReview(ctx context.Context, reviewID, userID uint64) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	if _, err := s.getReview(ctx, reviewID); err != nil {
		return err
	}
	return s.reviews.MarkReported(ctx, reviewID)
}

func (s *MovieService) getReview(ctx context.Context, reviewID uint64) (*model.Review, error) {
	rv, err := s.reviews.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrReviewNotFound, reviewID)
		}
		return nil, err
	}
	return rv, nil
}

// SubmitRating 提交评分（1-5），同一用户重复提交覆盖旧值
func (s *MovieService) SubmitRating(ctx context.Context, movieID, userID uint64, value int) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	if value < 1 || value > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidArgument)
	}
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id=%d", ErrMovieNotFound, movieID)
		}
		return err
	}
	return s.reviews.UpsertRating(ctx, &model.Rating{
		MovieID: movieID,
		UserID:  userID,
		Rating:  value,
	})
}

// GetRatingSummary 评分汇总：平均分（保留两位）、总数、1-5分布
func (s *MovieService) GetRatingSummary(ctx context.Context, movieID uint64) (*RatingSummary, error) {
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrMovieNotFound, movieID)
		}
		return nil, err
	}
	ratings, err := s.reviews.ListRatingsByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	summary := &RatingSummary{
		RatingDistribution: map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
	}
	if len(ratings) == 0 {
		return summary, nil
	}
	var sum int
	for _, r := range ratings {
		sum += r.Rating
		summary.RatingDistribution[fmt.Sprintf("%d", r.Rating)]++
	}
	summary.TotalRatings = int64(len(ratings))
	avg := float64(sum) / float64(len(ratings))
	summary.AverageRating = float64(int(avg*100+0.5)) / 100
	return summary, nil
}
