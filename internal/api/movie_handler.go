package api

import (
	"net/http"
	"strconv"

	"CineSync/internal/config"
	"CineSync/internal/repository"
	"CineSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MovieHandler 电影目录、影评与评分接口
type MovieHandler struct {
	movieService *service.MovieService
	logger       *logrus.Logger
}

// NewMovieHandler 创建 MovieHandler
func NewMovieHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *MovieHandler {
	movies := repository.NewMovieRepository(db)
	states := repository.NewStateRepository(db)
	profiles := repository.NewProfileRepository(db)
	resolver := service.NewRegionResolver(states, profiles, cfg.Popularity.DefaultState, logger)
	activity := service.NewActivityService(movies, repository.NewPopularityRepository(db), resolver, logger)
	svc := service.NewMovieService(movies, repository.NewReviewRepository(db), activity, logger)
	return &MovieHandler{movieService: svc, logger: logger}
}

// ListMovies 目录列表 GET /api/movies?search=
func (h *MovieHandler) ListMovies(c *gin.Context) {
	movies, err := h.movieService.ListMovies(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.logger.WithError(err).Error("ListMovies failed")
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movies": movies})
}

// GetMovie 详情 GET /api/movies/:id?user_id=（已识别用户访问计一次浏览）
func (h *MovieHandler) GetMovie(c *gin.Context) {
	movieID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}
	detail, err := h.movieService.GetMovieDetail(c.Request.Context(), movieID, currentUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

type reviewRequest struct {
	Comment string `json:"comment"`
}

// CreateReview 发表影评 POST /api/movies/:id/reviews?user_id=
func (h *MovieHandler) CreateReview(c *gin.Context) {
	movieID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.movieService.CreateReview(c.Request.Context(), movieID, currentUserID(c), req.Comment); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateReview 修改影评 PUT /api/reviews/:review_id?user_id=
func (h *MovieHandler) UpdateReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.movieService.UpdateReview(c.Request.Context(), reviewID, currentUserID(c), req.Comment); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteReview 删除影评 DELETE /api/reviews/:review_id?user_id=
func (h *MovieHandler) DeleteReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}
	if err := h.movieService.DeleteReview(c.Request.Context(), reviewID, currentUserID(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReportReview 举报影评 POST /api/reviews/:review_id/report?user_id=
func (h *MovieHandler) ReportReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}
	if err := h.movieService.ReportReview(c.Request.Context(), reviewID, currentUserID(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type ratingRequest struct {
	Rating int `json:"rating"`
}

// SubmitRating 提交评分 POST /api/movies/:id/rating?user_id=
func (h *MovieHandler) SubmitRating(c *gin.Context) {
	movieID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rating data"})
		return
	}
	if err := h.movieService.SubmitRating(c.Request.Context(), movieID, currentUserID(c), req.Rating); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"rating":  req.Rating,
		"message": "rating submitted successfully",
	})
}

// RatingSummary 评分汇总 GET /api/movies/:id/rating-summary
func (h *MovieHandler) RatingSummary(c *gin.Context) {
	movieID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}
	summary, err := h.movieService.GetRatingSummary(c.Request.Context(), movieID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
