package api

import (
	"net/http"

	"CineSync/internal/config"
	"CineSync/internal/repository"
	"CineSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CartHandler 结算接口
type CartHandler struct {
	cartService *service.CartService
	logger      *logrus.Logger
}

// NewCartHandler 创建 CartHandler
func NewCartHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *CartHandler {
	movies := repository.NewMovieRepository(db)
	states := repository.NewStateRepository(db)
	profiles := repository.NewProfileRepository(db)
	resolver := service.NewRegionResolver(states, profiles, cfg.Popularity.DefaultState, logger)
	activity := service.NewActivityService(movies, repository.NewPopularityRepository(db), resolver, logger)
	svc := service.NewCartService(movies, repository.NewOrderRepository(db), activity, logger)
	return &CartHandler{cartService: svc, logger: logger}
}

type purchaseRequest struct {
	UserID uint64                  `json:"user_id"`
	Items  []service.CartItemInput `json:"items"`
}

// Purchase 结算购物车 POST /api/cart/purchase
func (h *CartHandler) Purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := h.cartService.Purchase(c.Request.Context(), req.UserID, req.Items)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
