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

// RegionHandler 地区热度的查询接口（地图页数据源）
type RegionHandler struct {
	trending *service.TrendingService
	limits   config.PopularityConfig
	logger   *logrus.Logger
}

// NewRegionHandler 创建 RegionHandler
func NewRegionHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *RegionHandler {
	states := repository.NewStateRepository(db)
	profiles := repository.NewProfileRepository(db)
	resolver := service.NewRegionResolver(states, profiles, cfg.Popularity.DefaultState, logger)
	svc := service.NewTrendingService(
		states,
		repository.NewPopularityRepository(db),
		repository.NewMovieRepository(db),
		repository.NewOrderRepository(db),
		profiles,
		resolver,
		logger,
	)
	limits := cfg.Popularity
	limits.ApplyDefaults()
	return &RegionHandler{trending: svc, limits: limits, logger: logger}
}

// ListStates 全部州 GET /api/states
func (h *RegionHandler) ListStates(c *gin.Context) {
	states, err := h.trending.ListStates(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("ListStates failed")
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"states": states})
}

// StateMovies 单州热门电影 GET /api/states/:state_id/movies
func (h *RegionHandler) StateMovies(c *gin.Context) {
	stateID, err := strconv.ParseUint(c.Param("state_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state_id"})
		return
	}
	result, err := h.trending.TrendingForState(c.Request.Context(), stateID, h.limits.StateTrendingSize)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GlobalTrending 全国热门电影 GET /api/trending
func (h *RegionHandler) GlobalTrending(c *gin.Context) {
	movies, err := h.trending.GlobalTrending(c.Request.Context(), h.limits.GlobalTrendingSize)
	if err != nil {
		h.logger.WithError(err).Error("GlobalTrending failed")
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movies": movies})
}

// CompareStates 两州对比 GET /api/compare?state1=&state2=
func (h *RegionHandler) CompareStates(c *gin.Context) {
	state1 := c.Query("state1")
	state2 := c.Query("state2")
	if state1 == "" || state2 == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both state1 and state2 parameters are required"})
		return
	}
	id1, err1 := strconv.ParseUint(state1, 10, 64)
	id2, err2 := strconv.ParseUint(state2, 10, 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state1 and state2 must be numeric ids"})
		return
	}
	result, err := h.trending.CompareStates(c.Request.Context(), id1, id2, h.limits.StateTrendingSize)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PersonalPurchases 个人购买汇总 GET /api/personal?user_id=
func (h *RegionHandler) PersonalPurchases(c *gin.Context) {
	purchases, err := h.trending.PersonalSummary(c.Request.Context(), currentUserID(c), h.limits.PersonalSize)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

// ComparePersonal 个人购买对照所在州排行 GET /api/compare-personal?user_id=
func (h *RegionHandler) ComparePersonal(c *gin.Context) {
	result, err := h.trending.PersonalVsState(c.Request.Context(), currentUserID(c), h.limits.PersonalSize)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// OtherUsers 其他用户购买摘要 GET /api/other-users?user_id=&state_id=
func (h *RegionHandler) OtherUsers(c *gin.Context) {
	var stateID *uint64
	if raw := c.Query("state_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state_id"})
			return
		}
		stateID = &id
	}
	users, err := h.trending.OtherUsers(c.Request.Context(), stateID, currentUserID(c), h.limits.OtherUsersLimit, h.limits.PerUserPurchases)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ResetPopularity 管理端清空热度计数 POST /api/admin/popularity/reset
func (h *RegionHandler) ResetPopularity(c *gin.Context) {
	if err := h.trending.ResetPopularity(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("ResetPopularity failed")
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
