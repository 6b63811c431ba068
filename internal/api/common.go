package api

import (
	"errors"
	"net/http"
	"strconv"

	"CineSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// writeError 按服务层错误类别映射 HTTP 状态码，统一 {"error": msg} 返回体
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrStateNotFound),
		errors.Is(err, service.ErrMovieNotFound),
		errors.Is(err, service.ErrPetitionNotFound),
		errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// currentUserID 从 user_id 参数取请求方身份（认证在上游完成，这里只识别），未带时为 0
func currentUserID(c *gin.Context) uint64 {
	id, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	return id
}
