package api

import (
	"net/http"
	"strconv"

	"CineSync/internal/repository"
	"CineSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PetitionHandler 新片请愿与投票接口
type PetitionHandler struct {
	petitionService *service.PetitionService
	logger          *logrus.Logger
}

// NewPetitionHandler 创建 PetitionHandler
func NewPetitionHandler(db *gorm.DB, logger *logrus.Logger) *PetitionHandler {
	svc := service.NewPetitionService(repository.NewPetitionRepository(db), logger)
	return &PetitionHandler{petitionService: svc, logger: logger}
}

// ListPetitions 请愿列表 GET /api/petitions?search=&status=&page=&page_size=
func (h *PetitionHandler) ListPetitions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	filter := repository.PetitionFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	result, err := h.petitionService.ListPetitions(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListPetitions failed")
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreatePetition 发起请愿 POST /api/petitions?user_id=
func (h *PetitionHandler) CreatePetition(c *gin.Context) {
	var input service.PetitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	info, err := h.petitionService.CreatePetition(c.Request.Context(), currentUserID(c), &input)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetPetition 请愿详情 GET /api/petitions/:id?user_id=
func (h *PetitionHandler) GetPetition(c *gin.Context) {
	petitionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid petition id"})
		return
	}
	detail, err := h.petitionService.GetPetitionDetail(c.Request.Context(), petitionID, currentUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Vote 投票/撤票 POST /api/petitions/:id/vote?user_id=
func (h *PetitionHandler) Vote(c *gin.Context) {
	petitionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid petition id"})
		return
	}
	result, err := h.petitionService.Vote(c.Request.Context(), petitionID, currentUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"action":      result.Action,
		"votes_count": result.VotesCount,
	})
}
