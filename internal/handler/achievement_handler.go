package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnflvus-wq/engTest-sub000/internal/middleware"
	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/response"
	"github.com/dnflvus-wq/engTest-sub000/internal/service"
	"github.com/dnflvus-wq/engTest-sub000/internal/validator"
)

type AchievementHandler struct {
	achievementService *service.AchievementService
}

func NewAchievementHandler(achievementService *service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// Catalog godoc
// GET /api/achievements
func (h *AchievementHandler) Catalog(c *gin.Context) {
	achievements, err := h.achievementService.Catalog(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if achievements == nil {
		achievements = []model.Achievement{}
	}
	response.Success(c, http.StatusOK, gin.H{"achievements": achievements})
}

// Mine godoc
// GET /api/achievements/me
// The catalog merged with the caller's unlocks and progress.
func (h *AchievementHandler) Mine(c *gin.Context) {
	claims := middleware.GetClaims(c)

	views, err := h.achievementService.UserView(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if views == nil {
		views = []model.UserAchievementView{}
	}
	response.Success(c, http.StatusOK, gin.H{"achievements": views})
}

// Summary godoc
// GET /api/achievements/me/summary
func (h *AchievementHandler) Summary(c *gin.Context) {
	claims := middleware.GetClaims(c)

	summary, err := h.achievementService.Summary(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// Unread godoc
// GET /api/achievements/me/unread
// Unlock notifications missed while the client was offline.
func (h *AchievementHandler) Unread(c *gin.Context) {
	claims := middleware.GetClaims(c)

	events, err := h.achievementService.Unread(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unlocks": events})
}

// MarkRead godoc
// POST /api/achievements/me/read
func (h *AchievementHandler) MarkRead(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.MarkReadRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.achievementService.MarkRead(c.Request.Context(), claims.UserID, req.IDs); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "notifications acknowledged"})
}
