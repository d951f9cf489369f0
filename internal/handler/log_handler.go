package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dnflvus-wq/engTest-sub000/internal/middleware"
	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/response"
	"github.com/dnflvus-wq/engTest-sub000/internal/service"
	"github.com/dnflvus-wq/engTest-sub000/internal/validator"
)

type LogHandler struct {
	logService *service.ActivityLogService
}

func NewLogHandler(logService *service.ActivityLogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// Record godoc
// POST /api/logs
// Queues one activity log row for the caller.
func (h *LogHandler) Record(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.RecordLogRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.logService.Record(c.Request.Context(), claims.UserID, claims.UserName, &req); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"message": "log queued"})
}

// GetAll godoc
// GET /api/logs?page=1&perPage=50&userId=3&action=LOGIN
func (h *LogHandler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "50"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}

	var userID *int64
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		userID = &id
	}
	var action *string
	if raw := c.Query("action"); raw != "" {
		action = &raw
	}

	logs, total, err := h.logService.List(c.Request.Context(), page, perPage, userID, action)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if logs == nil {
		logs = []model.ActivityLog{}
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"logs": logs}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: int(total),
		TotalPages: totalPages,
	})
}

// Actions godoc
// GET /api/logs/actions
func (h *LogHandler) Actions(c *gin.Context) {
	actions, err := h.logService.Actions(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if actions == nil {
		actions = []string{}
	}
	response.Success(c, http.StatusOK, gin.H{"actions": actions})
}

// Cleanup godoc
// DELETE /api/logs
func (h *LogHandler) Cleanup(c *gin.Context) {
	var req model.CleanupLogsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	deleted, err := h.logService.Cleanup(c.Request.Context(), req.Days)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}
