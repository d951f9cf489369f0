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

type ActionHandler struct {
	actionService *service.ActionService
}

func NewActionHandler(actionService *service.ActionService) *ActionHandler {
	return &ActionHandler{actionService: actionService}
}

// Track godoc
// POST /api/actions/track
// Increments the caller's counter for a study action.
func (h *ActionHandler) Track(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.TrackActionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	count, err := h.actionService.Track(c.Request.Context(), claims.UserID, claims.UserName, req.Action)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"action": req.Action, "count": count})
}

// Counters godoc
// GET /api/actions/me
func (h *ActionHandler) Counters(c *gin.Context) {
	claims := middleware.GetClaims(c)

	counters, err := h.actionService.Counters(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if counters == nil {
		counters = []model.ActionCounter{}
	}
	response.Success(c, http.StatusOK, gin.H{"counters": counters})
}
