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

type BadgeHandler struct {
	badgeService *service.BadgeService
}

func NewBadgeHandler(badgeService *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

// Catalog godoc
// GET /api/badges
func (h *BadgeHandler) Catalog(c *gin.Context) {
	badges, err := h.badgeService.Catalog(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if badges == nil {
		badges = []model.Badge{}
	}
	response.Success(c, http.StatusOK, gin.H{"badges": badges})
}

// Mine godoc
// GET /api/badges/me
func (h *BadgeHandler) Mine(c *gin.Context) {
	claims := middleware.GetClaims(c)

	badges, err := h.badgeService.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if badges == nil {
		badges = []model.UserBadgeView{}
	}
	response.Success(c, http.StatusOK, gin.H{"badges": badges})
}

// Equipped godoc
// GET /api/users/:id/badges
// Another user's equipped badges, shown on ranking boards.
func (h *BadgeHandler) Equipped(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	badges, err := h.badgeService.Equipped(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if badges == nil {
		badges = []model.UserBadgeView{}
	}
	response.Success(c, http.StatusOK, gin.H{"badges": badges})
}

// Equip godoc
// POST /api/badges/equip
func (h *BadgeHandler) Equip(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.EquipBadgeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.badgeService.Equip(c.Request.Context(), claims.UserID, req.BadgeID, req.SlotNumber)
	if err != nil {
		switch err {
		case service.ErrBadgeNotOwned:
			response.Fail(c, http.StatusForbidden, response.ErrBadgeNotOwned)
		case service.ErrInvalidSlot:
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidSlot)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "badge equipped"})
}

// Unequip godoc
// POST /api/badges/unequip
func (h *BadgeHandler) Unequip(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.UnequipBadgeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.badgeService.Unequip(c.Request.Context(), claims.UserID, req.BadgeID)
	if err != nil {
		if err == service.ErrBadgeNotOwned {
			response.Fail(c, http.StatusForbidden, response.ErrBadgeNotOwned)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "badge unequipped"})
}
