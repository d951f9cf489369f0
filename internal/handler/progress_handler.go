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

type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// Chapters godoc
// GET /api/progress/chapters
// The chapter catalog with the rounds covering each chapter.
func (h *ProgressHandler) Chapters(c *gin.Context) {
	chapters, err := h.progressService.Chapters(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if chapters == nil {
		chapters = []model.ChapterUsage{}
	}
	response.Success(c, http.StatusOK, gin.H{"chapters": chapters})
}

// Mine godoc
// GET /api/progress/me
// The caller's books > parts > chapters completion tree.
func (h *ProgressHandler) Mine(c *gin.Context) {
	claims := middleware.GetClaims(c)

	books, err := h.progressService.UserProgress(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if books == nil {
		books = []model.BookProgress{}
	}
	response.Success(c, http.StatusOK, gin.H{"books": books})
}

// AssignChapters godoc
// PUT /api/rounds/:id/chapters
// Replaces the chapters a round covers.
func (h *ProgressHandler) AssignChapters(c *gin.Context) {
	id, ok := roundID(c)
	if !ok {
		return
	}

	var req model.AssignChaptersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.progressService.AssignChapters(c.Request.Context(), id, req.ChapterIDs); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "chapters assigned"})
}
