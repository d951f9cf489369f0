package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/response"
	"github.com/dnflvus-wq/engTest-sub000/internal/service"
	"github.com/dnflvus-wq/engTest-sub000/internal/validator"
)

type VocabularyHandler struct {
	vocabularyService *service.VocabularyService
}

func NewVocabularyHandler(vocabularyService *service.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{vocabularyService: vocabularyService}
}

// GetByRound godoc
// GET /api/rounds/:id/vocabulary
func (h *VocabularyHandler) GetByRound(c *gin.Context) {
	roundID, ok := roundID(c)
	if !ok {
		return
	}

	words, err := h.vocabularyService.ListByRound(c.Request.Context(), roundID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if words == nil {
		words = []model.VocabularyWord{}
	}
	response.Success(c, http.StatusOK, gin.H{"words": words})
}

// Add godoc
// POST /api/rounds/:id/vocabulary
// Accepts "english:korean" lines; malformed lines are skipped.
func (h *VocabularyHandler) Add(c *gin.Context) {
	roundID, ok := roundID(c)
	if !ok {
		return
	}

	var req model.AddVocabularyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	added, err := h.vocabularyService.AddWords(c.Request.Context(), roundID, req.Words)
	if err != nil {
		if err == service.ErrNotFound {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"added": added})
}

// Delete godoc
// DELETE /api/vocabulary/:id
func (h *VocabularyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.vocabularyService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "word deleted successfully"})
}
