package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/response"
	"github.com/dnflvus-wq/engTest-sub000/internal/service"
	"github.com/dnflvus-wq/engTest-sub000/internal/validator"
)

var allowedMaterialTypes = map[string]bool{
	"application/pdf":               true,
	"application/vnd.ms-powerpoint": true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
}

// MaterialHandler manages round study materials.
type MaterialHandler struct {
	materialService *service.MaterialService
	maxUploadBytes  int64
}

// NewMaterialHandler creates a new MaterialHandler.
func NewMaterialHandler(materialService *service.MaterialService, maxUploadBytes int64) *MaterialHandler {
	return &MaterialHandler{materialService: materialService, maxUploadBytes: maxUploadBytes}
}

// GetByRound godoc
// GET /api/rounds/:id/materials
func (h *MaterialHandler) GetByRound(c *gin.Context) {
	roundID, ok := roundID(c)
	if !ok {
		return
	}

	materials, err := h.materialService.ListByRound(c.Request.Context(), roundID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if materials == nil {
		materials = []model.RoundMaterial{}
	}
	response.Success(c, http.StatusOK, gin.H{"materials": materials})
}

// AddYouTube godoc
// POST /api/rounds/:id/materials/youtube
func (h *MaterialHandler) AddYouTube(c *gin.Context) {
	roundID, ok := roundID(c)
	if !ok {
		return
	}

	var req model.AddYouTubeMaterialRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	material, err := h.materialService.AddYouTube(c.Request.Context(), roundID, req.Title, req.URL)
	if err != nil {
		failRound(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"material": material})
}

// AddFile godoc
// POST /api/rounds/:id/materials/file
// Accepts one PPT/PDF document as multipart "file" with an optional
// "title" field.
func (h *MaterialHandler) AddFile(c *gin.Context) {
	roundID, ok := roundID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !allowedMaterialTypes[strings.ToLower(mimeType)] {
		response.Fail(c, http.StatusUnsupportedMediaType, response.ErrUnsupportedFile)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return
	}

	title := c.PostForm("title")
	material, err := h.materialService.AddFile(c.Request.Context(), roundID, title, fileHeader.Filename, data)
	if err != nil {
		failRound(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"material": material})
}

// Delete godoc
// DELETE /api/materials/:id
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.materialService.Delete(c.Request.Context(), id); err != nil {
		failRound(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "material deleted successfully"})
}
