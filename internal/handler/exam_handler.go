package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dnflvus-wq/engTest-sub000/internal/middleware"
	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/ocr"
	"github.com/dnflvus-wq/engTest-sub000/internal/response"
	"github.com/dnflvus-wq/engTest-sub000/internal/service"
	"github.com/dnflvus-wq/engTest-sub000/internal/validator"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type ExamHandler struct {
	examService    *service.ExamService
	ocrService     *service.OCRService
	maxUploadBytes int64
}

func NewExamHandler(examService *service.ExamService, ocrService *service.OCRService, maxUploadBytes int64) *ExamHandler {
	return &ExamHandler{
		examService:    examService,
		ocrService:     ocrService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Start godoc
// POST /api/exams/start
// Starts a new exam or resumes the caller's in-progress one for the round.
func (h *ExamHandler) Start(c *gin.Context) {
	var req model.StartExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	// The token decides who is taking the exam.
	if claims := middleware.GetClaims(c); claims != nil {
		req.UserID = claims.UserID
	}

	exam, err := h.examService.Start(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case service.ErrRoundCompleted:
			response.Fail(c, http.StatusConflict, response.ErrRoundCompleted)
		case service.ErrNoQuestions:
			response.Fail(c, http.StatusConflict, response.ErrNoQuestions)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// Get godoc
// GET /api/exams/:id
func (h *ExamHandler) Get(c *gin.Context) {
	id, ok := examID(c)
	if !ok {
		return
	}

	exam, err := h.examService.Get(c.Request.Context(), id)
	if err != nil {
		failExam(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// SaveAnswer godoc
// PUT /api/exams/:id/answers/:questionId
// Autosaves and grades one answer during an online exam.
func (h *ExamHandler) SaveAnswer(c *gin.Context) {
	id, ok := examID(c)
	if !ok {
		return
	}
	questionID, err := strconv.ParseInt(c.Param("questionId"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !h.requireOwner(c, id) {
		return
	}

	var req model.SaveAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.examService.SaveTextAnswer(c.Request.Context(), id, questionID, req.Answer)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case service.ErrExamNotInProgress:
			response.Fail(c, http.StatusConflict, response.ErrExamNotInProgress)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// Submit godoc
// POST /api/exams/:id/submit
// Regrades all answers, finalizes the score, and closes the exam.
func (h *ExamHandler) Submit(c *gin.Context) {
	id, ok := examID(c)
	if !ok {
		return
	}
	if !h.requireOwner(c, id) {
		return
	}

	exam, err := h.examService.Submit(c.Request.Context(), id)
	if err != nil {
		failExam(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// SubmitOffline godoc
// POST /api/exams/:id/submit-offline
// Accepts the reviewed answer sheet of an offline exam and grades it.
func (h *ExamHandler) SubmitOffline(c *gin.Context) {
	id, ok := examID(c)
	if !ok {
		return
	}
	if !h.requireOwner(c, id) {
		return
	}

	var req model.SubmitOfflineRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.SubmitOfflineGraded(c.Request.Context(), id, req.Answers)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case service.ErrExamNotInProgress:
			response.Fail(c, http.StatusConflict, response.ErrExamNotInProgress)
		case service.ErrAnswerMismatch:
			response.Fail(c, http.StatusBadRequest, response.ErrAnswerCountMismatch)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// ExtractAnswers godoc
// POST /api/exams/:id/ocr
// Extracts answers from an uploaded answer sheet photo. Extraction never
// grades; the client reviews the result before submitting.
func (h *ExamHandler) ExtractAnswers(c *gin.Context) {
	id, ok := examID(c)
	if !ok {
		return
	}
	if !h.requireOwner(c, id) {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[strings.ToLower(mimeType)] {
		response.Fail(c, http.StatusUnsupportedMediaType, response.ErrUnsupportedFile)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if int64(len(image)) > h.maxUploadBytes {
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return
	}

	result, err := h.ocrService.ExtractAnswers(c.Request.Context(), id, image, mimeType, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNoQuestions):
			response.Fail(c, http.StatusConflict, response.ErrNoQuestions)
		case errors.Is(err, ocr.ErrNotConfigured):
			response.Fail(c, http.StatusServiceUnavailable, response.ErrExtractionFailed)
		default:
			response.Fail(c, http.StatusBadGateway, response.ErrExtractionFailed)
		}
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Answers godoc
// GET /api/exams/:id/answers
func (h *ExamHandler) Answers(c *gin.Context) {
	id, ok := examID(c)
	if !ok {
		return
	}

	answers, err := h.examService.Answers(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if answers == nil {
		answers = []model.ExamAnswer{}
	}
	response.Success(c, http.StatusOK, gin.H{"answers": answers})
}

// WrongAnswers godoc
// GET /api/exams/:id/wrong-answers
func (h *ExamHandler) WrongAnswers(c *gin.Context) {
	id, ok := examID(c)
	if !ok {
		return
	}

	answers, err := h.examService.WrongAnswers(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if answers == nil {
		answers = []model.ExamAnswer{}
	}
	response.Success(c, http.StatusOK, gin.H{"answers": answers})
}

// GetAll godoc
// GET /api/exams
func (h *ExamHandler) GetAll(c *gin.Context) {
	exams, err := h.examService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if exams == nil {
		exams = []model.Exam{}
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// History godoc
// GET /api/users/:id/exams
func (h *ExamHandler) History(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exams, err := h.examService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if exams == nil {
		exams = []model.Exam{}
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// Delete godoc
// DELETE /api/exams/:id
func (h *ExamHandler) Delete(c *gin.Context) {
	id, ok := examID(c)
	if !ok {
		return
	}

	if err := h.examService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "exam deleted successfully"})
}

// requireOwner rejects callers trying to act on someone else's exam.
func (h *ExamHandler) requireOwner(c *gin.Context, examID int64) bool {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return false
	}

	exam, err := h.examService.Get(c.Request.Context(), examID)
	if err != nil {
		failExam(c, err)
		return false
	}
	if exam.UserID != claims.UserID {
		response.Fail(c, http.StatusForbidden, response.ErrNotExamOwner)
		return false
	}
	return true
}

func examID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

func failExam(c *gin.Context, err error) {
	if err == service.ErrNotFound {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
