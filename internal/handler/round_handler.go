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

type RoundHandler struct {
	roundService    *service.RoundService
	examService     *service.ExamService
	statsService    *service.StatsService
	materialService *service.MaterialService
}

func NewRoundHandler(roundService *service.RoundService, examService *service.ExamService, statsService *service.StatsService, materialService *service.MaterialService) *RoundHandler {
	return &RoundHandler{
		roundService:    roundService,
		examService:     examService,
		statsService:    statsService,
		materialService: materialService,
	}
}

// GetAll godoc
// GET /api/rounds?status=ACTIVE
func (h *RoundHandler) GetAll(c *gin.Context) {
	var (
		rounds []model.Round
		err    error
	)
	if c.Query("status") == string(model.RoundStatusActive) {
		rounds, err = h.roundService.ListActive(c.Request.Context())
	} else {
		rounds, err = h.roundService.List(c.Request.Context())
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if rounds == nil {
		rounds = []model.Round{}
	}
	response.Success(c, http.StatusOK, gin.H{"rounds": rounds})
}

// Get godoc
// GET /api/rounds/:id
func (h *RoundHandler) Get(c *gin.Context) {
	id, ok := roundID(c)
	if !ok {
		return
	}

	round, err := h.roundService.Get(c.Request.Context(), id)
	if err != nil {
		failRound(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"round": round})
}

// Previous godoc
// GET /api/rounds/:id/previous
func (h *RoundHandler) Previous(c *gin.Context) {
	id, ok := roundID(c)
	if !ok {
		return
	}

	round, err := h.roundService.GetPrevious(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrNoPreviousRound {
			response.Fail(c, http.StatusNotFound, response.ErrNoPreviousRound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"round": round})
}

// Create godoc
// POST /api/rounds
func (h *RoundHandler) Create(c *gin.Context) {
	var req model.CreateRoundRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	round, err := h.roundService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"round": round})
}

// Update godoc
// PUT /api/rounds/:id
func (h *RoundHandler) Update(c *gin.Context) {
	id, ok := roundID(c)
	if !ok {
		return
	}

	var req model.UpdateRoundRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	round, err := h.roundService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failRound(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"round": round})
}

// UpdateStatus godoc
// PATCH /api/rounds/:id/status
func (h *RoundHandler) UpdateStatus(c *gin.Context) {
	id, ok := roundID(c)
	if !ok {
		return
	}

	var req model.UpdateRoundStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	round, err := h.roundService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		failRound(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"round": round})
}

// Delete godoc
// DELETE /api/rounds/:id
func (h *RoundHandler) Delete(c *gin.Context) {
	id, ok := roundID(c)
	if !ok {
		return
	}

	// Uploaded material files do not follow the row cascade.
	h.materialService.PurgeRound(c.Request.Context(), id)

	if err := h.roundService.Delete(c.Request.Context(), id); err != nil {
		failRound(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "round deleted successfully"})
}

// GenerateReview godoc
// POST /api/rounds/:id/review
// Copies review questions from the previous round into this one.
func (h *RoundHandler) GenerateReview(c *gin.Context) {
	id, ok := roundID(c)
	if !ok {
		return
	}

	var req model.GenerateReviewRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, err := h.roundService.GenerateReview(c.Request.Context(), id, req.Count)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case service.ErrNoPreviousRound:
			response.Fail(c, http.StatusNotFound, response.ErrNoPreviousRound)
		case service.ErrNoQuestions:
			response.Fail(c, http.StatusConflict, response.ErrNoQuestions)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"questions": questions})
}

// DeleteReview godoc
// DELETE /api/rounds/:id/review
func (h *RoundHandler) DeleteReview(c *gin.Context) {
	id, ok := roundID(c)
	if !ok {
		return
	}

	deleted, err := h.roundService.DeleteReview(c.Request.Context(), id)
	if err != nil {
		failRound(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}

// Participants godoc
// GET /api/rounds/:id/participants
func (h *RoundHandler) Participants(c *gin.Context) {
	id, ok := roundID(c)
	if !ok {
		return
	}

	participants, err := h.examService.Participants(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if participants == nil {
		participants = []model.RoundParticipant{}
	}
	response.Success(c, http.StatusOK, gin.H{"participants": participants})
}

// Stats godoc
// GET /api/rounds/:id/stats
func (h *RoundHandler) Stats(c *gin.Context) {
	id, ok := roundID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.RoundStats(c.Request.Context(), id)
	if err != nil {
		failRound(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// Ranking godoc
// GET /api/rounds/:id/ranking
func (h *RoundHandler) Ranking(c *gin.Context) {
	id, ok := roundID(c)
	if !ok {
		return
	}

	ranking, err := h.examService.Ranking(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if ranking == nil {
		ranking = []model.RankingEntry{}
	}
	response.Success(c, http.StatusOK, gin.H{"ranking": ranking})
}

func roundID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

func failRound(c *gin.Context, err error) {
	if err == service.ErrNotFound {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
