package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dnflvus-wq/engTest-sub000/internal/config"
	"github.com/dnflvus-wq/engTest-sub000/internal/grading"
	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

// roundAutoCompleteCount is the number of users whose completion closes
// a round automatically.
const roundAutoCompleteCount = 4

// ExamService handles exam attempts, grading and ranking.
type ExamService struct {
	exams     *repository.ExamRepository
	answers   *repository.ExamAnswerRepository
	questions *repository.QuestionRepository
	rounds    *repository.RoundRepository
	users     *repository.UserRepository
	events    *EventQueue
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	exams *repository.ExamRepository,
	answers *repository.ExamAnswerRepository,
	questions *repository.QuestionRepository,
	rounds *repository.RoundRepository,
	users *repository.UserRepository,
	events *EventQueue,
	rdb *redis.Client,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		exams:     exams,
		answers:   answers,
		questions: questions,
		rounds:    rounds,
		users:     users,
		events:    events,
		rdb:       rdb,
		log:       log.With().Str("component", "exam_service").Logger(),
	}
}

// Start begins an exam for a round, or resumes the user's unfinished
// attempt at the same round. Unfinished attempts at other rounds are
// discarded so at most one exam is ever in progress.
func (s *ExamService) Start(ctx context.Context, req *model.StartExamRequest) (*model.Exam, error) {
	round, err := s.rounds.GetByID(ctx, req.RoundID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find round: %w", err)
	}
	if round.Status == model.RoundStatusCompleted {
		return nil, ErrRoundCompleted
	}

	inProgress, err := s.exams.ListInProgressByUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("list in-progress: %w", err)
	}

	for i := range inProgress {
		if inProgress[i].RoundID == req.RoundID {
			resumed := &inProgress[i]
			s.cleanupOthers(ctx, inProgress, resumed.ID)
			s.cacheActiveExam(ctx, req.UserID, resumed.ID)
			s.log.Info().Int64("exam_id", resumed.ID).Int64("user_id", req.UserID).Msg("exam resumed")
			return resumed, nil
		}
	}
	s.cleanupOthers(ctx, inProgress, 0)

	questions, err := s.questions.ListByRound(ctx, req.RoundID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	mode := req.Mode
	if mode == "" {
		mode = model.ExamModeOnline
	}

	exam := &model.Exam{
		UserID:     req.UserID,
		RoundID:    req.RoundID,
		Mode:       mode,
		TotalCount: len(questions),
		Status:     model.ExamStatusInProgress,
	}
	if err := s.exams.Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("create exam: %w", err)
	}

	questionIDs := make([]int64, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}
	if err := s.answers.CreateBlankBatch(ctx, exam.ID, questionIDs); err != nil {
		return nil, fmt.Errorf("create blank answers: %w", err)
	}

	s.cacheActiveExam(ctx, req.UserID, exam.ID)
	s.log.Info().Int64("exam_id", exam.ID).Int64("user_id", req.UserID).
		Int64("round_id", req.RoundID).Str("mode", string(mode)).Msg("exam started")
	return exam, nil
}

// SaveTextAnswer grades and stores one question's answer mid-exam. The
// answer key comes from the Redis round cache with a database fallback.
func (s *ExamService) SaveTextAnswer(ctx context.Context, examID, questionID int64, answer string) (*model.AnswerResult, error) {
	exam, err := s.Get(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam.Status != model.ExamStatusInProgress {
		return nil, ErrExamNotInProgress
	}

	key, err := s.answerKey(ctx, exam.RoundID, questionID)
	if err != nil {
		return nil, err
	}

	correct := grading.Correct(answer, key.Answer, key.AltAnswers)
	if err := s.answers.Save(ctx, &model.ExamAnswer{
		ExamID:     examID,
		QuestionID: questionID,
		UserAnswer: answer,
		IsCorrect:  correct,
	}); err != nil {
		return nil, fmt.Errorf("save answer: %w", err)
	}

	return &model.AnswerResult{
		QuestionID:    questionID,
		UserAnswer:    answer,
		CorrectAnswer: key.Answer,
		IsCorrect:     correct,
	}, nil
}

// Submit finalizes an exam. Every stored answer is re-graded against the
// current answer key before counting, so mid-exam question edits cannot
// skew the score. Submitting an already-completed exam returns it as is.
func (s *ExamService) Submit(ctx context.Context, examID int64) (*model.Exam, error) {
	exam, err := s.Get(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam.Status == model.ExamStatusCompleted {
		return exam, nil
	}

	if err := s.regrade(ctx, exam); err != nil {
		return nil, err
	}

	correctCount, err := s.answers.CountCorrect(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("count correct: %w", err)
	}

	passScore := DefaultPassScore
	round, err := s.rounds.GetByID(ctx, exam.RoundID)
	if err == nil && round.PassScore > 0 {
		passScore = round.PassScore
	}

	exam.CorrectCount = correctCount
	exam.Score = correctCount
	exam.IsPassed = correctCount >= passScore
	if err := s.exams.Complete(ctx, exam); err != nil {
		return nil, fmt.Errorf("complete exam: %w", err)
	}

	s.rdb.Del(ctx, config.CacheKey.UserActiveExamKey(exam.UserID))

	completed, err := s.exams.CountCompletedByRound(ctx, exam.RoundID)
	if err == nil && completed >= roundAutoCompleteCount {
		if err := s.rounds.UpdateStatus(ctx, exam.RoundID, model.RoundStatusCompleted); err != nil {
			s.log.Warn().Err(err).Int64("round_id", exam.RoundID).Msg("round auto-complete failed")
		} else {
			s.log.Info().Int64("round_id", exam.RoundID).Msg("round auto-completed")
		}
	}

	user, err := s.users.GetByID(ctx, exam.UserID)
	if err == nil {
		if err := s.events.EnqueueActivityLog(ctx, model.ActivityLog{
			UserID:   user.ID,
			UserName: user.Name,
			Action:   "EXAM_SUBMIT",
			Detail:   fmt.Sprintf("round=%d score=%d passed=%t", exam.RoundID, exam.Score, exam.IsPassed),
		}); err != nil {
			s.log.Warn().Err(err).Msg("enqueue submit log failed")
		}
	}
	if err := s.events.EnqueueAchievementCheck(ctx, model.CheckEvent{
		UserID: exam.UserID,
		Event:  model.CheckEventExamComplete,
		ExamID: exam.ID,
	}); err != nil {
		s.log.Warn().Err(err).Msg("enqueue exam check failed")
	}

	s.log.Info().Int64("exam_id", exam.ID).Int("score", exam.Score).
		Bool("passed", exam.IsPassed).Msg("exam submitted")
	return exam, nil
}

// SubmitOfflineGraded grades reviewed answers by question position,
// persists them and finalizes the exam.
func (s *ExamService) SubmitOfflineGraded(ctx context.Context, examID int64, offline []model.OfflineAnswer) (*model.Exam, error) {
	exam, err := s.Get(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam.Status == model.ExamStatusCompleted {
		return exam, nil
	}

	questions, err := s.questions.ListByRound(ctx, exam.RoundID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(offline) != len(questions) {
		return nil, ErrAnswerMismatch
	}

	for _, oa := range offline {
		if oa.QuestionNumber < 1 || oa.QuestionNumber > len(questions) {
			return nil, ErrAnswerMismatch
		}
		q := questions[oa.QuestionNumber-1]
		if err := s.answers.Save(ctx, &model.ExamAnswer{
			ExamID:     examID,
			QuestionID: q.ID,
			UserAnswer: oa.UserAnswer,
			IsCorrect:  grading.Correct(oa.UserAnswer, q.Answer, q.AltAnswers),
		}); err != nil {
			return nil, fmt.Errorf("save answer %d: %w", oa.QuestionNumber, err)
		}
	}

	return s.Submit(ctx, examID)
}

// Get retrieves one exam.
func (s *ExamService) Get(ctx context.Context, id int64) (*model.Exam, error) {
	exam, err := s.exams.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return exam, err
}

// List retrieves all exams.
func (s *ExamService) List(ctx context.Context) ([]model.Exam, error) {
	return s.exams.List(ctx)
}

// ListByUser retrieves one user's exams.
func (s *ExamService) ListByUser(ctx context.Context, userID int64) ([]model.Exam, error) {
	return s.exams.ListByUser(ctx, userID)
}

// ListByRound retrieves a round's exams.
func (s *ExamService) ListByRound(ctx context.Context, roundID int64) ([]model.Exam, error) {
	return s.exams.ListByRound(ctx, roundID)
}

// Answers retrieves an exam's answers in question order.
func (s *ExamService) Answers(ctx context.Context, examID int64) ([]model.ExamAnswer, error) {
	return s.answers.ListByExam(ctx, examID)
}

// WrongAnswers retrieves an exam's incorrect answers.
func (s *ExamService) WrongAnswers(ctx context.Context, examID int64) ([]model.ExamAnswer, error) {
	return s.answers.ListWrongByExam(ctx, examID)
}

// Ranking retrieves a round's leaderboard.
func (s *ExamService) Ranking(ctx context.Context, roundID int64) ([]model.RankingEntry, error) {
	return s.exams.Ranking(ctx, roundID)
}

// Participants lists everyone who finished a round with their standing.
func (s *ExamService) Participants(ctx context.Context, roundID int64) ([]model.RoundParticipant, error) {
	return s.exams.Participants(ctx, roundID)
}

// Delete removes an exam record.
func (s *ExamService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.exams.Delete(ctx, id)
}

// answerKey fetches one question's grading data from the Redis round
// cache, falling back to PostgreSQL on a miss.
func (s *ExamService) answerKey(ctx context.Context, roundID, questionID int64) (*AnswerKeyEntry, error) {
	raw, err := s.rdb.HGet(ctx, config.CacheKey.RoundAnswerKeyKey(roundID), strconv.FormatInt(questionID, 10)).Result()
	if err == nil {
		entry := &AnswerKeyEntry{}
		if err := json.Unmarshal([]byte(raw), entry); err == nil {
			return entry, nil
		}
		s.log.Warn().Int64("question_id", questionID).Msg("corrupt answer key entry, falling back to db")
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("answer key lookup failed, falling back to db")
	}

	q, err := s.questions.GetByID(ctx, questionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find question: %w", err)
	}
	if q.RoundID != roundID {
		return nil, ErrNotFound
	}
	return &AnswerKeyEntry{Answer: q.Answer, AltAnswers: q.AltAnswers}, nil
}

// regrade recomputes correctness for every stored answer from the
// current question set.
func (s *ExamService) regrade(ctx context.Context, exam *model.Exam) error {
	questions, err := s.questions.ListByRound(ctx, exam.RoundID)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}
	byID := make(map[int64]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	answers, err := s.answers.ListByExam(ctx, exam.ID)
	if err != nil {
		return fmt.Errorf("list answers: %w", err)
	}

	for i := range answers {
		a := &answers[i]
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		correct := grading.Correct(a.UserAnswer, q.Answer, q.AltAnswers)
		if correct == a.IsCorrect {
			continue
		}
		a.IsCorrect = correct
		if err := s.answers.Save(ctx, a); err != nil {
			return fmt.Errorf("regrade answer: %w", err)
		}
	}
	return nil
}

func (s *ExamService) cleanupOthers(ctx context.Context, inProgress []model.Exam, keepID int64) {
	for _, e := range inProgress {
		if e.ID == keepID {
			continue
		}
		if err := s.exams.Delete(ctx, e.ID); err != nil {
			s.log.Warn().Err(err).Int64("exam_id", e.ID).Msg("stale exam cleanup failed")
		}
	}
}

func (s *ExamService) cacheActiveExam(ctx context.Context, userID, examID int64) {
	if err := s.rdb.Set(ctx, config.CacheKey.UserActiveExamKey(userID), examID, 0).Err(); err != nil {
		s.log.Warn().Err(err).Msg("active exam cache failed")
	}
}
