package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// ExamAnswerRepository handles per-question answer data access.
type ExamAnswerRepository struct {
	pool *pgxpool.Pool
}

// NewExamAnswerRepository creates a new ExamAnswerRepository.
func NewExamAnswerRepository(pool *pgxpool.Pool) *ExamAnswerRepository {
	return &ExamAnswerRepository{pool: pool}
}

const examAnswerColumns = `a.id, a.exam_id, a.question_id, a.user_answer, a.is_correct,
	a.ocr_raw_text, a.image_path, a.created_at`

// CreateBlankBatch inserts one empty answer row per question so an exam's
// answer set always matches the round's shape.
func (r *ExamAnswerRepository) CreateBlankBatch(ctx context.Context, examID int64, questionIDs []int64) error {
	if len(questionIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO exam_answers (exam_id, question_id, user_answer, is_correct)
		 SELECT $1, qid, '', FALSE FROM UNNEST($2::bigint[]) AS qid
		 ON CONFLICT (exam_id, question_id) DO NOTHING`,
		examID, questionIDs)
	return err
}

// Save upserts one question's answer within an exam.
func (r *ExamAnswerRepository) Save(ctx context.Context, a *model.ExamAnswer) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exam_answers (exam_id, question_id, user_answer, is_correct, ocr_raw_text, image_path)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (exam_id, question_id) DO UPDATE
		   SET user_answer = EXCLUDED.user_answer,
		       is_correct = EXCLUDED.is_correct,
		       ocr_raw_text = EXCLUDED.ocr_raw_text,
		       image_path = EXCLUDED.image_path
		 RETURNING id, created_at`,
		a.ExamID, a.QuestionID, a.UserAnswer, a.IsCorrect, a.OCRRawText, a.ImagePath,
	).Scan(&a.ID, &a.CreatedAt)
}

// ListByExam retrieves an exam's answers in the round's question order.
func (r *ExamAnswerRepository) ListByExam(ctx context.Context, examID int64) ([]model.ExamAnswer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+examAnswerColumns+`
		 FROM exam_answers a
		 JOIN questions q ON a.question_id = q.id
		 WHERE a.exam_id = $1
		 ORDER BY q.is_review ASC, q.seq_no ASC, q.id ASC`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAnswers(rows)
}

// ListWrongByExam retrieves an exam's incorrect answers in question order.
func (r *ExamAnswerRepository) ListWrongByExam(ctx context.Context, examID int64) ([]model.ExamAnswer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+examAnswerColumns+`
		 FROM exam_answers a
		 JOIN questions q ON a.question_id = q.id
		 WHERE a.exam_id = $1 AND a.is_correct = FALSE
		 ORDER BY q.is_review ASC, q.seq_no ASC, q.id ASC`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAnswers(rows)
}

// CountCorrect returns the number of correct answers in an exam.
func (r *ExamAnswerRepository) CountCorrect(ctx context.Context, examID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exam_answers WHERE exam_id = $1 AND is_correct = TRUE`, examID).Scan(&n)
	return n, err
}

func collectAnswers(rows pgx.Rows) ([]model.ExamAnswer, error) {
	var answers []model.ExamAnswer
	for rows.Next() {
		var a model.ExamAnswer
		if err := rows.Scan(&a.ID, &a.ExamID, &a.QuestionID, &a.UserAnswer,
			&a.IsCorrect, &a.OCRRawText, &a.ImagePath, &a.CreatedAt); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
