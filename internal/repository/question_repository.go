package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, round_id, question_type, answer_type, question_text,
	answer, alt_answers, option1, option2, option3, option4, hint, seq_no, is_review, created_at`

// GetByID retrieves a question by ID.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.RoundID, &q.QuestionType, &q.AnswerType, &q.QuestionText,
		&q.Answer, &q.AltAnswers, &q.Option1, &q.Option2, &q.Option3, &q.Option4,
		&q.Hint, &q.SeqNo, &q.IsReview, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListByRound retrieves a round's questions: regular questions first, then
// review questions, each in sequence order. This is the exam presentation
// order and must stay stable for offline grading by position.
func (r *QuestionRepository) ListByRound(ctx context.Context, roundID int64) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`
		 FROM questions
		 WHERE round_id = $1
		 ORDER BY is_review ASC, seq_no ASC, id ASC`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuestions(rows)
}

// ListRandomByRound samples questions from a round for review generation.
func (r *QuestionRepository) ListRandomByRound(ctx context.Context, roundID int64, limit int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`
		 FROM questions
		 WHERE round_id = $1 AND is_review = FALSE
		 ORDER BY random()
		 LIMIT $2`, roundID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuestions(rows)
}

// CountByRound returns the number of questions in a round.
func (r *QuestionRepository) CountByRound(ctx context.Context, roundID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM questions WHERE round_id = $1`, roundID).Scan(&n)
	return n, err
}

// MaxSeqNo returns the highest sequence number in a round, 0 when empty.
func (r *QuestionRepository) MaxSeqNo(ctx context.Context, roundID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(seq_no), 0) FROM questions WHERE round_id = $1`, roundID).Scan(&n)
	return n, err
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions
		   (round_id, question_type, answer_type, question_text, answer, alt_answers,
		    option1, option2, option3, option4, hint, seq_no, is_review)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at`,
		q.RoundID, q.QuestionType, q.AnswerType, q.QuestionText, q.Answer, q.AltAnswers,
		q.Option1, q.Option2, q.Option3, q.Option4, q.Hint, q.SeqNo, q.IsReview,
	).Scan(&q.ID, &q.CreatedAt)
}

// Update overwrites a question's editable fields.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET question_type = $1, answer_type = $2, question_text = $3, answer = $4,
		     alt_answers = $5, option1 = $6, option2 = $7, option3 = $8, option4 = $9,
		     hint = $10, seq_no = $11
		 WHERE id = $12`,
		q.QuestionType, q.AnswerType, q.QuestionText, q.Answer, q.AltAnswers,
		q.Option1, q.Option2, q.Option3, q.Option4, q.Hint, q.SeqNo, q.ID)
	return err
}

// Delete removes a question.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}

// DeleteReviewByRound removes all review questions from a round.
func (r *QuestionRepository) DeleteReviewByRound(ctx context.Context, roundID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM questions WHERE round_id = $1 AND is_review = TRUE`, roundID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func collectQuestions(rows pgx.Rows) ([]model.Question, error) {
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.RoundID, &q.QuestionType, &q.AnswerType, &q.QuestionText,
			&q.Answer, &q.AltAnswers, &q.Option1, &q.Option2, &q.Option3, &q.Option4,
			&q.Hint, &q.SeqNo, &q.IsReview, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
