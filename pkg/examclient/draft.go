package examclient

import "context"

// Draft is the in-memory answer cache for one session. Set is a pure
// local mutation so typing is never blocked on I/O; Flush sends a
// single question's value to the server before navigation or submit.
type Draft struct {
	answers map[int64]string
}

// NewDraft creates an empty draft.
func NewDraft() *Draft {
	return &Draft{answers: make(map[int64]string)}
}

// Set stores an answer locally. Idempotent for equal values.
func (d *Draft) Set(questionID int64, value string) {
	d.answers[questionID] = value
}

// Value returns the drafted answer for a question, "" when untouched.
func (d *Draft) Value(questionID int64) string {
	return d.answers[questionID]
}

// Seed loads previously saved answers, for resumed sessions.
func (d *Draft) Seed(answers []Answer) {
	for _, a := range answers {
		if a.UserAnswer != "" {
			d.answers[a.QuestionID] = a.UserAnswer
		}
	}
}

// Flush sends one question's drafted answer to the server. An empty
// value is skipped so a saved answer is never overwritten with
// emptiness just because the field was not touched this visit.
func (d *Draft) Flush(ctx context.Context, client *Client, examID, questionID int64) error {
	value, ok := d.answers[questionID]
	if !ok || value == "" {
		return nil
	}
	return client.SaveAnswer(ctx, examID, questionID, value)
}
