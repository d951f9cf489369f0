package examclient

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// State is the session controller's lifecycle phase.
type State string

const (
	StateLoading    State = "LOADING"
	StateInProgress State = "IN_PROGRESS"
	StateSubmitting State = "SUBMITTING"
	StateSubmitted  State = "SUBMITTED"
	StateError      State = "ERROR"
)

// defaultDurationSeconds is the fixed online exam length.
const defaultDurationSeconds = 3600

// ErrNotInProgress is returned for actions outside IN_PROGRESS,
// including a second submit.
var ErrNotInProgress = errors.New("examclient: session is not in progress")

// Controller drives one online exam session from start to submit. One
// instance per active session; created at session start and torn down
// on submit or navigate-away, never shared.
type Controller struct {
	client   *Client
	log      zerolog.Logger
	userID   int64
	roundID  int64
	duration int

	mu      sync.Mutex
	state   State
	session *Session
	nav     *Navigator
	draft   *Draft
	timer   *Timer
}

// NewController creates a controller for one user's attempt at a round.
func NewController(client *Client, userID, roundID int64, log zerolog.Logger) *Controller {
	c := &Controller{
		client:   client,
		log:      log.With().Str("component", "exam_session").Logger(),
		userID:   userID,
		roundID:  roundID,
		duration: defaultDurationSeconds,
		state:    StateLoading,
	}
	c.draft = NewDraft()
	c.timer = NewTimer(nil, c.onExpire)
	return c
}

// SetDuration overrides the countdown length. Must be called before Start.
func (c *Controller) SetDuration(seconds int) { c.duration = seconds }

// Start loads the session and question list concurrently, seeds the
// draft from any previously saved answers, and begins the countdown.
// Load failures are fatal: the controller enters ERROR and the caller
// routes the user back to the exam list.
func (c *Controller) Start(ctx context.Context) error {
	var (
		wg        sync.WaitGroup
		session   *Session
		questions []Question
		startErr  error
		listErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		session, startErr = c.client.StartExam(ctx, c.userID, c.roundID, ModeOnline)
	}()
	go func() {
		defer wg.Done()
		questions, listErr = c.client.Questions(ctx, c.roundID)
	}()
	wg.Wait()

	if startErr != nil || listErr != nil {
		c.setState(StateError)
		if startErr != nil {
			return startErr
		}
		return listErr
	}

	// Resume support: prior answers are best-effort since a blank
	// draft is a safe fallback.
	if saved, err := c.client.Answers(ctx, session.ID); err != nil {
		c.log.Warn().Err(err).Int64("exam_id", session.ID).Msg("could not load saved answers")
	} else {
		c.draft.Seed(saved)
	}

	c.mu.Lock()
	c.session = session
	c.nav = NewNavigator(questions)
	c.state = StateInProgress
	c.mu.Unlock()

	c.timer.Start(c.duration)
	return nil
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns the latest server snapshot.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Current returns the displayed question.
func (c *Controller) Current() *Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nav == nil {
		return nil
	}
	return c.nav.Current()
}

// Remaining returns the countdown's seconds left.
func (c *Controller) Remaining() int { return c.timer.Remaining() }

// Answer updates the draft for a question. Pure local state.
func (c *Controller) Answer(questionID int64, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInProgress {
		return ErrNotInProgress
	}
	c.draft.Set(questionID, value)
	return nil
}

// Next flushes the current answer then advances. A flush failure is
// logged and navigation proceeds: losing one autosave is non-fatal.
func (c *Controller) Next(ctx context.Context) error {
	return c.navigate(ctx, func() bool { return c.nav.Next() })
}

// Prev flushes the current answer then moves back.
func (c *Controller) Prev(ctx context.Context) error {
	return c.navigate(ctx, func() bool { return c.nav.Prev() })
}

func (c *Controller) navigate(ctx context.Context, move func() bool) error {
	c.mu.Lock()
	if c.state != StateInProgress {
		c.mu.Unlock()
		return ErrNotInProgress
	}
	c.flushCurrentLocked(ctx)
	move()
	c.mu.Unlock()
	return nil
}

// flushCurrentLocked sends the displayed question's draft. Callers hold mu.
func (c *Controller) flushCurrentLocked(ctx context.Context) {
	q := c.nav.Current()
	if q == nil {
		return
	}
	if err := c.draft.Flush(ctx, c.client, c.session.ID, q.ID); err != nil {
		c.log.Warn().Err(err).Int64("question_id", q.ID).Msg("autosave failed")
	}
}

// Submit flushes the current answer and grades the session. The guard
// flips to SUBMITTING synchronously so a double invocation cannot post
// twice; a failed submit returns the controller to IN_PROGRESS for a
// manual retry.
func (c *Controller) Submit(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	if c.state != StateInProgress {
		c.mu.Unlock()
		return nil, ErrNotInProgress
	}
	c.state = StateSubmitting
	c.flushCurrentLocked(ctx)
	examID := c.session.ID
	c.mu.Unlock()

	result, err := c.client.Submit(ctx, examID)
	if err != nil {
		c.setState(StateInProgress)
		return nil, err
	}

	c.timer.Stop()
	c.mu.Lock()
	c.session = result
	c.state = StateSubmitted
	c.mu.Unlock()
	return result, nil
}

// Close tears the session down, stopping the countdown so no tick can
// fire after the user navigates away.
func (c *Controller) Close() {
	c.timer.Stop()
}

// onExpire auto-submits without confirmation: the countdown itself was
// the warning.
func (c *Controller) onExpire() {
	if _, err := c.Submit(context.Background()); err != nil && !errors.Is(err, ErrNotInProgress) {
		c.log.Error().Err(err).Msg("auto-submit on expiry failed")
	}
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
