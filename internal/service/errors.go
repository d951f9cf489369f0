package service

import "errors"

// Domain errors translated to API error codes by the handlers.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidProfileName = errors.New("invalid profile name")
	ErrRoundCompleted     = errors.New("round is already completed")
	ErrNoQuestions        = errors.New("round has no questions")
	ErrExamNotInProgress  = errors.New("exam is not in progress")
	ErrNoPreviousRound    = errors.New("no previous round")
	ErrAnswerMismatch     = errors.New("answer count does not match question count")
	ErrBadgeNotOwned      = errors.New("badge not owned")
	ErrInvalidSlot        = errors.New("invalid badge slot")
)
