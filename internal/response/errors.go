package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidProfile ErrCode = "INVALID_PROFILE"
	ErrTokenRequired  ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid   ErrCode = "TOKEN_INVALID"
	ErrTokenExpired   ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden    ErrCode = "FORBIDDEN"
	ErrNotExamOwner ErrCode = "NOT_EXAM_OWNER"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Exam-specific ─────────────────────────────────────────────────
	ErrRoundCompleted       ErrCode = "ROUND_COMPLETED"
	ErrNoQuestions          ErrCode = "NO_QUESTIONS"
	ErrExamNotInProgress    ErrCode = "EXAM_NOT_IN_PROGRESS"
	ErrExamAlreadySubmitted ErrCode = "EXAM_ALREADY_SUBMITTED"
	ErrAnswerCountMismatch  ErrCode = "ANSWER_COUNT_MISMATCH"
	ErrNoPreviousRound      ErrCode = "NO_PREVIOUS_ROUND"

	// ─── Badges ────────────────────────────────────────────────────────
	ErrBadgeNotOwned ErrCode = "BADGE_NOT_OWNED"
	ErrInvalidSlot   ErrCode = "INVALID_SLOT"

	// ─── Uploads / OCR ─────────────────────────────────────────────────
	ErrFileRequired     ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile  ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge     ErrCode = "FILE_TOO_LARGE"
	ErrExtractionFailed ErrCode = "EXTRACTION_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidProfile:
		return "Profile name is invalid."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrTokenExpired:
		return "Authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrNotExamOwner:
		return "This exam belongs to another user."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	// ─── Exam-specific ─────────────────────────────────────────────────
	case ErrRoundCompleted:
		return "This round is already completed."
	case ErrNoQuestions:
		return "This round has no questions."
	case ErrExamNotInProgress:
		return "This exam is not in progress."
	case ErrExamAlreadySubmitted:
		return "This exam has already been submitted."
	case ErrAnswerCountMismatch:
		return "The number of answers does not match the number of questions."
	case ErrNoPreviousRound:
		return "There is no previous round to draw review questions from."

	// ─── Badges ────────────────────────────────────────────────────────
	case ErrBadgeNotOwned:
		return "You have not earned this badge."
	case ErrInvalidSlot:
		return "Badge slot must be between 1 and 3."

	// ─── Uploads / OCR ─────────────────────────────────────────────────
	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "File size exceeds the limit."
	case ErrExtractionFailed:
		return "Could not extract answers from the uploaded image."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
