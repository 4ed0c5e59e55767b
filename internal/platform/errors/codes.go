// Package errors provides coded domain errors for the assistant registries
// and collaborator clients. Codes cross the tool boundary unchanged so a
// calling orchestrator can render a deterministic user-facing message.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Meeting errors
	CodeMeetingEmptyTitle      Code = "MEETING_EMPTY_TITLE"
	CodeMeetingInvalidDate     Code = "MEETING_INVALID_DATE"
	CodeMeetingInvalidTime     Code = "MEETING_INVALID_TIME"
	CodeMeetingInvalidDuration Code = "MEETING_INVALID_DURATION"
	CodeMeetingConflict        Code = "MEETING_CONFLICT"
	CodeMeetingNotFound        Code = "MEETING_NOT_FOUND"

	// Order errors
	CodeOrderUnknownPizza      Code = "ORDER_UNKNOWN_PIZZA"
	CodeOrderUnknownRestaurant Code = "ORDER_UNKNOWN_RESTAURANT"
	CodeOrderInvalidSize       Code = "ORDER_INVALID_SIZE"
	CodeOrderInvalidQuantity   Code = "ORDER_INVALID_QUANTITY"
	CodeOrderNotFound          Code = "ORDER_NOT_FOUND"
	CodeOrderInvalidTransition Code = "ORDER_INVALID_STATUS_TRANSITION"

	// Question errors
	CodeQuestionEmptyText       Code = "QUESTION_EMPTY_TEXT"
	CodeQuestionEmptyOptions    Code = "QUESTION_EMPTY_OPTIONS"
	CodeQuestionUnknownOption   Code = "QUESTION_UNKNOWN_OPTION"
	CodeQuestionNotFound        Code = "QUESTION_NOT_FOUND"
	CodeQuestionAlreadyAnswered Code = "QUESTION_ALREADY_ANSWERED"

	// Mail errors
	CodeMailMissingField  Code = "MAIL_MISSING_FIELD"
	CodeMailMissingAPIKey Code = "MAIL_MISSING_API_KEY"
	CodeMailUpstream      Code = "MAIL_UPSTREAM"

	// Search errors
	CodeSearchEmptyQuery Code = "SEARCH_EMPTY_QUERY"
	CodeSearchUpstream   Code = "SEARCH_UPSTREAM"

	// PDF errors
	CodePDFFileNotFound Code = "PDF_FILE_NOT_FOUND"
	CodePDFInvalidRange Code = "PDF_INVALID_PAGE_RANGE"
	CodePDFUnreadable   Code = "PDF_UNREADABLE"
)

// Kind buckets codes into the recovery categories callers act on.
type Kind string

const (
	// KindValidation marks malformed or out-of-range input; the caller must
	// correct the request and retry.
	KindValidation Kind = "VALIDATION"
	// KindConflict marks a meeting slot collision; the caller must pick a
	// different slot.
	KindConflict Kind = "CONFLICT"
	// KindNotFound marks an unknown identifier.
	KindNotFound Kind = "NOT_FOUND"
	// KindAlreadyAnswered marks a duplicate response to a closed question.
	KindAlreadyAnswered Kind = "ALREADY_ANSWERED"
	// KindUpstream marks a failure in an external collaborator.
	KindUpstream Kind = "UPSTREAM"
	// KindInternal marks everything else.
	KindInternal Kind = "INTERNAL"
)

// Kind maps domain codes to recovery categories.
func (c Code) Kind() Kind {
	switch c {
	case CodeMeetingEmptyTitle,
		CodeMeetingInvalidDate,
		CodeMeetingInvalidTime,
		CodeMeetingInvalidDuration,
		CodeOrderUnknownPizza,
		CodeOrderUnknownRestaurant,
		CodeOrderInvalidSize,
		CodeOrderInvalidQuantity,
		CodeOrderInvalidTransition,
		CodeQuestionEmptyText,
		CodeQuestionEmptyOptions,
		CodeQuestionUnknownOption,
		CodeMailMissingField,
		CodeSearchEmptyQuery,
		CodePDFInvalidRange:
		return KindValidation

	case CodeMeetingConflict:
		return KindConflict

	case CodeMeetingNotFound,
		CodeOrderNotFound,
		CodeQuestionNotFound,
		CodePDFFileNotFound:
		return KindNotFound

	case CodeQuestionAlreadyAnswered:
		return KindAlreadyAnswered

	case CodeMailMissingAPIKey,
		CodeMailUpstream,
		CodeSearchUpstream,
		CodePDFUnreadable:
		return KindUpstream

	default:
		return KindInternal
	}
}
