package services

import "net/http"

// DomainError carries a stable string code plus the HTTP status the boundary
// should answer with. Handlers translate via errors.As; everything else is a
// generic 500.
type DomainError struct {
	Code   string
	Status int
}

func (e *DomainError) Error() string { return e.Code }

func notFound(code string) *DomainError {
	return &DomainError{Code: code, Status: http.StatusNotFound}
}

func conflict(code string) *DomainError {
	return &DomainError{Code: code, Status: http.StatusConflict}
}

func badRequest(code string) *DomainError {
	return &DomainError{Code: code, Status: http.StatusBadRequest}
}

var (
	ErrHiwiNotFound         = notFound("HIWI_NOT_FOUND")
	ErrSessionNotFound      = notFound("SESSION_NOT_FOUND")
	ErrEventNotFound        = notFound("EVENT_NOT_FOUND")
	ErrUserNotFound         = notFound("USER_NOT_FOUND")
	ErrAttendanceNotFound   = notFound("ATTENDANCE_NOT_FOUND")
	ErrDiplomaNotFound      = notFound("DIPLOMA_NOT_FOUND")
	ErrRegistrationNotFound = notFound("REGISTRATION_NOT_FOUND")
	ErrQuizNotFound         = notFound("QUIZ_NOT_FOUND")
	ErrQuestionNotFound     = notFound("QUESTION_NOT_FOUND")
	ErrAnnouncementNotFound = notFound("ANNOUNCEMENT_NOT_FOUND")
	ErrCommentNotFound      = notFound("COMMENT_NOT_FOUND")
	ErrAssignmentNotFound   = notFound("ASSIGNMENT_NOT_FOUND")
	ErrNoActiveEvent        = notFound("NO_ACTIVE_EVENT")

	ErrAlreadyScanned       = conflict("ALREADY_SCANNED")
	ErrAlreadyPresent       = conflict("ALREADY_PRESENT")
	ErrDiplomaAlreadyIssued = conflict("DIPLOMA_ALREADY_ISSUED")
	ErrQuizAlreadyExists    = conflict("QUIZ_ALREADY_EXISTS")
	ErrAlreadySubmitted     = conflict("ALREADY_SUBMITTED")
	ErrAlreadyAssigned      = conflict("ALREADY_ASSIGNED")
	ErrEmailExists          = conflict("EMAIL_ALREADY_EXISTS")

	// The unique index on certificate numbers rejects a colliding issuance;
	// the caller may retry.
	ErrCertificateConflict = conflict("CERTIFICATE_CONFLICT")

	ErrInvalidQRCode      = badRequest("INVALID_QR_CODE")
	ErrInvalidParticipant = badRequest("INVALID_PARTICIPANT")
	ErrInvalidCredentials = &DomainError{Code: "INVALID_CREDENTIALS", Status: http.StatusUnauthorized}
	ErrForbidden          = &DomainError{Code: "FORBIDDEN", Status: http.StatusForbidden}
	ErrNotEligible        = badRequest("PARTICIPANT_NOT_ELIGIBLE")
	ErrEmailMismatch      = badRequest("EMAIL_MISMATCH")
	ErrInvalidDate        = badRequest("INVALID_DATE")
	ErrWrongQuestionCount = badRequest("EXACTLY_10_QUESTIONS_REQUIRED")
	ErrWrongAnswerCount   = badRequest("EXACTLY_10_ANSWERS_REQUIRED")
	ErrCannotDeleteActive = badRequest("CANNOT_DELETE_ACTIVE_EVENT")
	ErrRegistrationClosed = badRequest("REGISTRATION_CLOSED")
	ErrInvalidResetToken  = badRequest("INVALID_RESET_TOKEN")
)
