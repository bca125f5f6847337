package util

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	}
	return "internal"
}

// AppError carries the error kind a controller maps to a status code. Two
// AppErrors match under errors.Is when kind and reason agree, so wrapped
// sentinels keep matching after fmt.Errorf("%w").
type AppError struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Reason == t.Reason
}

func Validation(format string, args ...interface{}) error {
	return &AppError{Kind: KindValidation, Reason: fmt.Sprintf(format, args...)}
}

func NotFound(resource string) error {
	return &AppError{Kind: KindNotFound, Reason: resource + " not found"}
}

func Internal(err error) error {
	return &AppError{Kind: KindInternal, Reason: "internal error", Err: err}
}

// KindOf returns the kind of the first AppError in err's chain; plain errors
// are internal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

var (
	ErrSurveyNotFound   = NotFound("survey")
	ErrQuestionNotFound = NotFound("question")
	ErrOptionNotFound   = NotFound("option")

	ErrSurveyNotPublished   = &AppError{Kind: KindConflict, Reason: "not published"}
	ErrSurveyExpired        = &AppError{Kind: KindConflict, Reason: "expired"}
	ErrResponseLimitReached = &AppError{Kind: KindConflict, Reason: "limit reached"}
	ErrDuplicateSubmission  = &AppError{Kind: KindConflict, Reason: "duplicate submission"}

	ErrAuthRequired = &AppError{Kind: KindValidation, Reason: "login required for non-anonymous survey"}
)
