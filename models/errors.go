package models

import (
	"errors"
	"fmt"
)

// Kind identifies a failure class. Its string value is sent to clients as the
// error id and must stay stable.
type Kind string

const (
	KindMissingParams      Kind = "missingParams"
	KindNotFound           Kind = "notFound"
	KindDuplicateName      Kind = "duplicateName"
	KindBadRequest         Kind = "badRequest"
	KindInsufficientStocks Kind = "insufficientStocks"
)

// Error is a structured operation failure.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches another *Error of the same kind, so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// With returns a copy of e carrying an extra detail field.
func (e *Error) With(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{Kind: e.Kind, Message: e.Message, Details: details}
}

// Kind sentinels for errors.Is.
var (
	ErrMissingParams      = &Error{Kind: KindMissingParams}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrDuplicateName      = &Error{Kind: KindDuplicateName}
	ErrBadRequest         = &Error{Kind: KindBadRequest}
	ErrInsufficientStocks = &Error{Kind: KindInsufficientStocks}
)

// NewError builds an *Error of the given kind.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
