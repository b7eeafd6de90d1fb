// Package apperr defines the failure taxonomy services raise and the
// transport layer maps to HTTP statuses.
package apperr

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindInvalid
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func NotFound(msg string) error  { return &Error{Kind: KindNotFound, Msg: msg} }
func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Msg: msg} }
func Conflict(msg string) error  { return &Error{Kind: KindConflict, Msg: msg} }
func Invalid(msg string) error   { return &Error{Kind: KindInvalid, Msg: msg} }

// KindOf returns the taxonomy kind of err, or KindUnknown for store/other
// errors that were not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool  { return KindOf(err) == KindNotFound }
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }
func IsConflict(err error) bool  { return KindOf(err) == KindConflict }
func IsInvalid(err error) bool   { return KindOf(err) == KindInvalid }
