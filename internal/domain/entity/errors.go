package entity

import "errors"

type ErrorKind string

const (
	KindConfiguration   ErrorKind = "configuration"
	KindElementNotFound ErrorKind = "element_not_found"
	KindRemoteAPI       ErrorKind = "remote_api"
	KindNetwork         ErrorKind = "network"
	KindTimeout         ErrorKind = "timeout"
	KindParse           ErrorKind = "parse"
	KindInternal        ErrorKind = "internal"
)

// Error carries a user-facing message together with its taxonomy kind.
// Two *Error values match under errors.Is when their kinds are equal.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrConfiguration   = &Error{Kind: KindConfiguration}
	ErrElementNotFound = &Error{Kind: KindElementNotFound}
	ErrRemoteAPI       = &Error{Kind: KindRemoteAPI}
	ErrNetwork         = &Error{Kind: KindNetwork}
	ErrTimeout         = &Error{Kind: KindTimeout}
	ErrParse           = &Error{Kind: KindParse}
)

func NewError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
