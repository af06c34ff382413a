package models

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	// InvalidArgument rejects operator input before anything is sent.
	InvalidArgument ErrorKind = iota + 1
	// ConfirmationDeclined is the operator saying no. Not a failure.
	ConfirmationDeclined
	// ExchangeError is anything the order API returned or failed with.
	ExchangeError
	// PrecisionError means a price cannot be carried exactly at PriceScale.
	PrecisionError
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case ConfirmationDeclined:
		return "confirmation declined"
	case ExchangeError:
		return "exchange error"
	case PrecisionError:
		return "precision error"
	}
	return "unknown error"
}

type Error struct {
	Kind ErrorKind
	Op   string
	Err  error

	// Exchange side details, only set for ExchangeError.
	StatusCode int
	Code       int64
	Message    string
	Payload    []byte
}

func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Kind == ExchangeError && e.Message != "" {
		msg += fmt.Sprintf(": code=%d msg=%s", e.Code, e.Message)
		return msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
