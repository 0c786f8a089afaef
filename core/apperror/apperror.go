package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the failure categories the engine
// distinguishes. Kinds are stable strings so they can be serialized into the
// durable error log and API responses.
type Kind string

const (
	// KindValidation marks user-input failures detected before any mutation.
	KindValidation Kind = "validation"
	// KindNotFound marks a missing entry, auction or listing.
	KindNotFound Kind = "not_found"
	// KindInsufficientQuantity marks a sell that exceeds the owned amount.
	KindInsufficientQuantity Kind = "insufficient_quantity"
	// KindRemoteUnavailable marks a transport failure talking to the marketplace.
	KindRemoteUnavailable Kind = "remote_unavailable"
	// KindRemoteGone marks a remote listing that is already absent.
	// The adapter sets this from the remote error body; the engine treats it as success.
	KindRemoteGone Kind = "remote_already_absent"
	// KindStorage marks a ledger or transaction-log persistence failure.
	KindStorage Kind = "storage"
	// KindInternal is the fallback for errors that carry no explicit kind.
	KindInternal Kind = "internal"
)

// Error is the structured application error. Op names the operation that
// failed so the trader can tell whether their local books or their public
// listing is the out-of-sync side.
type Error struct {
	// Op is the originating operation name, e.g. "StockItemSell".
	Op string
	// Kind classifies the failure.
	Kind Kind
	// Message is an optional human-readable detail.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, string(e.Kind))
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with a message and no underlying cause.
func New(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an operation name and kind to an underlying error.
// A nil err yields nil so call sites can wrap unconditionally.
func Wrap(op string, kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// KindOf returns the Kind of the outermost *Error in err's chain,
// or KindInternal if there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether any *Error in err's chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var appErr *Error
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Kind == kind {
			return true
		}
		err = appErr.Err
	}
	return false
}

// OpOf returns the operation name of the outermost *Error, or "" if none.
func OpOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Op
	}
	return ""
}
