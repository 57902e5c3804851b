package engine

import (
	"context"
	"errors"
	"fmt"

	"kanbanbox-be/internal/store"
)

// Kind tags every error the engine returns so callers can branch without
// string matching. StoreUnavailable is the only kind safe to blindly retry.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindForbidden          Kind = "forbidden"
	KindInvalidPosition    Kind = "invalid_position"
	KindInvalidArgument    Kind = "invalid_argument"
	KindLastOwnerViolation Kind = "last_owner_violation"
	KindConflict           Kind = "conflict"
	KindStoreUnavailable   Kind = "store_unavailable"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func errf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from any error the engine produced.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, store.ErrNotFound) {
		return KindNotFound
	}
	return KindStoreUnavailable
}

// translate normalizes errors escaping a transaction: engine errors pass
// through, a store miss becomes NotFound, everything else (driver faults,
// cancelled contexts) becomes StoreUnavailable for the caller to retry.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, store.ErrNotFound) {
		return errf(KindNotFound, "entity not found")
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errf(KindStoreUnavailable, "request cancelled: %v", err)
	}
	return errf(KindStoreUnavailable, "store error: %v", err)
}
