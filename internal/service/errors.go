package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/shopfloor/internal/repository"
)

var (
	// ErrInvalidArgument indicates a required field was missing on a
	// lifecycle call. Never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStorage indicates the session store was unavailable or timed
	// out. Retry policy belongs to the caller; retrying Stop with the
	// same session id is always safe.
	ErrStorage = errors.New("session store unavailable")
)

// wrapStoreErr tags infrastructure failures with ErrStorage while
// letting domain outcomes (NotFound, InvalidArgument) pass through
// unchanged for errors.Is checks at the call site.
func wrapStoreErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, ErrInvalidArgument) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
