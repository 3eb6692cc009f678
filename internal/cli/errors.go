package cli

import (
	"errors"

	"github.com/sweetshop/storefront/internal/core/domain"
)

// Exit codes let scripts tell rejection classes apart.
const (
	ExitFailure  = 1 // remote or unexpected failure
	ExitBadInput = 2 // local validation rejection, nothing was sent
	ExitAuth     = 3 // not logged in, wrong role, or rejected credentials
)

// ExitCode maps a command error to its process exit code.
func ExitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrAuthRejected),
		errors.Is(err, domain.ErrMalformedCredential):
		return ExitAuth
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrOutOfStock):
		return ExitBadInput
	default:
		return ExitFailure
	}
}

// UserMessage turns a command error into the line shown to the user. Known
// failures get a friendly phrasing; anything else is printed as-is.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "You are not allowed to do that. Log in (with the right account) and try again."
	case errors.Is(err, domain.ErrMalformedCredential):
		return "Your stored credential could not be read and was cleared. Please log in again."
	case errors.Is(err, domain.ErrOutOfStock):
		return "That sweet is sold out."
	default:
		return err.Error()
	}
}
