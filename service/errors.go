package service

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds surfaced at the interaction boundary. Handlers match these
// with errors.Is and turn them into ephemeral user-facing messages.
var (
	ErrValidation        = errors.New("validation error")
	ErrStateConflict     = errors.New("state conflict")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotFound          = errors.New("not found")
	ErrPermissionDenied  = errors.New("permission denied")
)

// Specific conditions, each wrapping its kind.
var (
	ErrSessionAlreadyRunning = fmt.Errorf("%w: a focus session is already running", ErrStateConflict)
	ErrNoActiveSession       = fmt.Errorf("%w: no active focus session", ErrNotFound)
	ErrOfferAlreadyPurchased = fmt.Errorf("%w: offer already purchased", ErrStateConflict)
	ErrOfferNotFound         = fmt.Errorf("%w: unknown shop offer", ErrNotFound)
	ErrNotYourOffer          = fmt.Errorf("%w: offer belongs to another user", ErrPermissionDenied)
)

// TooEarlyError reports a session validated before its target end.
type TooEarlyError struct {
	Remaining time.Duration
}

func (e *TooEarlyError) Error() string {
	return fmt.Sprintf("session not finished yet, %s remaining", e.Remaining.Round(time.Second))
}

func (e *TooEarlyError) Is(target error) bool {
	return target == ErrStateConflict
}

// CooldownError reports a daily claim attempted before the cooldown elapsed.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("daily reward already claimed, come back in %s", e.Remaining.Round(time.Minute))
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrStateConflict
}
