package errors

import "errors"

var (
	ErrEditionNotFound        = errors.New("edition not found")
	ErrEditionAlreadyExists   = errors.New("edition already exists")
	ErrInvalidEditionInput    = errors.New("invalid edition input")
	ErrInvalidStateTransition = errors.New("invalid edition state transition")
	ErrEditionClosed          = errors.New("edition already closed")
	ErrInstantPrizesGenerated = errors.New("instant prizes already generated")
	ErrNoWinningNumbers       = errors.New("no winning numbers provided")
	ErrOutboxPayloadConflict  = errors.New("outbox payload conflict for event id")
)
