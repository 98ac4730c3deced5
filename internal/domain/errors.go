package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing contact.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate contact.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidContact signals contact fields that fail validation.
	ErrInvalidContact = errors.New("invalid contact")

	// ErrInvalidCommandFormat signals a structurally invalid find command (bad mode flag, oversized input).
	ErrInvalidCommandFormat = errors.New("invalid command format")
	// ErrMultipleWords signals a multi-word value where a single word is required.
	ErrMultipleWords = errors.New("multiple words in value")
	// ErrInvalidValue signals a blank or malformed search value.
	ErrInvalidValue = errors.New("invalid search value")
	// ErrNoParameters signals a find command without any search parameter.
	ErrNoParameters = errors.New("no search parameters")
)

// Messages shown to the user for find command failures.
const (
	MessageUsage = "find: Finds all contacts matching the given search parameters.\n" +
		"Without a flag, a contact matches if any parameter matches.\n" +
		"With -s, a contact matches only if every supplied field matches.\n" +
		"Parameters: [-s] [n/NAME]... [p/PHONE]... [em/EMAIL]... [a/ADDRESS]... " +
		"[e/EDUCATION]... [i/INTERNSHIP]... [m/MODULE]... [c/CCA]...\n" +
		"Example: find -s n/Alex m/CS2103T"
	MessageInvalidCommandFormat = "Invalid command format! \n%s"
	MessageMultipleWords        = "Each value must be limited to one word\n" +
		"Eg: find n/Alex n/Ho instead of n/Alex Ho"
	MessageNoParameters = "At least one search parameter must be provided.\n" + MessageUsage
)

// UsageError carries the user-facing message for a rejected find command.
type UsageError struct {
	Err     error
	Message string
}

func (e *UsageError) Error() string { return e.Err.Error() + ": " + e.Message }

func (e *UsageError) Unwrap() error { return e.Err }

// NewUsageError creates a UsageError wrapping the given sentinel.
func NewUsageError(sentinel error, message string) error {
	return &UsageError{Err: sentinel, Message: message}
}

// InvalidCommandFormat returns the error for an unrecognized find command shape.
func InvalidCommandFormat() error {
	return NewUsageError(ErrInvalidCommandFormat, fmt.Sprintf(MessageInvalidCommandFormat, MessageUsage))
}

// UserMessage returns the message to show the user for err.
// Errors that are not usage errors map to their own text.
func UserMessage(err error) string {
	var ue *UsageError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return err.Error()
}
