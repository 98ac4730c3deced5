package contactdex

import "github.com/kailas-cloud/contactdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound       = domain.ErrNotFound
	ErrAlreadyExists  = domain.ErrAlreadyExists
	ErrInvalidContact = domain.ErrInvalidContact

	ErrInvalidCommandFormat = domain.ErrInvalidCommandFormat
	ErrMultipleWords        = domain.ErrMultipleWords
	ErrInvalidValue         = domain.ErrInvalidValue
	ErrNoParameters         = domain.ErrNoParameters
)

// UsageMessage returns the text to show a user for a failed Find:
// the usage guidance for rejected commands, the error text otherwise.
func UsageMessage(err error) string {
	return domain.UserMessage(err)
}
