package prechecks

import "errors"

var (
	ErrEmptyPrompt     = errors.New("prompt is empty")
	ErrPromptTooLong   = errors.New("prompt is too long")
	ErrInvalidEncoding = errors.New("prompt is not valid UTF-8")
)

// Checker validates a prompt before any remote call is made.
type Checker interface {
	Name() string
	Check(prompt string) error
}
