package prechecks

import (
	"strings"
	"unicode/utf8"
)

// FormatChecker rejects empty, whitespace-only and non UTF-8 prompts.
type FormatChecker struct {
}

func NewFormatChecker() *FormatChecker {
	return &FormatChecker{}
}

func (c *FormatChecker) Name() string {
	return "format-checker"
}

func (c *FormatChecker) Check(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}

	if !utf8.ValidString(prompt) {
		return ErrInvalidEncoding
	}

	return nil
}
