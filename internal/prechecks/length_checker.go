package prechecks

import (
	"fmt"
	"unicode/utf8"
)

const DefaultMaxPromptRunes = 8000

type LengthChecker struct {
	MaxRunes int
}

func NewLengthChecker(maxRunes int) *LengthChecker {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxPromptRunes
	}
	return &LengthChecker{
		MaxRunes: maxRunes,
	}
}

func (c *LengthChecker) Name() string {
	return "length-checker"
}

// Check counts characters, not bytes, so multi-byte prompts are not penalized.
func (c *LengthChecker) Check(prompt string) error {
	length := utf8.RuneCountInString(prompt)
	if length > c.MaxRunes {
		return fmt.Errorf("%w: %d characters, limit is %d", ErrPromptTooLong, length, c.MaxRunes)
	}
	return nil
}
