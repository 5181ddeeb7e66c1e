package prechecks

import (
	"errors"
	"strings"
	"testing"
)

func TestLengthChecker(t *testing.T) {
	checker := NewLengthChecker(5)

	tests := []struct {
		name    string
		prompt  string
		wantErr bool
	}{
		{
			name:   "under limit",
			prompt: "hot",
		},
		{
			name:   "at limit",
			prompt: "hello",
		},
		{
			name:   "multi-byte counted as characters",
			prompt: "部屋が暑い",
		},
		{
			name:    "over limit",
			prompt:  "hello!",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.Check(tt.prompt)
			if tt.wantErr {
				if !errors.Is(err, ErrPromptTooLong) {
					t.Errorf("expected ErrPromptTooLong, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewLengthChecker_Default(t *testing.T) {
	checker := NewLengthChecker(0)
	if checker.MaxRunes != DefaultMaxPromptRunes {
		t.Errorf("Expected default limit %d, got %d", DefaultMaxPromptRunes, checker.MaxRunes)
	}

	if err := checker.Check(strings.Repeat("a", DefaultMaxPromptRunes)); err != nil {
		t.Errorf("unexpected error at default limit: %v", err)
	}
}
