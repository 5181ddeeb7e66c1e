package prechecks

import (
	"errors"
	"strings"
	"testing"
)

func TestRunner(t *testing.T) {
	runner := NewStageRunner([]Checker{
		NewFormatChecker(),
		NewLengthChecker(20),
	})

	tests := []struct {
		name        string
		prompt      string
		wantErr     error
		wantChecker string
	}{
		{
			name:   "valid prompt",
			prompt: "room is hot",
		},
		{
			name:        "empty prompt stops at format checker",
			prompt:      "   ",
			wantErr:     ErrEmptyPrompt,
			wantChecker: "format-checker",
		},
		{
			name:        "long prompt",
			prompt:      "the room is far too hot to work in",
			wantErr:     ErrPromptTooLong,
			wantChecker: "length-checker",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runner.Run(tt.prompt)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !strings.HasPrefix(err.Error(), tt.wantChecker) {
				t.Errorf("expected error from %s, got %q", tt.wantChecker, err.Error())
			}
		})
	}
}

func TestRunner_NoCheckers(t *testing.T) {
	runner := NewStageRunner(nil)
	if err := runner.Run(""); err != nil {
		t.Errorf("expected no error without checkers, got %v", err)
	}
}
