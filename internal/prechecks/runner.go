package prechecks

import "fmt"

type StageRunner struct {
	Checkers []Checker
}

func NewStageRunner(checkers []Checker) *StageRunner {
	return &StageRunner{
		Checkers: checkers,
	}
}

// Run applies the checkers in order and returns the first failure.
func (r *StageRunner) Run(prompt string) error {
	for _, checker := range r.Checkers {
		if err := checker.Check(prompt); err != nil {
			return fmt.Errorf("%s: %w", checker.Name(), err)
		}
	}
	return nil
}
