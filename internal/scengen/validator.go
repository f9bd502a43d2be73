package scengen

import (
	"fmt"

	"github.com/abhisek/drillz/internal/scenario"
)

// Validator checks one generated scenario.
type Validator interface {
	Name() string
	Validate(s *scenario.Scenario, input GenerateInput) *ValidationError
}

// ValidationError describes why a generated scenario was dropped.
type ValidationError struct {
	Validator string
	Hand      string
	Message   string
}

func (e *ValidationError) Error() string {
	if e.Hand != "" {
		return fmt.Sprintf("validator %q: %s: %s", e.Validator, e.Hand, e.Message)
	}
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

func reject(v Validator, s *scenario.Scenario, format string, args ...any) *ValidationError {
	return &ValidationError{Validator: v.Name(), Hand: s.Hand, Message: fmt.Sprintf(format, args...)}
}
