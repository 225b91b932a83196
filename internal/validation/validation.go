// Package validation expresses input constraints as data. Each Field bundles
// a value with its rules; Validate evaluates every rule before any store
// mutation happens and returns the full list of violations, so the API can
// report all problems in one response.
package validation

import "fmt"

// Violation describes a single failed constraint on a named field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Field describes the declarative constraints for one input value.
// A zero rule (MinLen 0, empty OneOf) is simply not checked.
type Field struct {
	Name     string
	Value    string
	Required bool
	MinLen   int
	MaxLen   int
	OneOf    []string
}

// Validate checks every field against its rules and returns all violations.
// A nil result means the input is valid.
func Validate(fields ...Field) []Violation {
	var violations []Violation

	for _, f := range fields {
		violations = append(violations, f.check()...)
	}

	return violations
}

func (f Field) check() []Violation {
	var violations []Violation

	if f.Required && f.Value == "" {
		violations = append(violations, Violation{
			Field:   f.Name,
			Message: "is required",
		})
		// Remaining rules would only repeat the same problem.
		return violations
	}

	// Optional and absent: nothing further to check.
	if f.Value == "" && !f.Required {
		return violations
	}

	if f.MinLen > 0 && len(f.Value) < f.MinLen {
		violations = append(violations, Violation{
			Field:   f.Name,
			Message: fmt.Sprintf("must be at least %d characters", f.MinLen),
		})
	}

	if f.MaxLen > 0 && len(f.Value) > f.MaxLen {
		violations = append(violations, Violation{
			Field:   f.Name,
			Message: fmt.Sprintf("must be at most %d characters", f.MaxLen),
		})
	}

	if len(f.OneOf) > 0 && !contains(f.OneOf, f.Value) {
		violations = append(violations, Violation{
			Field:   f.Name,
			Message: fmt.Sprintf("must be one of %v", f.OneOf),
		})
	}

	return violations
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
