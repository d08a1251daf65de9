package emvqr

import "fmt"

// ValidationRule checks a single configuration or input value.
type ValidationRule interface {
	Validate(value string) error
	Name() string // Returns the name of the rule (e.g., "length")
}

// RequiredRule rejects empty values.
type RequiredRule struct{}

func (r *RequiredRule) Name() string {
	return "required"
}

func (r *RequiredRule) Validate(value string) error {
	if value == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// LengthRule validates the value's length. Empty values pass; pair it with
// RequiredRule when the value is mandatory.
type LengthRule struct {
	MinLength   int
	MaxLength   int
	ExactLength int
}

func (r *LengthRule) Name() string {
	return "length"
}

func (r *LengthRule) Validate(value string) error {
	length := len(value)
	if length == 0 {
		return nil
	}

	if r.ExactLength > 0 && length != r.ExactLength {
		return fmt.Errorf("expected length %d, got %d", r.ExactLength, length)
	}

	if r.MinLength > 0 && length < r.MinLength {
		return fmt.Errorf("length %d below minimum %d", length, r.MinLength)
	}

	if r.MaxLength > 0 && length > r.MaxLength {
		return fmt.Errorf("length %d exceeds maximum %d", length, r.MaxLength)
	}

	return nil
}

// NumericRule validates that the value contains only digits.
type NumericRule struct{}

func (r *NumericRule) Name() string {
	return "numeric"
}

func (r *NumericRule) Validate(value string) error {
	if value != "" && !isDigits(value) {
		return fmt.Errorf("%q must contain only digits", value)
	}
	return nil
}

// AlphaRule validates that the value contains only ASCII letters.
type AlphaRule struct{}

func (r *AlphaRule) Name() string {
	return "alpha"
}

func (r *AlphaRule) Validate(value string) error {
	if value != "" && !isLetters(value) {
		return fmt.Errorf("%q must contain only letters", value)
	}
	return nil
}

// PrintableRule validates that the value is printable ASCII (32-126).
type PrintableRule struct{}

func (r *PrintableRule) Name() string {
	return "printable"
}

func (r *PrintableRule) Validate(value string) error {
	if i := firstNonPrintable(value); i >= 0 {
		return fmt.Errorf("invalid character at position %d", i)
	}
	return nil
}

// runRules applies rules in order and reports the first failure.
func runRules(value string, rules []ValidationRule) (rule string, err error) {
	for _, r := range rules {
		if err := r.Validate(value); err != nil {
			return r.Name(), err
		}
	}
	return "", nil
}
