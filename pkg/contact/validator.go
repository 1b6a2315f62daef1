package contact

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// DefaultMinFirstNameLength is the shortest accepted first name, in runes.
const DefaultMinFirstNameLength = 5

const (
	msgMissingLastName = "lastName is a required field."
	msgInvalidEmail    = "email must be a valid email address."
)

// emailPattern accepts local-part "@" domain "." tld. Each domain label must
// start and end with an alphanumeric character.
var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@" +
		"[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?" +
		"(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$",
)

// Rules tunes the validator. The zero value is normalised to the defaults.
type Rules struct {
	MinFirstNameLength int `json:"minFirstNameLength" yaml:"minFirstNameLength"`
}

// DefaultRules returns the rules used by Validate.
func DefaultRules() Rules {
	return Rules{MinFirstNameLength: DefaultMinFirstNameLength}
}

func (r Rules) normalized() Rules {
	if r.MinFirstNameLength <= 0 {
		r.MinFirstNameLength = DefaultMinFirstNameLength
	}
	return r
}

// Validator checks contact values against a set of rules. It holds no state
// beyond the rules and is safe for concurrent use.
type Validator struct {
	rules Rules
}

// NewValidator constructs a Validator from rules.
func NewValidator(rules Rules) Validator {
	return Validator{rules: rules.normalized()}
}

// Rules returns the normalised rules.
func (v Validator) Rules() Rules {
	return v.rules.normalized()
}

// Validate checks the three validated fields. The message is ignored.
func (v Validator) Validate(values Values) Errors {
	var errs Errors
	for _, field := range ValidatedFields {
		if fe, ok := v.ValidateField(field, values.Get(field)); !ok {
			errs = errs.with(fe)
		}
	}
	return errs
}

// ValidateField checks a single value. It returns ok=true when the value is
// acceptable, including for fields without rules.
func (v Validator) ValidateField(field Field, value string) (FieldError, bool) {
	rules := v.rules.normalized()
	switch field {
	case FieldFirstName:
		if !validFirstName(value, rules.MinFirstNameLength) {
			return FieldError{
				Field:   FieldFirstName,
				Kind:    TooShortFirstName,
				Message: fmt.Sprintf("firstName must have at least %d characters.", rules.MinFirstNameLength),
			}, false
		}
	case FieldLastName:
		if !ValidLastName(value) {
			return FieldError{Field: FieldLastName, Kind: MissingLastName, Message: msgMissingLastName}, false
		}
	case FieldEmail:
		if !ValidEmail(value) {
			return FieldError{Field: FieldEmail, Kind: InvalidEmail, Message: msgInvalidEmail}, false
		}
	}
	return FieldError{}, true
}

// Validate checks values with the default rules.
func Validate(values Values) Errors {
	return NewValidator(DefaultRules()).Validate(values)
}

// ValidFirstName reports whether name has at least DefaultMinFirstNameLength runes.
func ValidFirstName(name string) bool {
	return validFirstName(name, DefaultMinFirstNameLength)
}

func validFirstName(name string, minLength int) bool {
	return utf8.RuneCountInString(name) >= minLength
}

// ValidLastName reports whether name is non-empty. Whitespace counts as content.
func ValidLastName(name string) bool {
	return name != ""
}

// ValidEmail reports whether address matches the email syntax.
func ValidEmail(address string) bool {
	return emailPattern.MatchString(address)
}
