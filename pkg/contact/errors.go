package contact

import (
	"encoding/json"
	"fmt"
)

// ErrorPrefix is prepended to every validation message shown to the user.
const ErrorPrefix = "Error: "

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	TooShortFirstName ErrorKind = "too_short_first_name"
	MissingLastName   ErrorKind = "missing_last_name"
	InvalidEmail      ErrorKind = "invalid_email"
)

// FieldError pairs a field with the reason its current value is rejected.
type FieldError struct {
	Field   Field     `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// Display returns the message as rendered next to the input.
func (e FieldError) Display() string {
	return ErrorPrefix + e.Message
}

func (e FieldError) present() bool {
	return e.Kind != ""
}

// Errors is the fixed-size result of validating a form: at most one entry per
// validated field. The zero value means no errors.
type Errors struct {
	FirstName FieldError `json:"firstName,omitempty"`
	LastName  FieldError `json:"lastName,omitempty"`
	Email     FieldError `json:"email,omitempty"`
}

// Get returns the error recorded for field.
func (e Errors) Get(field Field) (FieldError, bool) {
	var fe FieldError
	switch field {
	case FieldFirstName:
		fe = e.FirstName
	case FieldLastName:
		fe = e.LastName
	case FieldEmail:
		fe = e.Email
	}
	return fe, fe.present()
}

// Has reports whether field has an error.
func (e Errors) Has(field Field) bool {
	_, ok := e.Get(field)
	return ok
}

// Len counts the fields currently in error.
func (e Errors) Len() int {
	n := 0
	for _, field := range ValidatedFields {
		if e.Has(field) {
			n++
		}
	}
	return n
}

// Empty reports whether no field is in error.
func (e Errors) Empty() bool {
	return e.Len() == 0
}

// List returns the errors in field order.
func (e Errors) List() []FieldError {
	var out []FieldError
	for _, field := range ValidatedFields {
		if fe, ok := e.Get(field); ok {
			out = append(out, fe)
		}
	}
	return out
}

// Map returns the raw messages keyed by field name, omitting valid fields.
func (e Errors) Map() map[string]string {
	out := make(map[string]string, 3)
	for _, fe := range e.List() {
		out[string(fe.Field)] = fe.Message
	}
	return out
}

// Only returns a copy that keeps the errors of the supplied fields.
func (e Errors) Only(fields ...Field) Errors {
	var out Errors
	for _, field := range fields {
		if fe, ok := e.Get(field); ok {
			out = out.with(fe)
		}
	}
	return out
}

func (e Errors) with(fe FieldError) Errors {
	switch fe.Field {
	case FieldFirstName:
		e.FirstName = fe
	case FieldLastName:
		e.LastName = fe
	case FieldEmail:
		e.Email = fe
	}
	return e
}

func (e Errors) String() string {
	return fmt.Sprintf("%d validation error(s)", e.Len())
}

// MarshalJSON encodes the errors as a field → message object.
func (e Errors) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Map())
}
