package contact

import "strings"

// Field identifies one of the contact form inputs.
type Field string

const (
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldEmail     Field = "email"
	FieldMessage   Field = "message"
)

// Fields lists every form input in display order.
var Fields = []Field{FieldFirstName, FieldLastName, FieldEmail, FieldMessage}

// ValidatedFields lists the inputs that carry validation rules. Message is
// optional and never validated.
var ValidatedFields = []Field{FieldFirstName, FieldLastName, FieldEmail}

// ParseField resolves a raw field identifier. Matching is case-insensitive so
// HTML input names ("firstname") and JSON keys ("firstName") both resolve.
func ParseField(raw string) (Field, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, field := range Fields {
		if strings.EqualFold(string(field), trimmed) {
			return field, true
		}
	}
	return "", false
}

// String implements fmt.Stringer.
func (f Field) String() string {
	return string(f)
}

// Validated reports whether the field has a validation rule attached.
func (f Field) Validated() bool {
	return f == FieldFirstName || f == FieldLastName || f == FieldEmail
}

// Values holds the raw text of the four inputs.
type Values struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// Get returns the value stored for field.
func (v Values) Get(field Field) string {
	switch field {
	case FieldFirstName:
		return v.FirstName
	case FieldLastName:
		return v.LastName
	case FieldEmail:
		return v.Email
	case FieldMessage:
		return v.Message
	default:
		return ""
	}
}

// With returns a copy of v with field set to value. Unknown fields leave the
// copy untouched.
func (v Values) With(field Field, value string) Values {
	switch field {
	case FieldFirstName:
		v.FirstName = value
	case FieldLastName:
		v.LastName = value
	case FieldEmail:
		v.Email = value
	case FieldMessage:
		v.Message = value
	}
	return v
}

// Map returns the values keyed by field name.
func (v Values) Map() map[string]string {
	return map[string]string{
		string(FieldFirstName): v.FirstName,
		string(FieldLastName):  v.LastName,
		string(FieldEmail):     v.Email,
		string(FieldMessage):   v.Message,
	}
}
