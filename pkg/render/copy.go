package render

import (
	"strings"

	"github.com/goliatone/go-contactform/pkg/contact"
)

// Copy is the user-facing text of the contact form.
type Copy struct {
	Title        string                   `json:"title" yaml:"title"`
	SubmitLabel  string                   `json:"submitLabel" yaml:"submitLabel"`
	Labels       map[contact.Field]string `json:"labels" yaml:"labels"`
	Placeholders map[contact.Field]string `json:"placeholders" yaml:"placeholders"`
}

// DefaultCopy returns the built-in form text.
func DefaultCopy() Copy {
	return Copy{
		Title:       "Contact Form",
		SubmitLabel: "Submit",
		Labels: map[contact.Field]string{
			contact.FieldFirstName: "First Name",
			contact.FieldLastName:  "Last Name",
			contact.FieldEmail:     "Email",
			contact.FieldMessage:   "Message",
		},
		Placeholders: map[contact.Field]string{
			contact.FieldFirstName: "Edd",
			contact.FieldLastName:  "Burke",
			contact.FieldEmail:     "bluebill1049@hotmail.com",
		},
	}
}

// WithDefaults fills empty entries of c from DefaultCopy.
func (c Copy) WithDefaults() Copy {
	def := DefaultCopy()
	out := Copy{
		Title:        firstNonEmpty(c.Title, def.Title),
		SubmitLabel:  firstNonEmpty(c.SubmitLabel, def.SubmitLabel),
		Labels:       make(map[contact.Field]string, len(contact.Fields)),
		Placeholders: make(map[contact.Field]string, len(contact.Fields)),
	}
	for _, field := range contact.Fields {
		out.Labels[field] = firstNonEmpty(c.Labels[field], def.Labels[field])
		out.Placeholders[field] = firstNonEmpty(c.Placeholders[field], def.Placeholders[field])
	}
	return out
}

// Label returns the label for field.
func (c Copy) Label(field contact.Field) string {
	return c.WithDefaults().Labels[field]
}

// Placeholder returns the placeholder for field.
func (c Copy) Placeholder(field contact.Field) string {
	return c.WithDefaults().Placeholders[field]
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
