package tui

import (
	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

// State tracks a prompting session: the form being filled, the prefilled
// defaults and any server-provided errors. Server errors for a field are
// dropped once the user answers that field again.
type State struct {
	form     *contact.Form
	prefill  contact.Values
	answered map[contact.Field]bool
	server   map[contact.Field][]string
}

// NewState seeds the session without touching the form, so no validation
// error is visible until the user answers.
func NewState(validator contact.Validator, prefill contact.Values, errs map[contact.Field][]string) *State {
	server := make(map[contact.Field][]string, len(errs))
	for field, messages := range errs {
		if merged := render.MergeFormErrors(nil, messages...); len(merged) > 0 {
			server[field] = merged
		}
	}
	return &State{
		form:     contact.NewFormWithValidator(validator),
		prefill:  prefill,
		answered: make(map[contact.Field]bool, len(contact.Fields)),
		server:   server,
	}
}

// Form returns the underlying form.
func (s *State) Form() *contact.Form {
	if s == nil {
		return nil
	}
	return s.form
}

// Default returns the value offered when prompting field: the last answer, or
// the prefill before the field is answered.
func (s *State) Default(field contact.Field) string {
	if s.answered[field] {
		return s.form.Values().Get(field)
	}
	return s.prefill.Get(field)
}

// Answer records value for field and returns the messages to show for it.
func (s *State) Answer(field contact.Field, value string) []string {
	s.form.Change(field, value)
	s.answered[field] = true
	delete(s.server, field)
	return s.ErrorsFor(field)
}

// ErrorsFor returns the visible validation error and server errors for field.
func (s *State) ErrorsFor(field contact.Field) []string {
	var messages []string
	if fe, ok := s.form.VisibleErrors().Get(field); ok {
		messages = append(messages, fe.Message)
	}
	return render.MergeFormErrors(messages, s.server[field]...)
}

// Submit forwards to the form.
func (s *State) Submit() bool {
	return s.form.Submit()
}
