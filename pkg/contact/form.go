package contact

// Phase is the submission state of a form.
type Phase string

const (
	PhaseUnsubmitted Phase = "unsubmitted"
	PhaseSubmitted   Phase = "submitted"
)

// Form is the in-memory state of one contact form session: the current input
// values, which fields have been touched, and the last valid submission.
//
// Form is not safe for concurrent use; callers serialise events.
type Form struct {
	validator Validator
	values    Values
	errors    Errors
	touched   map[Field]bool
	submitted *Values
}

// NewForm returns an empty form validated with the default rules.
func NewForm() *Form {
	return NewFormWithValidator(NewValidator(DefaultRules()))
}

// NewFormWithValidator returns an empty form using validator.
func NewFormWithValidator(validator Validator) *Form {
	f := &Form{
		validator: validator,
		touched:   make(map[Field]bool, len(ValidatedFields)),
	}
	f.errors = validator.Validate(f.values)
	return f
}

// Change records a new value for field and recomputes the errors. Unknown
// fields are ignored.
func (f *Form) Change(field Field, value string) {
	canonical, ok := ParseField(string(field))
	if !ok {
		return
	}
	f.values = f.values.With(canonical, value)
	f.touched[canonical] = true
	f.errors = f.validator.Validate(f.values)
}

// Submit validates every field and, when none is in error, snapshots the
// values for display. It reports whether the submission was accepted. A
// rejected submit clears any earlier snapshot.
func (f *Form) Submit() bool {
	for _, field := range ValidatedFields {
		f.touched[field] = true
	}
	f.errors = f.validator.Validate(f.values)
	if !f.errors.Empty() {
		f.submitted = nil
		return false
	}
	snapshot := f.values
	f.submitted = &snapshot
	return true
}

// Reject turns down a submit that passed local validation but was refused
// downstream. Every field counts as touched and any earlier snapshot is
// cleared, the same as an invalid submit.
func (f *Form) Reject() {
	for _, field := range ValidatedFields {
		f.touched[field] = true
	}
	f.errors = f.validator.Validate(f.values)
	f.submitted = nil
}

// Values returns the current input values.
func (f *Form) Values() Values {
	return f.values
}

// Errors returns the full validation result for the current values.
func (f *Form) Errors() Errors {
	return f.errors
}

// VisibleErrors returns the errors of the fields the user has interacted with.
// Every field counts as touched after a submit.
func (f *Form) VisibleErrors() Errors {
	visible := make([]Field, 0, len(ValidatedFields))
	for _, field := range ValidatedFields {
		if f.touched[field] {
			visible = append(visible, field)
		}
	}
	return f.errors.Only(visible...)
}

// Submitted returns the last accepted submission.
func (f *Form) Submitted() (Values, bool) {
	if f.submitted == nil {
		return Values{}, false
	}
	return *f.submitted, true
}

// Phase reports whether an accepted submission is on display.
func (f *Form) Phase() Phase {
	if f.submitted == nil {
		return PhaseUnsubmitted
	}
	return PhaseSubmitted
}

// Snapshot captures everything a renderer needs to draw the form.
func (f *Form) Snapshot() Snapshot {
	var submitted *Values
	if f.submitted != nil {
		copied := *f.submitted
		submitted = &copied
	}
	return Snapshot{
		Values:     f.values,
		Errors:     f.VisibleErrors(),
		Submission: NewSubmissionView(submitted),
	}
}

// Snapshot is an immutable view of a Form handed to renderers.
type Snapshot struct {
	Values     Values         `json:"values"`
	Errors     Errors         `json:"errors"`
	Submission SubmissionView `json:"submission"`
}
