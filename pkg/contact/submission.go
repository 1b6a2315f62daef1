package contact

// Test ids of the display elements, one per field.
const (
	TestIDFirstName = "firstnameDisplay"
	TestIDLastName  = "lastnameDisplay"
	TestIDEmail     = "emailDisplay"
	TestIDMessage   = "messageDisplay"
)

// DisplayItem is one rendered value of an accepted submission.
type DisplayItem struct {
	Field  Field  `json:"field"`
	TestID string `json:"testId"`
	Label  string `json:"label"`
	Value  string `json:"value"`
}

// SubmissionView decides which submitted values are displayed. First name,
// last name and email always appear once a submission exists; the message
// only when it is non-empty.
type SubmissionView struct {
	Submitted bool          `json:"submitted"`
	Items     []DisplayItem `json:"items,omitempty"`
}

// NewSubmissionView builds the view for snapshot. A nil snapshot yields an
// empty, unsubmitted view.
func NewSubmissionView(snapshot *Values) SubmissionView {
	if snapshot == nil {
		return SubmissionView{}
	}
	items := []DisplayItem{
		{Field: FieldFirstName, TestID: TestIDFirstName, Label: "First Name", Value: snapshot.FirstName},
		{Field: FieldLastName, TestID: TestIDLastName, Label: "Last Name", Value: snapshot.LastName},
		{Field: FieldEmail, TestID: TestIDEmail, Label: "Email", Value: snapshot.Email},
	}
	if snapshot.Message != "" {
		items = append(items, DisplayItem{Field: FieldMessage, TestID: TestIDMessage, Label: "Message", Value: snapshot.Message})
	}
	return SubmissionView{Submitted: true, Items: items}
}

// Item returns the display item for field, if rendered.
func (v SubmissionView) Item(field Field) (DisplayItem, bool) {
	for _, item := range v.Items {
		if item.Field == field {
			return item, true
		}
	}
	return DisplayItem{}, false
}

// Displays reports whether field is rendered.
func (v SubmissionView) Displays(field Field) bool {
	_, ok := v.Item(field)
	return ok
}

// Values reconstructs the submitted values from the view.
func (v SubmissionView) Values() Values {
	var out Values
	for _, item := range v.Items {
		out = out.With(item.Field, item.Value)
	}
	return out
}
