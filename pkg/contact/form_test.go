package contact_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/contact"
)

func TestForm_StartsEmptyAndUnsubmitted(t *testing.T) {
	form := contact.NewForm()

	if form.Phase() != contact.PhaseUnsubmitted {
		t.Fatalf("expected unsubmitted phase, got %q", form.Phase())
	}
	if !form.VisibleErrors().Empty() {
		t.Fatalf("expected no visible errors before interaction, got %v", form.VisibleErrors().List())
	}
	if form.Errors().Len() != 3 {
		t.Fatalf("expected empty values to be invalid, got %d errors", form.Errors().Len())
	}
	if _, ok := form.Submitted(); ok {
		t.Fatalf("expected no submission")
	}
	if form.Snapshot().Submission.Submitted {
		t.Fatalf("expected empty submission view")
	}
}

func TestForm_ShortFirstNameShowsOneError(t *testing.T) {
	form := contact.NewForm()
	form.Change(contact.FieldFirstName, "Cat")

	visible := form.VisibleErrors().List()
	if len(visible) != 1 {
		t.Fatalf("expected one visible error, got %#v", visible)
	}
	if got := visible[0].Display(); got != "Error: firstName must have at least 5 characters." {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestForm_InvalidEmailShowsOnChange(t *testing.T) {
	form := contact.NewForm()
	form.Change(contact.FieldEmail, "dfsa")

	fe, ok := form.VisibleErrors().Get(contact.FieldEmail)
	if !ok || fe.Display() != "Error: email must be a valid email address." {
		t.Fatalf("expected email error, got %#v", form.VisibleErrors().List())
	}
}

func TestForm_SubmitEmptyShowsThreeErrors(t *testing.T) {
	form := contact.NewForm()
	form.Change(contact.FieldFirstName, "")
	form.Change(contact.FieldLastName, "")
	form.Change(contact.FieldEmail, "")

	if form.Submit() {
		t.Fatalf("expected submit to be rejected")
	}
	if got := form.VisibleErrors().Len(); got != 3 {
		t.Fatalf("expected 3 visible errors, got %d", got)
	}
	if form.Phase() != contact.PhaseUnsubmitted {
		t.Fatalf("expected form to stay unsubmitted")
	}
}

func TestForm_SubmitWithoutLastName(t *testing.T) {
	form := contact.NewForm()
	form.Change(contact.FieldFirstName, "Shreyas")
	form.Change(contact.FieldEmail, "shreyas.mohan@gmail.com")

	if form.Submit() {
		t.Fatalf("expected submit to be rejected")
	}
	visible := form.VisibleErrors()
	if visible.Len() != 1 || !visible.Has(contact.FieldLastName) {
		t.Fatalf("expected only the last name error, got %#v", visible.List())
	}
}

func TestForm_SubmitWithoutMessage(t *testing.T) {
	form := contact.NewForm()
	form.Change(contact.FieldFirstName, "Sebastian")
	form.Change(contact.FieldLastName, "Mohan")
	form.Change(contact.FieldEmail, "imacat@cat.com")
	form.Change(contact.FieldMessage, "")

	if !form.Submit() {
		t.Fatalf("expected submit to succeed, errors: %v", form.Errors().List())
	}
	if form.Phase() != contact.PhaseSubmitted {
		t.Fatalf("expected submitted phase")
	}

	view := form.Snapshot().Submission
	for _, field := range []contact.Field{contact.FieldFirstName, contact.FieldLastName, contact.FieldEmail} {
		if !view.Displays(field) {
			t.Fatalf("expected %s to be displayed", field)
		}
	}
	if view.Displays(contact.FieldMessage) {
		t.Fatalf("expected empty message to stay hidden")
	}
}

func TestForm_SubmitWithMessage(t *testing.T) {
	form := contact.NewForm()
	form.Change(contact.FieldFirstName, "Sebastian")
	form.Change(contact.FieldLastName, "Mohan")
	form.Change(contact.FieldEmail, "imacat@cat.com")
	form.Change(contact.FieldMessage, "TESTING")

	if !form.Submit() {
		t.Fatalf("expected submit to succeed")
	}

	item, ok := form.Snapshot().Submission.Item(contact.FieldMessage)
	if !ok {
		t.Fatalf("expected message display")
	}
	want := contact.DisplayItem{Field: contact.FieldMessage, TestID: "messageDisplay", Label: "Message", Value: "TESTING"}
	if diff := cmp.Diff(want, item); diff != "" {
		t.Fatalf("message item mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_SnapshotIsNotClearedByLaterEdits(t *testing.T) {
	form := contact.NewForm()
	form.Change(contact.FieldFirstName, "Sebastian")
	form.Change(contact.FieldLastName, "Mohan")
	form.Change(contact.FieldEmail, "imacat@cat.com")
	if !form.Submit() {
		t.Fatalf("expected submit to succeed")
	}

	form.Change(contact.FieldFirstName, "Al")

	submitted, ok := form.Submitted()
	if !ok {
		t.Fatalf("expected submission to survive edits")
	}
	if submitted.FirstName != "Sebastian" {
		t.Fatalf("expected snapshot value, got %q", submitted.FirstName)
	}
	if !form.VisibleErrors().Has(contact.FieldFirstName) {
		t.Fatalf("expected the edit to surface a first name error")
	}
}

func TestForm_InvalidSubmitClearsSnapshot(t *testing.T) {
	form := contact.NewForm()
	form.Change(contact.FieldFirstName, "Sebastian")
	form.Change(contact.FieldLastName, "Mohan")
	form.Change(contact.FieldEmail, "imacat@cat.com")
	if !form.Submit() {
		t.Fatalf("expected first submit to succeed")
	}

	form.Change(contact.FieldEmail, "nope")
	if form.Submit() {
		t.Fatalf("expected second submit to be rejected")
	}
	if form.Phase() != contact.PhaseUnsubmitted {
		t.Fatalf("expected snapshot to be cleared by the rejected submit")
	}
}

func TestForm_ResubmitReplacesSnapshot(t *testing.T) {
	form := contact.NewForm()
	form.Change(contact.FieldFirstName, "Sebastian")
	form.Change(contact.FieldLastName, "Mohan")
	form.Change(contact.FieldEmail, "imacat@cat.com")
	form.Submit()

	form.Change(contact.FieldLastName, "Baptista")
	if !form.Submit() {
		t.Fatalf("expected resubmit to succeed")
	}
	submitted, _ := form.Submitted()
	if submitted.LastName != "Baptista" {
		t.Fatalf("expected latest values, got %q", submitted.LastName)
	}
}

func TestSubmissionView_NilSnapshot(t *testing.T) {
	view := contact.NewSubmissionView(nil)
	if view.Submitted || len(view.Items) != 0 {
		t.Fatalf("expected empty view, got %#v", view)
	}
	for _, field := range contact.Fields {
		if view.Displays(field) {
			t.Fatalf("expected %s to be hidden", field)
		}
	}
}

func TestSnapshot_JSON(t *testing.T) {
	form := contact.NewForm()
	form.Change(contact.FieldFirstName, "Cat")

	raw, err := json.Marshal(form.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Errors     map[string]string `json:"errors"`
		Submission struct {
			Submitted bool `json:"submitted"`
		} `json:"submission"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]string{"firstName": "firstName must have at least 5 characters."}
	if diff := cmp.Diff(want, decoded.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if decoded.Submission.Submitted {
		t.Fatalf("expected unsubmitted view")
	}
}

func TestForm_ChangeNormalisesFieldName(t *testing.T) {
	form := contact.NewForm()

	form.Change("FIRSTNAME", "Sebastian")
	form.Change(" Email ", "imacat@cat.com")

	want := contact.Values{FirstName: "Sebastian", Email: "imacat@cat.com"}
	if diff := cmp.Diff(want, form.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if form.VisibleErrors().Has(contact.FieldFirstName) || form.VisibleErrors().Has(contact.FieldEmail) {
		t.Fatalf("expected valid fields, got %v", form.VisibleErrors().List())
	}
	if form.VisibleErrors().Has(contact.FieldLastName) {
		t.Fatalf("expected untouched lastName to stay hidden")
	}
}

func TestForm_RejectClearsSnapshotAndTouchesFields(t *testing.T) {
	form := contact.NewForm()
	form.Change(contact.FieldFirstName, "Sebastian")
	form.Change(contact.FieldLastName, "Mohan")
	form.Change(contact.FieldEmail, "imacat@cat.com")
	if !form.Submit() {
		t.Fatalf("expected submit to be accepted")
	}

	form.Change(contact.FieldEmail, "other@cat.com")
	form.Reject()

	if _, ok := form.Submitted(); ok {
		t.Fatalf("expected snapshot to be cleared")
	}
	if form.Phase() != contact.PhaseUnsubmitted {
		t.Fatalf("expected unsubmitted phase, got %q", form.Phase())
	}
	if !form.VisibleErrors().Empty() {
		t.Fatalf("expected valid values to report no errors, got %v", form.VisibleErrors().List())
	}
}
