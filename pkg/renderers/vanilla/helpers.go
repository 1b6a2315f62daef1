package vanilla

import (
	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

func controlID(field contact.Field) string {
	return "cf-" + string(field)
}

func inputType(field contact.Field) string {
	if field == contact.FieldEmail {
		return "email"
	}
	return "text"
}

// fieldErrors joins the validator error with any server-side messages for
// the same field, without duplicates.
func fieldErrors(snapshot contact.Snapshot, extra map[contact.Field][]string, field contact.Field) []any {
	var messages []string
	if fe, ok := snapshot.Errors.Get(field); ok {
		messages = append(messages, fe.Message)
	}
	messages = render.MergeFormErrors(messages, extra[field]...)
	if len(messages) == 0 {
		return nil
	}
	out := make([]any, len(messages))
	for i, message := range messages {
		out[i] = message
	}
	return out
}

func fieldsData(snapshot contact.Snapshot, opts render.RenderOptions, copyText render.Copy) []any {
	out := make([]any, 0, len(contact.Fields))
	for _, field := range contact.Fields {
		out = append(out, map[string]any{
			"name":        string(field),
			"id":          controlID(field),
			"type":        inputType(field),
			"label":       copyText.Labels[field],
			"placeholder": copyText.Placeholders[field],
			"value":       snapshot.Values.Get(field),
			"required":    field.Validated(),
			"multiline":   field == contact.FieldMessage,
			"errors":      fieldErrors(snapshot, opts.FieldErrors, field),
		})
	}
	return out
}

func hiddenData(hidden map[string]string) []any {
	sorted := render.SortedHiddenFields(hidden)
	out := make([]any, 0, len(sorted))
	for _, field := range sorted {
		out = append(out, map[string]any{"name": field.Name, "value": field.Value})
	}
	return out
}

func submissionData(view contact.SubmissionView) map[string]any {
	items := make([]any, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, map[string]any{
			"field":  string(item.Field),
			"testId": item.TestID,
			"label":  item.Label,
			"value":  item.Value,
		})
	}
	return map[string]any{
		"submitted": view.Submitted,
		"items":     items,
	}
}

func stringsToAny(values []string) []any {
	if len(values) == 0 {
		return nil
	}
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}
	return out
}
