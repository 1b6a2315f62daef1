package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

// Name is the registry name of the renderer.
const Name = "tui"

// Renderer implements render.Renderer for terminal-driven sessions: it prompts
// for each contact field, re-prompting while the answer is invalid, submits the
// form and serializes what the submission view displays.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	validator         contact.Validator
	maxAttempts       int
	confirmSubmit     bool
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		validator:    contact.NewValidator(contact.DefaultRules()),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every field, seeding defaults from the snapshot values,
// then submits. Server errors in opts are shown before the matching prompt.
func (r *Renderer) Render(ctx context.Context, snapshot contact.Snapshot, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	copyText := opts.Copy.WithDefaults()
	state := NewState(r.validator, snapshot.Values, opts.FieldErrors)

	if err := r.info(ctx, copyText.Title); err != nil {
		return nil, err
	}
	for _, message := range render.MergeFormErrors(opts.FormErrors) {
		if err := r.info(ctx, r.errorLine(message)); err != nil {
			return nil, err
		}
	}

	for _, field := range contact.Fields {
		if err := r.promptField(ctx, field, copyText, state); err != nil {
			return nil, err
		}
	}

	if r.confirmSubmit {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: copyText.SubmitLabel + "?", Default: true})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDeclined
		}
	}

	if !state.Submit() {
		return nil, fmt.Errorf("tui: submission rejected: %v", state.Form().Errors())
	}

	view := state.Form().Snapshot().Submission
	values := submittedValues(view)
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(values, copyText)
}

func (r *Renderer) promptField(ctx context.Context, field contact.Field, copyText render.Copy, state *State) error {
	label := r.theme.PromptPrefix + copyText.Label(field)
	help := ""
	if placeholder := copyText.Placeholder(field); placeholder != "" {
		help = "e.g. " + placeholder
	}

	for _, message := range state.ErrorsFor(field) {
		if err := r.info(ctx, r.errorLine(message)); err != nil {
			return err
		}
	}

	for attempt := 1; ; attempt++ {
		var (
			response string
			err      error
		)
		if field == contact.FieldMessage {
			response, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: label,
				Default: state.Default(field),
				Help:    help,
			})
		} else {
			response, err = r.driver.Input(ctx, InputConfig{
				Message:   label,
				Default:   state.Default(field),
				Help:      help,
				Validator: r.fieldValidator(field),
			})
		}
		if err != nil {
			return err
		}

		messages := state.Answer(field, response)
		if len(messages) == 0 {
			return nil
		}
		for _, message := range messages {
			if err := r.info(ctx, r.errorLine(message)); err != nil {
				return err
			}
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("tui: %s: %w", field, ErrTooManyAttempts)
		}
	}
}

func (r *Renderer) fieldValidator(field contact.Field) func(string) error {
	if !field.Validated() {
		return nil
	}
	validator := r.validator
	return func(value string) error {
		if fe, ok := validator.ValidateField(field, value); !ok {
			return errors.New(fe.Display())
		}
		return nil
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) errorLine(message string) string {
	if !strings.HasPrefix(message, contact.ErrorPrefix) {
		message = contact.ErrorPrefix + message
	}
	return r.theme.ErrorPrefix + message
}

func (r *Renderer) serialize(values map[string]any, copyText render.Copy) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values, copyText)), nil
	default:
		return json.Marshal(values)
	}
}

// submittedValues keeps only the fields the submission view displays.
func submittedValues(view contact.SubmissionView) map[string]any {
	out := make(map[string]any, len(view.Items))
	for _, item := range view.Items {
		out[string(item.Field)] = item.Value
	}
	return out
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for key, value := range values {
		flattened.Set(key, fmt.Sprint(value))
	}
	return flattened.Encode()
}

// prettyPrint writes the known fields in form order using their labels, then
// any extra keys a transformer added, sorted.
func prettyPrint(values map[string]any, copyText render.Copy) string {
	var b strings.Builder
	b.WriteString("You Submitted:\n")

	seen := make(map[string]bool, len(values))
	for _, field := range contact.Fields {
		value, ok := values[string(field)]
		if !ok {
			continue
		}
		seen[string(field)] = true
		fmt.Fprintf(&b, "%s: %v\n", copyText.Label(field), value)
	}

	extras := make([]string, 0, len(values))
	for key := range values {
		if !seen[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		fmt.Fprintf(&b, "%s: %v\n", key, values[key])
	}
	return b.String()
}
