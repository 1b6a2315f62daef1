package render

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-contactform/pkg/contact"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// SanitizeMarkup keeps the inline markup a form author may use in copy
// (emphasis, links, line breaks) and drops scripts, handlers and styles. The
// result is safe to embed without further escaping. User input is never
// passed through here; templates escape it instead.
func SanitizeMarkup(raw string) string {
	if raw == "" {
		return ""
	}
	return copySanitizer().Sanitize(raw)
}

// Sanitized returns c with defaults applied and every rendered-as-markup
// entry cleaned by SanitizeMarkup. Placeholders are attribute values and are
// left for the template to escape.
func (c Copy) Sanitized() Copy {
	out := c.WithDefaults()
	out.Title = SanitizeMarkup(out.Title)
	out.SubmitLabel = SanitizeMarkup(out.SubmitLabel)
	labels := make(map[contact.Field]string, len(out.Labels))
	for field, label := range out.Labels {
		labels[field] = SanitizeMarkup(label)
	}
	out.Labels = labels
	return out
}

func copySanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.UGCPolicy()
	})
	return markupPolicy
}
