// Package template defines the template engine seam used by the HTML
// renderer. The gotemplate subpackage builds the default engine on
// github.com/goliatone/go-template.
package template
