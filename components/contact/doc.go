// Package contact serves the contact form over net/http.
//
// GET on the form route renders the form for the caller's session, POST
// applies the four field values and submits, and the validate route accepts a
// single JSON change event for live validation. The OpenAPI contract is
// served alongside. Sessions live in memory and are keyed by a cookie.
package contact
