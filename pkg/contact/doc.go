// Package contact holds the contact form core: the field validator, the form
// state that tracks touched fields and the last accepted submission, and the
// submission view that decides which submitted values are displayed.
//
// Validation is a pure function of the first name, last name and email. The
// message is optional and never validated. Rendered error text always carries
// the "Error: " prefix:
//
//	Error: firstName must have at least 5 characters.
//	Error: lastName is a required field.
//	Error: email must be a valid email address.
package contact
