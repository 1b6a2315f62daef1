// Package openapi embeds the OpenAPI 3 contract of the contact endpoints and
// exposes the field constraints it declares, so the HTTP surface and the
// validator can be checked against each other.
package openapi
