package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	StylesheetName = "contactform-vanilla.css"

	// FormTemplate is the entry template, relative to TemplatesFS.
	FormTemplate = "templates/contact_form.tmpl"
	// ThemePartialForm is the theme partial key that overrides FormTemplate.
	ThemePartialForm = "contact.form"
	// ThemeAssetStylesheet is the theme asset key for the stylesheet URL.
	ThemeAssetStylesheet = "contact.stylesheet"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded CSS so callers can serve it over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
