// internal/responder/templates.go
package responder

import (
	"strings"
)

// defaultTemplates are the per-industry first-contact templates used when a
// campaign is created without one. Placeholders are resolved by
// RenderTemplate.
var defaultTemplates = map[string]string{
	"real_estate":  "Hi! I love your real estate content! {studio_name} specializes in professional photography and marketing for real estate professionals. Would love to discuss how we can help showcase your properties! 🏠✨",
	"construction": "Hello! Your construction projects look amazing! {studio_name} creates compelling visual content for construction companies. Let's discuss how we can help tell your story! 🏗️📸",
	"architecture": "Hi there! Your architectural work is stunning! {studio_name} specializes in architectural photography and design marketing. Would love to collaborate! 🏛️✨",
}

const genericTemplate = "Hi! I love your content! {studio_name} specializes in creative services for businesses like yours. Let's discuss how we can help! ✨"

// DefaultTemplate returns the canned outreach template for an industry.
func DefaultTemplate(industry string) string {
	if tpl, ok := defaultTemplates[industry]; ok {
		return tpl
	}
	return genericTemplate
}

// RenderTemplate substitutes {key} placeholders with data values.
func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		if v == "" {
			v = "<unknown>"
		}
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}

// StudioVars returns the placeholder set shared by every template render.
func (a *Adapter) StudioVars() map[string]string {
	return map[string]string{
		"studio_name":        a.StudioName,
		"studio_description": a.StudioDescription,
		"studio_website":     a.StudioWebsite,
		"studio_email":       a.StudioEmail,
	}
}
