package compost

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/vango-dev/compost/pkg/bind"
)

var formElements = []string{"form", "input", "button", "select", "option", "textarea", "label", "fieldset", "legend"}

// markupPolicy returns the sanitizer for templates of a type: user content
// elements plus forms, with the type's marker attributes allowed everywhere.
// Scripts, styles and native inline handlers are removed.
func markupPolicy(catalog bind.Catalog, prefix string) *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements(formElements...)
	p.AllowAttrs("type", "name", "value", "placeholder", "for", "disabled", "checked", "selected", "multiple").
		OnElements(formElements...)
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).Globally()
	p.AllowAttrs(catalog.Attrs(prefix)...).Globally()
	return p
}

// SanitizeMarkup removes active content from markup, keeping every marker
// attribute the catalog names.
func SanitizeMarkup(markup string, catalog bind.Catalog, prefix string) string {
	return markupPolicy(catalog, prefix).Sanitize(markup)
}
