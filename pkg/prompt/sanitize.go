package prompt

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips authored markup from descriptor text so it reads
// cleanly in a terminal. Descriptors written for browser surfaces routinely
// embed HTML in preambles and prompts.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := strings.TrimSpace(plainText().Sanitize(trimmed))
	// Sanitize escapes entities for HTML output; terminal text wants them
	// literal again.
	return html.UnescapeString(cleaned)
}

func plainText() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
