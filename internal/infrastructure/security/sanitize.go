// Package security provides output sanitization for model-generated text
package security

import (
	"regexp"
	"strings"
)

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	iframeBlockRe = regexp.MustCompile(`(?is)<iframe\b[^>]*>.*?</iframe>`)
	objectBlockRe = regexp.MustCompile(`(?is)<object\b[^>]*>.*?</object>`)
	embedTagRe    = regexp.MustCompile(`(?is)<embed\b[^>]*/?>`)
	eventAttrRe   = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	jsURLRe       = regexp.MustCompile(`(?i)javascript\s*:`)
)

// SanitizeHTML strips active content from untrusted markup before it reaches
// the browser. Sanitizing already-sanitized text is a no-op.
func SanitizeHTML(input string) string {
	out := scriptBlockRe.ReplaceAllString(input, "")
	out = iframeBlockRe.ReplaceAllString(out, "")
	out = objectBlockRe.ReplaceAllString(out, "")
	out = embedTagRe.ReplaceAllString(out, "")
	out = eventAttrRe.ReplaceAllString(out, "")
	out = jsURLRe.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}
