package render

import (
	"html"
	"strings"
)

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	return html.EscapeString(s)
}

var attrReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

// escapeAttr escapes text for safe inclusion in a double-quoted attribute
// value. Whitespace control characters are escaped as well.
func escapeAttr(s string) string {
	return attrReplacer.Replace(s)
}
