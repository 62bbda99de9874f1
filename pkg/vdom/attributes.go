package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
// Example: Data("option", "block") → data-option="block"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Hidden sets the boolean hidden attribute.
func Hidden() Attr { return attr("hidden", true) }

// HiddenIf sets the hidden attribute to the given value. A false value
// renders nothing, so the element stays visible.
func HiddenIf(hidden bool) Attr { return attr("hidden", hidden) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }
