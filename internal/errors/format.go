package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
	ansiBold  = "\033[1m"
)

// detailWidth is the column at which Detail text is wrapped.
const detailWidth = 70

// styler applies ANSI styling when enabled.
type styler bool

func (s styler) paint(text string, codes ...string) string {
	if !s || text == "" {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

// colorDefault reports whether terminal output should be colored.
// NO_COLOR (https://no-color.org) turns styling off.
func colorDefault() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return !set
}

// Format renders the error for a terminal, honouring NO_COLOR.
func (e *Error) Format() string {
	return e.format(styler(colorDefault()))
}

// FormatPlain renders the error like Format but never emits ANSI codes.
func (e *Error) FormatPlain() string {
	return e.format(false)
}

func (e *Error) format(s styler) string {
	var b strings.Builder

	label := "ERROR"
	if e.Category != "" {
		label = strings.ToUpper(string(e.Category)) + " ERROR"
	}
	b.WriteString("\n")
	b.WriteString(s.paint(label, ansiRed, ansiBold))
	if e.Code != "" {
		b.WriteString(" ")
		b.WriteString(s.paint(e.Code, ansiBold))
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	for _, line := range wrapText(e.Detail, detailWidth) {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	if e.Detail != "" {
		b.WriteString("\n")
	}

	section := func(title, body, code string) {
		if body == "" {
			return
		}
		fmt.Fprintf(&b, "  %s %s\n", s.paint(title, code), body)
	}
	if e.Wrapped != nil {
		section("Cause:", e.Wrapped.Error(), ansiGray)
	}
	section("Hint:", e.Suggestion, ansiCyan)
	section("Learn more:", s.paint(e.DocURL, ansiBlue), ansiGray)

	return b.String()
}

// FormatCompact returns "CODE: message".
func (e *Error) FormatCompact() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

type jsonError struct {
	Code       string   `json:"code,omitempty"`
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	Detail     string   `json:"detail,omitempty"`
	Cause      string   `json:"cause,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	DocURL     string   `json:"docUrl,omitempty"`
}

// FormatJSON returns the error as a single-line JSON object.
func (e *Error) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Error())
	}
	return string(data)
}

// wrapText splits text into lines no longer than width, breaking on spaces.
// A single word longer than width gets a line of its own.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

// Fprint writes err to w. Coded errors anywhere in the chain get the full
// layout; anything else is printed as a plain ERROR line.
func Fprint(w io.Writer, err error) {
	s := styler(colorDefault())
	var ce *Error
	if stderrors.As(err, &ce) {
		fmt.Fprint(w, ce.format(s))
		return
	}
	fmt.Fprintf(w, "\n%s: %s\n\n", s.paint("ERROR", ansiRed, ansiBold), err)
}

// PrintError writes err to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}
