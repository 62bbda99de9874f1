package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "E100",
			wantMsg: "Configuration file not found",
			wantCat: CategoryConfig,
		},
		{
			name:    "experiment error",
			code:    "E200",
			wantMsg: "Unsupported experiment source",
			wantCat: CategoryExperiment,
		},
		{
			name:    "protocol error",
			code:    "E302",
			wantMsg: "Invalid client message",
			wantCat: CategoryProtocol,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "flag %q is required", "--url")
	if err.Message != `flag "--url" is required` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestError_Error(t *testing.T) {
	err := New("E102")
	if got, want := err.Error(), "E102: Invalid port"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err2 := &Error{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}

	err3 := New("E101").Wrap(stderrors.New("unexpected EOF"))
	if got, want := err3.Error(), "E101: Invalid configuration file: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_Unwrap(t *testing.T) {
	err := New("E101").Wrap(fs.ErrNotExist)
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should see the wrapped error")
	}

	wrapped := fmt.Errorf("loading: %w", err)
	var e *Error
	if !stderrors.As(wrapped, &e) || e.Code != "E101" {
		t.Errorf("errors.As = %v, %+v", e != nil, e)
	}
}

func TestError_IsByCode(t *testing.T) {
	err := fmt.Errorf("serve: %w", New("E300").WithDetail("listen tcp: address in use"))
	if !stderrors.Is(err, New("E300")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, New("E301")) {
		t.Error("errors.Is should not match a different code")
	}
	if stderrors.Is(err, &Error{Message: "Server failed"}) {
		t.Error("errors.Is should not match an uncoded error")
	}
}

func TestHasCode(t *testing.T) {
	inner := New("E201").Wrap(stderrors.New("403"))
	outer := New("E300").Wrap(fmt.Errorf("startup: %w", inner))

	if !HasCode(outer, "E300") || !HasCode(outer, "E201") {
		t.Error("HasCode should find both codes in the chain")
	}
	if HasCode(outer, "E100") {
		t.Error("HasCode found a code that is not in the chain")
	}
	if HasCode(stderrors.New("plain"), "E100") || HasCode(nil, "E100") {
		t.Error("HasCode should be false for plain errors")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E300") != nil {
		t.Error("FromError(nil) should be nil")
	}

	plain := stderrors.New("boom")
	e := FromError(plain, "E300")
	if e.Code != "E300" || e.Wrapped != plain {
		t.Errorf("FromError(plain) = %+v", e)
	}

	coded := New("E102")
	if got := FromError(fmt.Errorf("x: %w", coded), "E300"); got != coded {
		t.Errorf("FromError should return the coded error in the chain, got %+v", got)
	}
}

func TestError_Builders(t *testing.T) {
	err := New("E105").
		WithDetail("sites[2] has no url").
		WithSuggestion("Add a url to every site")

	if err.Detail != "sites[2] has no url" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Suggestion != "Add a url to every site" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
}

func TestFormat(t *testing.T) {
	err := New("E100").
		WithDetail("No newtab.json found in /srv").
		WithSuggestion("Pass --config").
		Wrap(fs.ErrNotExist)

	out := err.FormatPlain()
	for _, want := range []string{
		"CONFIG ERROR E100: Configuration file not found",
		"No newtab.json found in /srv",
		"Cause: file does not exist",
		"Hint: Pass --config",
		"Learn more: " + docBase + "E100",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatPlain() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("FormatPlain() contains ANSI codes: %q", out)
	}
}

func TestFormatHonoursNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if out := New("E102").Format(); strings.Contains(out, "\033[") {
		t.Errorf("Format() with NO_COLOR contains ANSI codes: %q", out)
	}
}

func TestFprint(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var b strings.Builder
	Fprint(&b, fmt.Errorf("serve: %w", New("E300")))
	if !strings.Contains(b.String(), "SERVER ERROR E300") {
		t.Errorf("coded error output = %q", b.String())
	}

	b.Reset()
	Fprint(&b, stderrors.New("boom"))
	if got := b.String(); got != "\nERROR: boom\n\n" {
		t.Errorf("plain error output = %q", got)
	}
}

func TestFormatCompact(t *testing.T) {
	if got := New("E303").FormatCompact(); got != "E303: Unknown event target" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	got := New("E302").WithSuggestion("send hid").FormatJSON()
	for _, want := range []string{
		`"code":"E302"`,
		`"category":"protocol"`,
		`"message":"Invalid client message"`,
		`"suggestion":"send hid"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatJSON() missing %s: %s", want, got)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than 10", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %q", lines)
	}
	if got := wrapText("supercalifragilistic ok", 10); len(got) != 2 || got[0] != "supercalifragilistic" {
		t.Errorf("long word = %q", got)
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}

func TestRegistry(t *testing.T) {
	for _, code := range GetAllCodes() {
		tmpl, ok := GetTemplate(code)
		if !ok {
			t.Fatalf("GetTemplate(%s) missing", code)
		}
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("%s: incomplete template %+v", code, tmpl)
		}
		if !strings.HasSuffix(tmpl.DocURL, code) {
			t.Errorf("%s: DocURL = %q", code, tmpl.DocURL)
		}
	}

	Register("E399", ErrorTemplate{Category: CategoryServer, Message: "test only", DocURL: docBase + "E399"})
	defer delete(registry, "E399")
	if New("E399").Message != "test only" {
		t.Error("Register did not add the template")
	}
}
