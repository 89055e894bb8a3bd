package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/jobhub/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize("   "); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Build APIs in Go"); got != "Build APIs in Go" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Remote</strong> role</p><ul><li>Go</li></ul>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Hello</p><script>alert('xss')</script>")
	if got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="javascript:alert('xss')">Apply</a>`)
	if strings.Contains(got, "javascript:") {
		t.Errorf("expected javascript: URL removed, got %q", got)
	}
}

func TestPlainText(t *testing.T) {
	got := htmlsanitize.PlainText("  <b>Senior</b> Go Developer ")
	if got != "Senior Go Developer" {
		t.Errorf("PlainText = %q", got)
	}
}
