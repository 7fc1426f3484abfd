package security

import (
	"strings"
	"testing"
)

func TestSanitizeHTML_StripsScriptBlocks(t *testing.T) {
	in := `Route tips <script type="text/javascript">alert("x")</script> for you`
	out := SanitizeHTML(in)
	if strings.Contains(strings.ToLower(out), "<script") || strings.Contains(out, "alert") {
		t.Fatalf("script survived: %q", out)
	}
	if !strings.Contains(out, "Route tips") || !strings.Contains(out, "for you") {
		t.Fatalf("surrounding text mangled: %q", out)
	}
}

func TestSanitizeHTML_StripsEmbeddedFrames(t *testing.T) {
	cases := []string{
		`<iframe src="https://evil.example"></iframe>`,
		`<object data="x"></object>`,
		`<embed src="x">`,
		`<EMBED SRC="x"/>`,
	}
	for _, in := range cases {
		out := SanitizeHTML("before " + in + " after")
		if strings.Contains(strings.ToLower(out), "<iframe") ||
			strings.Contains(strings.ToLower(out), "<object") ||
			strings.Contains(strings.ToLower(out), "<embed") {
			t.Fatalf("active element survived: %q -> %q", in, out)
		}
	}
}

func TestSanitizeHTML_StripsEventHandlers(t *testing.T) {
	out := SanitizeHTML(`<b onclick="steal()" onmouseover='x'>bold</b>`)
	if strings.Contains(strings.ToLower(out), "onclick") || strings.Contains(strings.ToLower(out), "onmouseover") {
		t.Fatalf("event handler survived: %q", out)
	}
	if !strings.Contains(out, "bold") {
		t.Fatalf("content lost: %q", out)
	}
}

func TestSanitizeHTML_StripsJavascriptURLs(t *testing.T) {
	out := SanitizeHTML(`<a href="javascript:alert(1)">link</a>`)
	if strings.Contains(strings.ToLower(out), "javascript:") {
		t.Fatalf("javascript url survived: %q", out)
	}
}

func TestSanitizeHTML_Idempotent(t *testing.T) {
	in := `  Plain reply with <b>markup</b> and a <script>bad()</script> payload  `
	once := SanitizeHTML(in)
	twice := SanitizeHTML(once)
	if once != twice {
		t.Fatalf("sanitization not idempotent: %q vs %q", once, twice)
	}
}

func TestSanitizeHTML_PlainTextUntouched(t *testing.T) {
	in := "Day 1: Chicago to Springfield, 320 km. Charge at the Supercharger downtown."
	if out := SanitizeHTML(in); out != in {
		t.Fatalf("plain text altered: %q", out)
	}
}
