package pkgname

import "testing"

func TestParseAccepts(t *testing.T) {
	accept := []string{"foo/bar", "foo-bar-123/bar", "1/bar", "foo/b-r"}
	for _, s := range accept {
		if _, err := Parse(s); err != nil {
			t.Errorf("Parse(%q): expected success, got error: %s", s, err)
		}
	}
}

func TestParseRejects(t *testing.T) {
	reject := []string{"", "/", "foo/", "/bar", "\n/bar", "-foo/bar", "foo-/bar", "foo/ba-"}
	for _, s := range reject {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q): expected error, got none", s)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	n, err := Parse("elm/core")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n.String() != "elm/core" {
		t.Errorf("String() = %q, want %q", n.String(), "elm/core")
	}
	if n.Author != "elm" || n.Project != "core" {
		t.Errorf("got Author=%q Project=%q", n.Author, n.Project)
	}
}

func TestParseAuthorTooLong(t *testing.T) {
	long := ""
	for i := 0; i < 40; i++ {
		long += "a"
	}
	if _, err := Parse(long + "/bar"); err == nil {
		t.Errorf("expected a 40-character author to be rejected")
	}
}

func TestParseProjectMustStartLowercase(t *testing.T) {
	if _, err := Parse("foo/Bar"); err == nil {
		t.Errorf("expected an uppercase-leading project to be rejected")
	}
	if _, err := Parse("foo/1bar"); err == nil {
		t.Errorf("expected a digit-leading project to be rejected")
	}
}
