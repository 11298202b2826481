package clierr

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderHeaderAndMessage(t *testing.T) {
	e := New(MissingManifest, "could not find elm.json")
	out := e.Render()
	if !strings.HasPrefix(out, "MISSING MANIFEST\n") {
		t.Errorf("expected an uppercase header line, got %q", out)
	}
	if !strings.Contains(out, "could not find elm.json") {
		t.Errorf("expected the message to appear, got %q", out)
	}
}

func TestRenderWrapsCause(t *testing.T) {
	cause := errors.New("permission denied")
	e := Wrap(UnwritableManifest, cause, "failed to write elm.json")
	out := e.Render()
	if !strings.Contains(out, "permission denied") {
		t.Errorf("expected the cause text to appear, got %q", out)
	}
}

func TestErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	e := Wrap(Unknown, cause, "something went wrong")
	if !errors.Is(e, cause) {
		t.Errorf("expected errors.Is to find the wrapped cause")
	}
}

func TestWrap80SplitsLongLines(t *testing.T) {
	long := strings.Repeat("word ", 40)
	out := wrap80(long)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 80 {
			t.Errorf("line exceeds 80 columns: %q", line)
		}
	}
}
