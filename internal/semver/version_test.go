package semver

import "testing"

func TestVersionCompare(t *testing.T) {
	cases := []struct {
		a, b Version
		want int
	}{
		{New(1, 0, 0), New(1, 0, 0), 0},
		{New(1, 0, 0), New(1, 0, 1), -1},
		{New(1, 0, 1), New(1, 0, 0), 1},
		{New(1, 2, 0), New(1, 10, 0), -1},
		{New(2, 0, 0), New(1, 99, 99), 1},
	}
	for _, c := range cases {
		if got := c.a.Compare(c.b); got != c.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestVersionNextMajor(t *testing.T) {
	got := New(1, 5, 3).NextMajor()
	want := New(2, 0, 0)
	if !got.Equal(want) {
		t.Errorf("NextMajor() = %s, want %s", got, want)
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("1.2.3")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !v.Equal(New(1, 2, 3)) {
		t.Errorf("ParseVersion(1.2.3) = %s, want 1.2.3", v)
	}

	bad := []string{"1.2", "1.2.3.4", "1.2.x", "", "a.b.c"}
	for _, s := range bad {
		if _, err := ParseVersion(s); err == nil {
			t.Errorf("ParseVersion(%q): expected error, got none", s)
		}
	}
}

func TestVersionString(t *testing.T) {
	if got := New(1, 2, 3).String(); got != "1.2.3" {
		t.Errorf("String() = %q, want %q", got, "1.2.3")
	}
}
