package semver

import "testing"

func TestIntervalCmpUnbounded(t *testing.T) {
	u := UnboundedInterval()
	c := ClosedAt(New(1, 0, 0))

	if u.Cmp(u, true) != 0 {
		t.Errorf("unbounded.Cmp(unbounded) != 0")
	}
	if u.Cmp(c, true) >= 0 {
		t.Errorf("as a lower bound, unbounded must sort before %s", c.Show(true))
	}
	if u.Cmp(c, false) <= 0 {
		t.Errorf("as an upper bound, unbounded must sort after %s", c.Show(false))
	}
}

func TestIntervalCmpSameVersionTieBreak(t *testing.T) {
	v := New(1, 0, 0)
	o := OpenAt(v)
	cl := ClosedAt(v)

	if cl.Cmp(o, true) >= 0 {
		t.Errorf("as a lower bound, closed(%s) must sort before open(%s)", v, v)
	}
	if o.Cmp(cl, false) >= 0 {
		t.Errorf("as an upper bound, open(%s) must sort before closed(%s)", v, v)
	}
}

func TestIntervalFlip(t *testing.T) {
	v := New(1, 0, 0)
	if OpenAt(v).Flip().Kind != Closed {
		t.Errorf("Flip(Open) should produce Closed")
	}
	if ClosedAt(v).Flip().Kind != Open {
		t.Errorf("Flip(Closed) should produce Open")
	}
	if UnboundedInterval().Flip().Kind != Unbounded {
		t.Errorf("Flip(Unbounded) should stay Unbounded")
	}
}

func TestIntervalShow(t *testing.T) {
	v := New(1, 0, 0)
	cases := []struct {
		iv    Interval
		lower bool
		want  string
	}{
		{UnboundedInterval(), true, ""},
		{ClosedAt(v), true, ">=1.0.0"},
		{ClosedAt(v), false, "<=1.0.0"},
		{OpenAt(v), true, ">1.0.0"},
		{OpenAt(v), false, "<1.0.0"},
	}
	for _, c := range cases {
		if got := c.iv.Show(c.lower); got != c.want {
			t.Errorf("Show(%v) = %q, want %q", c.lower, got, c.want)
		}
	}
}
