package manifest

import (
	"testing"

	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

func mustName(s string) pkgname.Name {
	n, err := pkgname.Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

func TestDiffAdditionsDeletionsChanges(t *testing.T) {
	left := map[pkgname.Name]semver.Version{
		mustName("author/core"): semver.New(1, 0, 0),
		mustName("author/http"): semver.New(1, 0, 0),
	}
	right := map[pkgname.Name]semver.Version{
		mustName("author/core"): semver.New(1, 5, 0),
		mustName("author/json"): semver.New(1, 0, 0),
	}

	d := NewDiff(left, right)

	if len(d.OnlyLeft) != 1 || d.OnlyLeft[0] != mustName("author/http") {
		t.Errorf("expected author/http only-left, got %v", d.OnlyLeft)
	}
	if len(d.OnlyRight) != 1 || d.OnlyRight[0] != mustName("author/json") {
		t.Errorf("expected author/json only-right, got %v", d.OnlyRight)
	}
	if len(d.Changed) != 1 || d.Changed[0].Name != mustName("author/core") {
		t.Errorf("expected author/core to be changed, got %v", d.Changed)
	}
	if d.IsEmpty() {
		t.Errorf("expected a non-empty diff")
	}
}

func TestDiffIdenticalIsEmpty(t *testing.T) {
	m := map[pkgname.Name]semver.Version{
		mustName("author/core"): semver.New(1, 0, 0),
	}
	d := NewDiff(m, m)
	if !d.IsEmpty() {
		t.Errorf("expected an empty diff for identical maps")
	}
}
