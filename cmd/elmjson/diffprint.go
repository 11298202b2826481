package main

import (
	"fmt"
	"io"

	"github.com/elmtooling/elm-json-go/internal/manifest"
	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

// depKind labels one of the four sections of an application's
// dependency diff, or the two sections of a package's.
type depKind int

const (
	depRegular depKind = iota
	depTest
	depDirect
	depDirectTest
	depIndirect
	depIndirectTest
)

func (k depKind) label() string {
	switch k {
	case depTest:
		return "test "
	case depDirect:
		return "direct "
	case depDirectTest:
		return "direct test "
	case depIndirect:
		return "indirect "
	case depIndirectTest:
		return "indirect test "
	default:
		return ""
	}
}

// showDiff prints the changes between left and right under kind's
// label, if there are any, matching the original tool's
// "I want to make some changes to your ... dependencies" framing.
func showDiff(w io.Writer, kind depKind, left, right map[pkgname.Name]semver.Version) {
	d := manifest.NewDiff(left, right)
	if d.IsEmpty() {
		return
	}

	fmt.Fprintf(w, "I want to make some changes to your %sdependencies\n\n", kind.label())
	for _, name := range d.OnlyLeft {
		fmt.Fprintf(w, "- [DEL] %s %s\n", name, left[name])
	}
	for _, c := range d.Changed {
		fmt.Fprintf(w, "- [CHG] %s %s -> %s\n", c.Name, c.From, c.To)
	}
	for _, name := range d.OnlyRight {
		fmt.Fprintf(w, "- [ADD] %s %s\n", name, right[name])
	}
	fmt.Fprintln(w)
}

// showAppDiff prints all four sections of an application dependency
// change (direct/indirect, regular/test).
func showAppDiff(w io.Writer, oldDeps, newDeps, oldTest, newTest manifest.AppDependencies) {
	showDiff(w, depDirect, oldDeps.Direct, newDeps.Direct)
	showDiff(w, depIndirect, oldDeps.Indirect, newDeps.Indirect)
	showDiff(w, depDirectTest, oldTest.Direct, newTest.Direct)
	showDiff(w, depIndirectTest, oldTest.Indirect, newTest.Indirect)
}

// showConstraintDiff is showDiff's counterpart for a package
// manifest's range-constrained dependencies, which are compared and
// printed as ranges rather than pinned versions.
func showConstraintDiff(w io.Writer, kind depKind, left, right manifest.PackageDependencies) {
	names := make(map[pkgname.Name]bool, len(left)+len(right))
	for n := range left {
		names[n] = true
	}
	for n := range right {
		names[n] = true
	}

	var onlyLeft, onlyRight []pkgname.Name
	var changed []pkgname.Name
	for n := range names {
		lv, lok := left[n]
		rv, rok := right[n]
		switch {
		case lok && !rok:
			onlyLeft = append(onlyLeft, n)
		case !lok && rok:
			onlyRight = append(onlyRight, n)
		case !lv.Equal(rv):
			changed = append(changed, n)
		}
	}
	if len(onlyLeft) == 0 && len(onlyRight) == 0 && len(changed) == 0 {
		return
	}

	fmt.Fprintf(w, "I want to make some changes to your %sdependencies\n\n", kind.label())
	for _, n := range onlyLeft {
		fmt.Fprintf(w, "- [DEL] %s %s\n", n, left[n])
	}
	for _, n := range changed {
		fmt.Fprintf(w, "- [CHG] %s %s -> %s\n", n, left[n], right[n])
	}
	for _, n := range onlyRight {
		fmt.Fprintf(w, "- [ADD] %s %s\n", n, right[n])
	}
	fmt.Fprintln(w)
}
