package manifest

import (
	"sort"

	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

// Changed records a dependency whose pinned version moved between two
// maps being diffed.
type Changed struct {
	Name pkgname.Name
	From semver.Version
	To   semver.Version
}

// Diff is the symmetric difference of two Name->Version maps: entries
// only on the left (deletions), only on the right (additions), and
// entries present on both sides with different versions (changes).
// Ported from the original tool's diff.rs, which computes this via a
// synchronized traversal of two already-sorted iterators; here the two
// input maps are sorted locally first to get the same ordered,
// single-pass comparison.
type Diff struct {
	OnlyLeft  []pkgname.Name
	OnlyRight []pkgname.Name
	Changed   []Changed
}

// IsEmpty reports whether left and right were identical.
func (d Diff) IsEmpty() bool {
	return len(d.OnlyLeft) == 0 && len(d.OnlyRight) == 0 && len(d.Changed) == 0
}

// NewDiff computes the symmetric difference between left and right.
func NewDiff(left, right map[pkgname.Name]semver.Version) Diff {
	leftNames := sortedNames(left)
	rightNames := sortedNames(right)

	var d Diff
	i, j := 0, 0
	for i < len(leftNames) && j < len(rightNames) {
		ln, rn := leftNames[i], rightNames[j]
		switch {
		case ln == rn:
			lv, rv := left[ln], right[rn]
			if !lv.Equal(rv) {
				d.Changed = append(d.Changed, Changed{Name: ln, From: lv, To: rv})
			}
			i++
			j++
		case nameLess(ln, rn):
			d.OnlyLeft = append(d.OnlyLeft, ln)
			i++
		default:
			d.OnlyRight = append(d.OnlyRight, rn)
			j++
		}
	}
	for ; i < len(leftNames); i++ {
		d.OnlyLeft = append(d.OnlyLeft, leftNames[i])
	}
	for ; j < len(rightNames); j++ {
		d.OnlyRight = append(d.OnlyRight, rightNames[j])
	}
	return d
}

func sortedNames(m map[pkgname.Name]semver.Version) []pkgname.Name {
	names := make([]pkgname.Name, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return nameLess(names[i], names[j]) })
	return names
}

func nameLess(a, b pkgname.Name) bool {
	if a.Author != b.Author {
		return a.Author < b.Author
	}
	return a.Project < b.Project
}
