// Package semver implements the version algebra this tool resolves
// over: versions, half-open intervals, convex ranges, and constraints
// built from disjoint unions of ranges.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a strict (major, minor, patch) triple. There are no
// pre-release or build-metadata segments.
type Version struct {
	Major, Minor, Patch uint64
}

// New builds a Version from its three components.
func New(major, minor, patch uint64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater
// than other, using lexicographic ordering over (major, minor, patch).
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmpUint(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmpUint(v.Minor, other.Minor)
	default:
		return cmpUint(v.Patch, other.Patch)
	}
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether v orders strictly before other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// Equal reports whether v and other denote the same version.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

// NextMajor returns the version with major incremented and minor/patch
// reset to zero, used by Strictness Safe to build an upper bound.
func (v Version) NextMajor() Version {
	return Version{Major: v.Major + 1, Minor: 0, Patch: 0}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion parses the strict "M.N.P" grammar. Any other shape,
// including pre-release or build metadata suffixes, is a parse error.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected M.N.P", s)
	}

	var nums [3]uint64
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %s", s, err)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MarshalText implements encoding.TextMarshaler so Version round-trips
// through JSON as a plain "M.N.P" string.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
