package resolver

import "github.com/elmtooling/elm-json-go/internal/semver"

// Summary names a single, concrete (package, version) pair — a node of
// the solution graph the resolver ultimately produces.
type Summary struct {
	ID      PackageId
	Version semver.Version
}

func (s Summary) String() string {
	return s.ID.String() + " " + s.Version.String()
}
