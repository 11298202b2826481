package semver

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-buffruneio"
)

// scanner wraps a buffruneio.Reader over a string, giving the parser
// below one-rune lookahead/pushback without hand-rolling an index.
type scanner struct {
	rd *buffruneio.Reader
}

func newScanner(s string) *scanner {
	return &scanner{rd: buffruneio.NewReader(strings.NewReader(s))}
}

func (s *scanner) peek() rune {
	runes := s.rd.PeekRunes(1)
	return runes[0]
}

func (s *scanner) next() rune {
	r, _, _ := s.rd.ReadRune()
	s.rd.Forget()
	return r
}

func (s *scanner) atEOF() bool {
	return s.peek() == buffruneio.EOF
}

func (s *scanner) consume(lit string) bool {
	for _, want := range lit {
		if s.peek() != want {
			return false
		}
		s.next()
	}
	return true
}

func (s *scanner) scanNumber() (string, bool) {
	var b strings.Builder
	for {
		r := s.peek()
		if r < '0' || r > '9' {
			break
		}
		b.WriteRune(s.next())
	}
	return b.String(), b.Len() > 0
}

func (s *scanner) scanVersion() (Version, error) {
	var parts []string
	for {
		n, ok := s.scanNumber()
		if !ok {
			return Version{}, fmt.Errorf("expected a number")
		}
		parts = append(parts, n)
		if s.peek() == '.' {
			s.next()
			continue
		}
		break
	}
	return ParseVersion(strings.Join(parts, "."))
}

// ParseRange parses exactly the ecosystem's written range-string
// grammar: "L <= v < U" with single ASCII spaces and nothing else,
// where L and U are Versions. Any deviation — a one-sided operator, a
// bare singleton version, "at any version", extra or missing
// whitespace, trailing characters — is a parse error.
func ParseRange(s string) (Range, error) {
	sc := newScanner(s)

	lower, err := sc.scanVersion()
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %s", s, err)
	}
	if !sc.consume(" <= v < ") {
		return Range{}, fmt.Errorf("invalid range %q: expected %q after the lower version", s, " <= v < ")
	}
	upper, err := sc.scanVersion()
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %s", s, err)
	}
	if !sc.atEOF() {
		return Range{}, fmt.Errorf("invalid range %q: unexpected trailing characters", s)
	}

	r, ok := NewRange(ClosedAt(lower), OpenAt(upper))
	if !ok {
		return Range{}, fmt.Errorf("invalid range %q: empty range", s)
	}
	return r, nil
}

// ParseConstraint parses the manifest's range-string grammar — a
// single "L <= v < U" range, the only constraint shape that ever
// appears in an elm-version or dependency field on disk.
func ParseConstraint(s string) (Constraint, error) {
	r, err := ParseRange(s)
	if err != nil {
		return Constraint{}, err
	}
	return FromRange(r), nil
}
