// Package resolver implements the conflict-driven version resolution
// engine: incompatibilities, a trail of decisions and derivations, and
// the unit-propagation/backjumping loop that drives it.
package resolver

import "github.com/elmtooling/elm-json-go/internal/pkgname"

// PackageId discriminates the three kinds of node the resolver ever
// decides a version for: the project being resolved, the pinned
// runtime-language pseudo-package, and ordinary registry packages.
// It is a small closed tagged union, implemented as an interface over
// three comparable value types so it can be used directly as a map
// key.
type PackageId interface {
	isPackageId()
	IsRoot() bool
	String() string
}

// Root identifies the project whose manifest seeds the resolution.
type Root struct{}

func (Root) isPackageId()   {}
func (Root) IsRoot() bool   { return true }
func (Root) String() string { return "root" }

// RuntimeLang identifies the pinned language-runtime pseudo-package
// that every manifest implicitly depends on.
type RuntimeLang struct{}

func (RuntimeLang) isPackageId()   {}
func (RuntimeLang) IsRoot() bool   { return false }
func (RuntimeLang) String() string { return "the runtime" }

// Pkg identifies an ordinary registry package by name.
type Pkg struct {
	Name pkgname.Name
}

func (Pkg) isPackageId()     {}
func (Pkg) IsRoot() bool     { return false }
func (p Pkg) String() string { return p.Name.String() }
