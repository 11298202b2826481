package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

// discriminator is the manifest's "type" field.
type discriminator struct {
	Type string `json:"type"`
}

// Read decodes a manifest from r, dispatching on its "type"
// discriminator. It returns either an *Application or a *Package.
func Read(r io.Reader) (interface{}, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var disc discriminator
	if err := json.Unmarshal(raw, &disc); err != nil {
		return nil, fmt.Errorf("not a valid elm.json: %s", err)
	}

	switch disc.Type {
	case "application":
		app := NewApplication()
		if err := app.UnmarshalJSON(raw); err != nil {
			return nil, err
		}
		return app, nil
	case "package":
		pkg := NewPackage()
		if err := pkg.UnmarshalJSON(raw); err != nil {
			return nil, err
		}
		return pkg, nil
	default:
		return nil, fmt.Errorf("unrecognized manifest type %q", disc.Type)
	}
}

// Write encodes m (an *Application or *Package) to w, four-space
// indented with a trailing newline, matching the teacher's own
// MarshalJSON convention in manifest.go.
func Write(w io.Writer, m interface{}) error {
	var body []byte
	var err error

	switch v := m.(type) {
	case *Application:
		body, err = v.MarshalJSON()
	case *Package:
		body, err = v.MarshalJSON()
	default:
		return fmt.Errorf("manifest.Write: unsupported type %T", m)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(body); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

type rawAppDependencies struct {
	Direct   map[pkgname.Name]semver.Version `json:"direct"`
	Indirect map[pkgname.Name]semver.Version `json:"indirect"`
}

func (d AppDependencies) toRaw() rawAppDependencies {
	direct := d.Direct
	if direct == nil {
		direct = make(map[pkgname.Name]semver.Version)
	}
	indirect := d.Indirect
	if indirect == nil {
		indirect = make(map[pkgname.Name]semver.Version)
	}
	return rawAppDependencies{Direct: direct, Indirect: indirect}
}

func (r rawAppDependencies) toAppDependencies() AppDependencies {
	d := newAppDependencies()
	for k, v := range r.Direct {
		d.Direct[k] = v
	}
	for k, v := range r.Indirect {
		d.Indirect[k] = v
	}
	return d
}

type rawApplication struct {
	Type              string             `json:"type"`
	SourceDirectories []string           `json:"source-directories"`
	ElmVersion        semver.Version     `json:"elm-version"`
	Dependencies      rawAppDependencies `json:"dependencies"`
	TestDependencies  rawAppDependencies `json:"test-dependencies"`
}

var appKnownKeys = []string{
	"type", "source-directories", "elm-version", "dependencies", "test-dependencies",
}

// UnmarshalJSON decodes a full application manifest, stashing any
// top-level key it doesn't recognize into Other for round-trip.
func (a *Application) UnmarshalJSON(data []byte) error {
	var raw rawApplication
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid application manifest: %s", err)
	}

	other, err := extractOther(data, appKnownKeys)
	if err != nil {
		return err
	}

	a.SourceDirectories = raw.SourceDirectories
	a.ElmVersion = raw.ElmVersion
	a.Dependencies = raw.Dependencies.toAppDependencies()
	a.TestDependencies = raw.TestDependencies.toAppDependencies()
	a.Other = other
	return nil
}

// MarshalJSON encodes the application manifest, four-space indented,
// re-emitting every key Other preserved.
func (a *Application) MarshalJSON() ([]byte, error) {
	merged := map[string]json.RawMessage{}
	for k, v := range a.Other {
		merged[k] = v
	}

	fields := map[string]interface{}{
		"type":               "application",
		"source-directories": a.SourceDirectories,
		"elm-version":        a.ElmVersion,
		"dependencies":       a.Dependencies.toRaw(),
		"test-dependencies":  a.TestDependencies.toRaw(),
	}
	for k, v := range fields {
		var b bytes.Buffer
		enc := json.NewEncoder(&b)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		merged[k] = bytes.TrimRight(b.Bytes(), "\n")
	}

	return encodeOrdered(merged, appKnownKeys)
}

type rawPackage struct {
	Type             string            `json:"type"`
	Name             pkgname.Name      `json:"name"`
	Summary          string            `json:"summary"`
	License          string            `json:"license"`
	Version          semver.Version    `json:"version"`
	ExposedModules   json.RawMessage   `json:"exposed-modules"`
	ElmVersion       string            `json:"elm-version"`
	Dependencies     map[string]string `json:"dependencies"`
	TestDependencies map[string]string `json:"test-dependencies"`
}

var packageKnownKeys = []string{
	"type", "name", "summary", "license", "version", "exposed-modules",
	"elm-version", "dependencies", "test-dependencies",
}

func (p *Package) UnmarshalJSON(data []byte) error {
	var raw rawPackage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid package manifest: %s", err)
	}

	other, err := extractOther(data, packageKnownKeys)
	if err != nil {
		return err
	}

	p.Name = raw.Name
	p.Summary = raw.Summary
	p.License = raw.License
	p.Version = raw.Version
	p.Other = other

	modules, err := unmarshalExposedModules(raw.ExposedModules)
	if err != nil {
		return err
	}
	p.ExposedModules = modules

	elmRange, err := semver.ParseConstraint(raw.ElmVersion)
	if err != nil {
		return fmt.Errorf("invalid elm-version range %q: %s", raw.ElmVersion, err)
	}
	p.ElmVersion = elmRange

	deps, err := parseDependencyMap(raw.Dependencies)
	if err != nil {
		return err
	}
	p.Dependencies = deps

	testDeps, err := parseDependencyMap(raw.TestDependencies)
	if err != nil {
		return err
	}
	p.TestDependencies = testDeps

	return nil
}

func parseDependencyMap(raw map[string]string) (PackageDependencies, error) {
	deps := make(PackageDependencies, len(raw))
	for name, rangeStr := range raw {
		n, err := pkgname.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("invalid dependency name %q: %s", name, err)
		}
		c, err := semver.ParseConstraint(rangeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid dependency range %q for %s: %s", rangeStr, name, err)
		}
		deps[n] = c
	}
	return deps, nil
}

func (p *Package) MarshalJSON() ([]byte, error) {
	merged := map[string]json.RawMessage{}
	for k, v := range p.Other {
		merged[k] = v
	}

	modules, err := marshalExposedModules(p.ExposedModules)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"type":              "package",
		"name":              p.Name,
		"summary":           p.Summary,
		"license":           p.License,
		"version":           p.Version,
		"elm-version":       p.ElmVersion.String(),
		"dependencies":      dependencyMapToRaw(p.Dependencies),
		"test-dependencies": dependencyMapToRaw(p.TestDependencies),
	}
	for k, v := range fields {
		var b bytes.Buffer
		enc := json.NewEncoder(&b)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		merged[k] = bytes.TrimRight(b.Bytes(), "\n")
	}
	merged["exposed-modules"] = modules

	return encodeOrdered(merged, packageKnownKeys)
}

func dependencyMapToRaw(deps PackageDependencies) map[string]string {
	out := make(map[string]string, len(deps))
	for name, c := range deps {
		out[name.String()] = c.String()
	}
	return out
}

func unmarshalExposedModules(raw json.RawMessage) (ExposedModules, error) {
	if len(raw) == 0 {
		return ExposedModules{}, nil
	}

	var flat []string
	if err := json.Unmarshal(raw, &flat); err == nil {
		return ExposedModules{Flat: flat}, nil
	}

	var grouped map[string][]string
	if err := json.Unmarshal(raw, &grouped); err != nil {
		return ExposedModules{}, fmt.Errorf("invalid exposed-modules: %s", err)
	}
	return ExposedModules{Grouped: grouped}, nil
}

func marshalExposedModules(e ExposedModules) (json.RawMessage, error) {
	if e.isGrouped() {
		return json.Marshal(e.Grouped)
	}
	flat := e.Flat
	if flat == nil {
		flat = []string{}
	}
	return json.Marshal(flat)
}

// extractOther decodes data's top level and strips every key in
// known, leaving whatever the caller's typed fields don't model.
func extractOther(data []byte, known []string) (map[string]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(top, k)
	}
	return top, nil
}

// encodeOrdered renders fields as a JSON object with known keys first
// (in the given order) followed by any remaining (preserved) keys in
// sorted order, four-space indented with no HTML escaping.
func encodeOrdered(fields map[string]json.RawMessage, knownOrder []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	written := make(map[string]bool, len(fields))
	first := true
	writeField := func(k string) error {
		v, ok := fields[k]
		if !ok || written[k] {
			return nil
		}
		written[k] = true
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteByte('\n')
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(keyJSON)
		buf.WriteString(": ")
		buf.Write(v)
		return nil
	}

	for _, k := range knownOrder {
		if err := writeField(k); err != nil {
			return nil, err
		}
	}
	rest := make([]string, 0, len(fields))
	for k := range fields {
		if !written[k] {
			rest = append(rest, k)
		}
	}
	sortStrings(rest)
	for _, k := range rest {
		if err := writeField(k); err != nil {
			return nil, err
		}
	}

	if !first {
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", "    "); err != nil {
		return nil, err
	}
	return pretty.Bytes(), nil
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
