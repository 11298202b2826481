// Package registry implements the retriever: the resolver.Source that
// serves version lists and per-version incompatibilities out of a
// local version index, a side-cache of fetched manifests, and —
// failing both — the package registry itself.
package registry

import (
	"os"
	"path/filepath"
	"runtime"
)

const homeOverrideVar = "ELM_JSON_HOME"

// storeRoot returns the package store root directory: ELM_JSON_HOME if
// set, else the platform default (%APPDATA%/elm-json on Windows,
// $HOME/.elm-json elsewhere).
func storeRoot() (string, error) {
	if v := os.Getenv(homeOverrideVar); v != "" {
		return v, nil
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "elm-json"), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".elm-json"), nil
}

// versionsDatPath is the path to the binary version-index cache file.
func versionsDatPath() (string, error) {
	root, err := storeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "versions.dat"), nil
}

// sideCacheManifestPath is the path to the per-version manifest
// side-cache entry for name@version.
func sideCacheManifestPath(root, author, project, version string) string {
	return filepath.Join(root, "elm-json", "packages", author, project, version, "elm.json")
}

func ensureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
