package fs

import (
	"encoding/json"

	"github.com/typescript-tools/tsconfig-includes/internal/monopath"
)

// PackageManifest represents the package.json of one workspace package.
type PackageManifest struct {
	Name                 string            `json:"name,omitempty"`
	Version              string            `json:"version,omitempty"`
	Dependencies         map[string]string `json:"dependencies,omitempty"`
	DevDependencies      map[string]string `json:"devDependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
	Workspaces           Workspaces        `json:"workspaces,omitempty"`
	Private              bool              `json:"private,omitempty"`

	// PackageManifestPath is the manifest location relative to the
	// monorepo root. Populated by the manifest loader, not the decoder.
	PackageManifestPath monopath.AnchoredSystemPath `json:"-"`
	// Dir is the package directory relative to the monorepo root.
	Dir monopath.AnchoredSystemPath `json:"-"`
}

// Workspaces is a list of workspace glob patterns. npm and yarn allow either
// a bare array or an object with a packages field; both decode into this.
type Workspaces []string

type workspacesAlt struct {
	Packages []string `json:"packages,omitempty"`
}

func (r *Workspaces) UnmarshalJSON(data []byte) error {
	var tmp = &workspacesAlt{}
	if err := json.Unmarshal(data, tmp); err == nil {
		*r = Workspaces(tmp.Packages)
		return nil
	}
	var tempstr = []string{}
	if err := json.Unmarshal(data, &tempstr); err != nil {
		return err
	}
	*r = tempstr
	return nil
}

// ReadPackageManifest decodes the package.json file at the given path.
func ReadPackageManifest(path monopath.AbsoluteSystemPath) (*PackageManifest, error) {
	data, err := path.ReadFile()
	if err != nil {
		return nil, &PackageManifestReadError{Path: path, cause: err}
	}
	manifest := &PackageManifest{}
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, &PackageManifestReadError{Path: path, cause: err}
	}
	return manifest, nil
}

// AllDependencies returns the union of dependencies, devDependencies, and
// optionalDependencies. Later maps do not override earlier ones; only the
// key set matters to callers deciding which edges are internal.
func (m *PackageManifest) AllDependencies() map[string]string {
	dependencies := make(map[string]string, len(m.Dependencies)+len(m.DevDependencies)+len(m.OptionalDependencies))
	for name, version := range m.DevDependencies {
		dependencies[name] = version
	}
	for name, version := range m.OptionalDependencies {
		dependencies[name] = version
	}
	for name, version := range m.Dependencies {
		dependencies[name] = version
	}
	return dependencies
}
