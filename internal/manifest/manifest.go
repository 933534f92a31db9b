// Package manifest discovers the packages of a monorepo and the internal
// dependency edges between them. The resulting MonorepoManifest is an
// immutable value constructed once per invocation; it is safe for
// concurrent readers and is never mutated after LoadMonorepoManifest
// returns.
package manifest

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/pyr-sh/dag"
	"golang.org/x/sync/errgroup"

	"github.com/typescript-tools/tsconfig-includes/internal/fs"
	"github.com/typescript-tools/tsconfig-includes/internal/globby"
	"github.com/typescript-tools/tsconfig-includes/internal/monopath"
)

// LernaManifestFilename is the name of the lerna workspace definition file.
const LernaManifestFilename = "lerna.json"

type lernaManifest struct {
	Packages []string `json:"packages,omitempty"`
}

// MonorepoManifest is the parsed shape of one monorepo: every workspace
// package's manifest, indexed by name, plus the graph of internal
// dependency edges.
type MonorepoManifest struct {
	// Root is the absolute path to the monorepo root directory.
	Root monopath.AbsoluteSystemPath

	packageManifests map[string]*fs.PackageManifest
	// dependencyGraph has one vertex per package name and an edge from
	// each package to each of its in-repo dependencies.
	dependencyGraph dag.AcyclicGraph
}

// workspaceGlobs determines the glob patterns describing where workspace
// packages live: lerna.json's packages list when present, otherwise the
// workspaces field of the root package.json.
func workspaceGlobs(root monopath.AbsoluteSystemPath) ([]string, error) {
	lernaManifestPath := root.UntypedJoin(LernaManifestFilename)
	if lernaManifestPath.FileExists() {
		data, err := lernaManifestPath.ReadFile()
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read %v", lernaManifestPath)
		}
		manifest := &lernaManifest{}
		if err := json.Unmarshal(data, manifest); err != nil {
			return nil, errors.Wrapf(err, "unable to decode %v", lernaManifestPath)
		}
		if len(manifest.Packages) > 0 {
			return manifest.Packages, nil
		}
	}

	rootManifestPath := root.UntypedJoin(fs.PackageManifestFilename)
	if rootManifestPath.FileExists() {
		rootManifest, err := fs.ReadPackageManifest(rootManifestPath)
		if err != nil {
			return nil, err
		}
		if len(rootManifest.Workspaces) > 0 {
			return rootManifest.Workspaces, nil
		}
	}

	return nil, &WorkspaceDefinitionError{Root: root}
}

// LoadMonorepoManifest parses the monorepo-wide workspace definition rooted
// at the given directory.
func LoadMonorepoManifest(root monopath.AbsoluteSystemPath) (*MonorepoManifest, error) {
	globs, err := workspaceGlobs(root)
	if err != nil {
		return nil, err
	}

	justManifests := make([]string, len(globs))
	for index, glob := range globs {
		justManifests[index] = filepath.Join(glob, fs.PackageManifestFilename)
	}
	manifestPaths, err := globby.GlobFiles(root.ToString(), justManifests)
	if err != nil {
		return nil, errors.Wrap(err, "unable to enumerate workspace package manifests")
	}

	m := &MonorepoManifest{
		Root:             root,
		packageManifests: make(map[string]*fs.PackageManifest, len(manifestPaths)),
	}

	// Parse every package.json simultaneously; the dependency graph cannot
	// be populated until all names are known. Decode failures are collected
	// rather than reported one at a time.
	var mu sync.Mutex
	var parseErrs *multierror.Error
	parseGroup := new(errgroup.Group)
	for _, manifestPath := range manifestPaths {
		manifestPath := monopath.AbsoluteSystemPathFromUpstream(manifestPath)
		parseGroup.Go(func() error {
			packageManifest, err := fs.ReadPackageManifest(manifestPath)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				parseErrs = multierror.Append(parseErrs, err)
				return nil
			}
			anchored, err := manifestPath.RelativeTo(root)
			if err != nil {
				parseErrs = multierror.Append(parseErrs, err)
				return nil
			}
			packageManifest.PackageManifestPath = anchored
			packageManifest.Dir = anchored.Dir()
			m.packageManifests[packageManifest.Name] = packageManifest
			return nil
		})
	}
	_ = parseGroup.Wait()
	if err := parseErrs.ErrorOrNil(); err != nil {
		return nil, err
	}

	for name := range m.packageManifests {
		m.dependencyGraph.Add(name)
	}
	for name, packageManifest := range m.packageManifests {
		for dependency := range packageManifest.AllDependencies() {
			if dependency == name {
				continue
			}
			if _, ok := m.packageManifests[dependency]; ok {
				m.dependencyGraph.Connect(dag.BasicEdge(name, dependency))
			}
		}
	}

	return m, nil
}

// PackageManifestsByName returns the mapping from scoped package name to
// manifest. Callers must treat the returned map as read-only.
func (m *MonorepoManifest) PackageManifestsByName() map[string]*fs.PackageManifest {
	return m.packageManifests
}

// InternalPackageManifests returns every workspace package manifest, sorted
// by package name.
func (m *MonorepoManifest) InternalPackageManifests() []*fs.PackageManifest {
	manifests := make([]*fs.PackageManifest, 0, len(m.packageManifests))
	for _, packageManifest := range m.packageManifests {
		manifests = append(manifests, packageManifest)
	}
	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].Name < manifests[j].Name
	})
	return manifests
}

// TransitiveInternalDependencies returns the set of in-repo packages the
// named package transitively depends on, excluding the package itself,
// sorted by package name.
func (m *MonorepoManifest) TransitiveInternalDependencies(name string) ([]*fs.PackageManifest, error) {
	if _, ok := m.packageManifests[name]; !ok {
		return nil, &UnknownPackageError{Name: name}
	}
	ancestors, err := m.dependencyGraph.Ancestors(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to traverse the dependency graph from %v", name)
	}
	dependencies := make([]*fs.PackageManifest, 0, ancestors.Len())
	for _, vertex := range ancestors.List() {
		dependencies = append(dependencies, m.packageManifests[vertex.(string)])
	}
	sort.Slice(dependencies, func(i, j int) bool {
		return dependencies[i].Name < dependencies[j].Name
	})
	return dependencies, nil
}

// PackageManifestForTsconfig resolves which workspace package owns the
// given tsconfig file by path containment. Returns nil when no package
// directory contains the path.
func (m *MonorepoManifest) PackageManifestForTsconfig(tsconfigFile monopath.AnchoredSystemPath) *fs.PackageManifest {
	var owner *fs.PackageManifest
	for _, packageManifest := range m.packageManifests {
		dir := packageManifest.Dir.ToString() + string(filepath.Separator)
		if !strings.HasPrefix(tsconfigFile.ToString(), dir) {
			continue
		}
		// Prefer the deepest containing package directory.
		if owner == nil || len(packageManifest.Dir) > len(owner.Dir) {
			owner = packageManifest
		}
	}
	return owner
}
