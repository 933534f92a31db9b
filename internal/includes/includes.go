// Package includes computes, for one or more tsconfig.json files inside a
// monorepo, the list of source code files used by the TypeScript compiler
// when compiling those projects and their in-repo dependencies. Results
// are relative paths from the monorepo root, sorted alphabetically and
// grouped by scoped package name.
//
// Two enumeration strategies exist, selected by Calculation: a fast
// estimate driven by include globs (package estimate) and a slow exact
// method that asks the compiler itself (package exact).
package includes

import (
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/typescript-tools/tsconfig-includes/internal/estimate"
	"github.com/typescript-tools/tsconfig-includes/internal/exact"
	"github.com/typescript-tools/tsconfig-includes/internal/fs"
	"github.com/typescript-tools/tsconfig-includes/internal/manifest"
	"github.com/typescript-tools/tsconfig-includes/internal/monopath"
)

// TypescriptPackage identifies one package to enumerate: its scoped name
// and the location of its tsconfig file relative to the monorepo root.
// This composite key is the deduplication unit of the closure set: two
// requests resolving to the same package enumerate its files exactly once.
type TypescriptPackage struct {
	ScopedPackageName string
	TsconfigFile      monopath.AnchoredSystemPath
}

// Options carries the policy knobs threaded through to the enumerators.
type Options struct {
	// Compiler substitutes the exact-mode compiler invocation. Defaults
	// to spawning tsc.
	Compiler exact.Compiler
	// KeepNodeModules retains exact-mode paths under node_modules.
	KeepNodeModules bool
	// Concurrency bounds the number of packages enumerated in parallel.
	// Defaults to the number of CPUs.
	Concurrency int
}

func (o Options) concurrency() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}
	return runtime.NumCPU()
}

// enumerator computes the file list for a single package's tsconfig.
type enumerator func(tsconfigFile monopath.AbsoluteSystemPath) ([]monopath.AnchoredSystemPath, error)

// ByPackageName enumerates the source files consumed when compiling the
// given projects and every in-repo package they transitively depend on.
//
// - monorepoRoot may be an absolute path
// - tsconfigFiles are interpreted relative to the monorepo root
func ByPackageName(logger hclog.Logger, monorepoRoot monopath.AbsoluteSystemPath, tsconfigFiles []monopath.RelativeSystemPath, calculation Calculation) (map[string][]monopath.AnchoredSystemPath, error) {
	return ByPackageNameWithOptions(logger, monorepoRoot, tsconfigFiles, calculation, Options{})
}

// ByPackageNameWithOptions is ByPackageName with explicit policy knobs.
func ByPackageNameWithOptions(logger hclog.Logger, monorepoRoot monopath.AbsoluteSystemPath, tsconfigFiles []monopath.RelativeSystemPath, calculation Calculation, opts Options) (map[string][]monopath.AnchoredSystemPath, error) {
	monorepoManifest, err := manifest.LoadMonorepoManifest(monorepoRoot)
	if err != nil {
		return nil, err
	}
	return byPackageName(logger, monorepoManifest, tsconfigFiles, calculation, opts)
}

// Includes is the single-project entry point: it discovers the monorepo
// root by walking up from the tsconfig file, then behaves as ByPackageName
// for that one project.
func Includes(logger hclog.Logger, tsconfigFile monopath.AbsoluteSystemPath, calculation Calculation) (map[string][]monopath.AnchoredSystemPath, error) {
	lernaManifestPath, err := monopath.FindupFrom(manifest.LernaManifestFilename, tsconfigFile.Dir())
	if err != nil {
		return nil, errors.Wrapf(err, "unable to search for the monorepo root above %v", tsconfigFile)
	}
	if lernaManifestPath == "" {
		return nil, &NotInMonorepoError{Path: tsconfigFile}
	}
	monorepoRoot := lernaManifestPath.Dir()

	monorepoManifest, err := manifest.LoadMonorepoManifest(monorepoRoot)
	if err != nil {
		return nil, err
	}
	anchoredTsconfig, err := tsconfigFile.RelativeTo(monorepoRoot)
	if err != nil {
		return nil, monopath.NewPathNormalizationError(tsconfigFile, monorepoRoot, err)
	}
	if monorepoManifest.PackageManifestForTsconfig(anchoredTsconfig) == nil {
		return nil, &NotInMonorepoError{Path: tsconfigFile}
	}

	tsconfigFiles := []monopath.RelativeSystemPath{monopath.RelativeSystemPath(anchoredTsconfig)}
	return byPackageName(logger, monorepoManifest, tsconfigFiles, calculation, Options{})
}

func byPackageName(logger hclog.Logger, monorepoManifest *manifest.MonorepoManifest, tsconfigFiles []monopath.RelativeSystemPath, calculation Calculation, opts Options) (map[string][]monopath.AnchoredSystemPath, error) {
	packagesToEnumerate, err := resolveClosure(monorepoManifest, tsconfigFiles)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved inclusive transitive closure",
		"calculation", calculation,
		"requested", len(tsconfigFiles),
		"packages", packagesToEnumerate.Cardinality())

	var enumerate enumerator
	switch calculation {
	case CalculationExact:
		exactOpts := exact.Options{Compiler: opts.Compiler, KeepNodeModules: opts.KeepNodeModules}
		enumerate = func(tsconfigFile monopath.AbsoluteSystemPath) ([]monopath.AnchoredSystemPath, error) {
			return exact.Enumerate(logger, monorepoManifest.Root, tsconfigFile, exactOpts)
		}
	default:
		enumerate = func(tsconfigFile monopath.AbsoluteSystemPath) ([]monopath.AnchoredSystemPath, error) {
			return estimate.Enumerate(logger, monorepoManifest.Root, tsconfigFile)
		}
	}

	return aggregate(logger, monorepoManifest.Root, packagesToEnumerate, enumerate, opts.concurrency())
}

// resolveClosure maps each requested tsconfig file onto its package plus
// the transitive set of in-repo packages it depends on, deduplicated
// across requests. The closure is reflexive: internal dependencies are
// gathered first (exclusive), then the target package itself is added.
func resolveClosure(monorepoManifest *manifest.MonorepoManifest, tsconfigFiles []monopath.RelativeSystemPath) (mapset.Set, error) {
	packageManifestsByName := monorepoManifest.PackageManifestsByName()
	packagesToEnumerate := mapset.NewSet()

	for _, tsconfigFile := range tsconfigFiles {
		packageDirectory := filepath.Dir(tsconfigFile.ToString())
		if packageDirectory == "." || packageDirectory == string(filepath.Separator) {
			return nil, &fs.PackageAtMonorepoRootError{Path: tsconfigFile.ToString()}
		}

		packageManifestPath := monorepoManifest.Root.UntypedJoin(packageDirectory, fs.PackageManifestFilename)
		packageManifest, err := fs.ReadPackageManifest(packageManifestPath)
		if err != nil {
			return nil, err
		}
		registered, ok := packageManifestsByName[packageManifest.Name]
		if !ok {
			return nil, &manifest.UnknownPackageError{Name: packageManifest.Name}
		}

		// Enumerate internal dependencies (exclusive), then make the
		// collection inclusive of the target package.
		transitiveDependencies, err := monorepoManifest.TransitiveInternalDependencies(registered.Name)
		if err != nil {
			return nil, err
		}
		for _, dependency := range append(transitiveDependencies, registered) {
			if dependency.Dir.ToString() == "." || dependency.Dir.ToString() == "" {
				// Should not occur for well-formed manifests.
				return nil, &fs.PackageAtMonorepoRootError{Path: dependency.PackageManifestPath.ToString()}
			}
			packagesToEnumerate.Add(TypescriptPackage{
				ScopedPackageName: dependency.Name,
				TsconfigFile:      dependency.Dir.Join(monopath.RelativeSystemPath(fs.TsconfigFilename)),
			})
		}
	}

	return packagesToEnumerate, nil
}

// aggregate runs the enumerator for every package in parallel and merges
// the sorted per-package file lists into a single mapping. The first
// failure aborts the batch; no partial results are returned.
func aggregate(logger hclog.Logger, monorepoRoot monopath.AbsoluteSystemPath, packagesToEnumerate mapset.Set, enumerate enumerator, concurrency int) (map[string][]monopath.AnchoredSystemPath, error) {
	includedFiles := make(map[string][]monopath.AnchoredSystemPath, packagesToEnumerate.Cardinality())
	var mu sync.Mutex
	group := new(errgroup.Group)
	group.SetLimit(concurrency)

	for _, item := range packagesToEnumerate.ToSlice() {
		typescriptPackage := item.(TypescriptPackage)
		group.Go(func() error {
			tsconfigFile := typescriptPackage.TsconfigFile.RestoreAnchor(monorepoRoot)
			files, err := enumerate(tsconfigFile)
			if err != nil {
				return errors.Wrapf(err, "unable to enumerate files of package %v", typescriptPackage.ScopedPackageName)
			}
			files = sortedUnique(files)
			logger.Trace("enumerated package", "package", typescriptPackage.ScopedPackageName, "files", len(files))
			mu.Lock()
			defer mu.Unlock()
			includedFiles[typescriptPackage.ScopedPackageName] = files
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return includedFiles, nil
}

func sortedUnique(files []monopath.AnchoredSystemPath) []monopath.AnchoredSystemPath {
	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })
	deduped := files[:0]
	for index, file := range files {
		if index > 0 && file == files[index-1] {
			continue
		}
		deduped = append(deduped, file)
	}
	return deduped
}
