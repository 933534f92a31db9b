// Package estimate enumerates a package's compiler inputs by expanding the
// include globs from its tsconfig.json against the filesystem.
//
// The estimation is imprecise by design: it applies the documented
// file-extension rules to the include patterns but performs no source-code
// analysis, so it can both under- and over-report relative to the real
// compiler when exclude rules or import-driven inclusion matter. It is
// several orders of magnitude faster than invoking the compiler, which is
// the reason it exists; the exact package is the authoritative
// alternative.
package estimate

import (
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/typescript-tools/tsconfig-includes/internal/fs"
	"github.com/typescript-tools/tsconfig-includes/internal/globby"
	"github.com/typescript-tools/tsconfig-includes/internal/monopath"
)

// Enumerate expands the include globs of the given tsconfig file and
// returns the matching files as paths relative to the monorepo root.
func Enumerate(logger hclog.Logger, monorepoRoot monopath.AbsoluteSystemPath, tsconfigFile monopath.AbsoluteSystemPath) ([]monopath.AnchoredSystemPath, error) {
	packageDirectory := tsconfigFile.Dir()
	if packageDirectory == monorepoRoot {
		return nil, &fs.PackageAtMonorepoRootError{Path: tsconfigFile.ToString()}
	}

	tsconfig, err := fs.ReadTsConfig(tsconfigFile)
	if err != nil {
		return nil, err
	}

	whitelistedExtensions := tsconfig.WhitelistedExtensions()
	logger.Trace("whitelisted extensions", "tsconfig", tsconfigFile, "extensions", whitelistedExtensions)

	matches, err := globby.GlobFiles(packageDirectory.ToString(), tsconfig.Include)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to expand include globs of %v", tsconfigFile)
	}

	includedFiles := make([]monopath.AnchoredSystemPath, 0, len(matches))
	for _, match := range matches {
		matchPath := monopath.AbsoluteSystemPathFromUpstream(match)
		contained, err := monorepoRoot.ContainsPath(matchPath)
		if err != nil || !contained {
			continue
		}
		if !fs.HasWhitelistedExtension(match, whitelistedExtensions) {
			continue
		}
		includedFile, err := matchPath.RelativeTo(monorepoRoot)
		if err != nil {
			// The containment check should make this unreachable, but a
			// mismatch between assumed and actual filesystem layout must
			// surface as an error rather than a bad path.
			return nil, monopath.NewPathNormalizationError(matchPath, monorepoRoot, err)
		}
		includedFiles = append(includedFiles, includedFile)
	}

	return includedFiles, nil
}
