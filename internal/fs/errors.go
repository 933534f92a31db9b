package fs

import (
	"fmt"

	"github.com/typescript-tools/tsconfig-includes/internal/monopath"
)

// ConfigDecodeError signals that a tsconfig.json file is missing, unreadable,
// or malformed.
type ConfigDecodeError struct {
	Path  monopath.AbsoluteSystemPath
	cause error
}

func (e *ConfigDecodeError) Error() string {
	return fmt.Sprintf("unable to decode tsconfig %v", e.Path)
}

func (e *ConfigDecodeError) Unwrap() error {
	return e.cause
}

// PackageManifestReadError signals that a package.json file is missing,
// unreadable, or malformed.
type PackageManifestReadError struct {
	Path  monopath.AbsoluteSystemPath
	cause error
}

func (e *PackageManifestReadError) Error() string {
	return fmt.Sprintf("unable to read package manifest %v", e.Path)
}

func (e *PackageManifestReadError) Unwrap() error {
	return e.cause
}

// PackageAtMonorepoRootError signals a structural assumption violation: a
// package's configuration or manifest resolves to the monorepo root itself,
// meaning the package has no parent directory below the root. Packages must
// not live at the workspace root.
type PackageAtMonorepoRootError struct {
	Path string
}

func (e *PackageAtMonorepoRootError) Error() string {
	return fmt.Sprintf("unexpected package in monorepo root: %v", e.Path)
}
