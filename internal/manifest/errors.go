package manifest

import (
	"fmt"

	"github.com/typescript-tools/tsconfig-includes/internal/monopath"
)

// UnknownPackageError signals that a package name is absent from the
// resolved manifest graph. It points at stale or inconsistent manifests:
// a tsconfig was requested for a package the workspace does not register.
type UnknownPackageError struct {
	Name string
}

func (e *UnknownPackageError) Error() string {
	return fmt.Sprintf("package %v does not belong to a package in the monorepo", e.Name)
}

// WorkspaceDefinitionError signals that a monorepo root carries neither a
// lerna.json nor a package.json with a workspaces field, so the set of
// workspace packages cannot be determined.
type WorkspaceDefinitionError struct {
	Root monopath.AbsoluteSystemPath
}

func (e *WorkspaceDefinitionError) Error() string {
	return fmt.Sprintf("no workspace definition found in %v", e.Root)
}
