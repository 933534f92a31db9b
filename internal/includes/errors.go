package includes

import (
	"fmt"

	"github.com/typescript-tools/tsconfig-includes/internal/monopath"
)

// NotInMonorepoError signals that no monorepo root could be located above
// the given tsconfig file.
type NotInMonorepoError struct {
	Path monopath.AbsoluteSystemPath
}

func (e *NotInMonorepoError) Error() string {
	return fmt.Sprintf("project is not in a monorepo: %v", e.Path)
}
