package monopath

import "fmt"

// PathNormalizationError signals that a path expected to be a descendant of
// the monorepo root could not be rebased onto it. This points at a mismatch
// between canonicalization assumptions (unresolved symlinks, typically) and
// the actual filesystem layout.
type PathNormalizationError struct {
	Path  AbsoluteSystemPath
	Root  AbsoluteSystemPath
	cause error
}

// NewPathNormalizationError wraps the underlying filepath error with the
// path and root under consideration.
func NewPathNormalizationError(path AbsoluteSystemPath, root AbsoluteSystemPath, cause error) *PathNormalizationError {
	return &PathNormalizationError{Path: path, Root: root, cause: cause}
}

func (e *PathNormalizationError) Error() string {
	return fmt.Sprintf("cannot strip prefix %v from path %v", e.Root, e.Path)
}

func (e *PathNormalizationError) Unwrap() error {
	return e.cause
}
