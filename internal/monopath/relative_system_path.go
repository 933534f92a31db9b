package monopath

import "path/filepath"

// RelativeSystemPath is a relative path using system separators.
type RelativeSystemPath string

// ToString returns a string representation of this path.
// Used for interfacing with APIs that require a string.
func (p RelativeSystemPath) ToString() string {
	return string(p)
}

// Dir implements filepath.Dir() for a RelativeSystemPath.
func (p RelativeSystemPath) Dir() RelativeSystemPath {
	return RelativeSystemPath(filepath.Dir(p.ToString()))
}
