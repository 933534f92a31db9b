// Package monopath teaches the Go type system about the three kinds of
// paths this tool traffics in:
// - AbsoluteSystemPath
// - AnchoredSystemPath
// - RelativeSystemPath
//
// Absolute paths are, "absolute, including volume root."
//
// Anchored paths are, "absolute, starting at a particular root." Here the
// anchor is always the monorepo root. They are stored *without* a preceding
// delimiter for compatibility with `io/fs`.
//
// Relative paths are arbitrary path segments relative to an unspecified
// directory, typically the monorepo root or a package directory.
//
// Having the type system track which of these a given string is replaces a
// pile of runtime bookkeeping with compile-time enforcement.
package monopath

// AnchoredSystemPathArray is a type used to enable transform operations on
// arrays of paths.
type AnchoredSystemPathArray []AnchoredSystemPath

// RelativeSystemPathArray is a type used to enable transform operations on
// arrays of paths.
type RelativeSystemPathArray []RelativeSystemPath

// ToStringArray enables ergonomic operations on arrays of AnchoredSystemPath.
func (source AnchoredSystemPathArray) ToStringArray() []string {
	output := make([]string, len(source))
	for index, path := range source {
		output[index] = path.ToString()
	}
	return output
}

// ToStringArray enables ergonomic operations on arrays of RelativeSystemPath.
func (source RelativeSystemPathArray) ToStringArray() []string {
	output := make([]string, len(source))
	for index, path := range source {
		output[index] = path.ToString()
	}
	return output
}

// The following functions import a path string and cast it to the
// appropriate type. They mark the places where a path crosses from the
// outside world (flags, child-process output, decoded JSON) into typed
// path handling without being checked.

// AbsoluteSystemPathFromUpstream takes a path string and casts it to an
// AbsoluteSystemPath without checking. If the input to this function is
// not an AbsoluteSystemPath it will result in downstream errors.
func AbsoluteSystemPathFromUpstream(path string) AbsoluteSystemPath {
	return AbsoluteSystemPath(path)
}

// AnchoredSystemPathFromUpstream takes a path string and casts it to an
// AnchoredSystemPath without checking. If the input to this function is
// not an AnchoredSystemPath it will result in downstream errors.
func AnchoredSystemPathFromUpstream(path string) AnchoredSystemPath {
	return AnchoredSystemPath(path)
}

// RelativeSystemPathFromUpstream takes a path string and casts it to a
// RelativeSystemPath without checking. If the input to this function is
// not a RelativeSystemPath it will result in downstream errors.
func RelativeSystemPathFromUpstream(path string) RelativeSystemPath {
	return RelativeSystemPath(path)
}
