// Package globby expands include glob patterns rooted at a package
// directory into the set of regular files they match.
package globby

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	iofs "io/fs"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

var _aferoOsFs = afero.NewOsFs()
var _aferoIOFS = afero.NewIOFS(_aferoOsFs)

// GlobFiles returns an array of files that match the specified set of glob
// patterns, evaluated relative to basePath. Directories are never returned,
// and basePath itself participates in matching (depth 0 is permitted).
func GlobFiles(basePath string, includePatterns []string) ([]string, error) {
	return globFilesFs(_aferoIOFS, basePath, includePatterns)
}

// checkRelativePath ensures that the requested file path is a child of `from`.
func checkRelativePath(from string, to string) error {
	relativePath, err := filepath.Rel(from, to)

	if err != nil {
		return err
	}

	if strings.HasPrefix(relativePath, "..") {
		return fmt.Errorf("the path you are attempting to specify (%s) is outside of the root", to)
	}

	return nil
}

// globFilesFs searches the specified file system to enumerate all files to
// include.
func globFilesFs(fs afero.IOFS, basePath string, includePatterns []string) ([]string, error) {
	// An empty include list matches nothing. This also covers tsconfig
	// files with no include field at all.
	if len(includePatterns) == 0 {
		return nil, nil
	}

	var processedIncludes []string
	result := make(map[string]struct{})

	for _, includePattern := range includePatterns {
		includePath := filepath.Join(basePath, includePattern)
		err := checkRelativePath(basePath, includePath)

		if err != nil {
			return nil, err
		}

		processedIncludes = append(processedIncludes, includePath)
	}

	// Do not use alternation if unnecessary.
	includePattern := processedIncludes[0]
	if len(processedIncludes) > 1 {
		// We use alternation from the very root of the path. This avoids
		// fs.Stat of the basePath.
		includePattern = "{" + strings.Join(processedIncludes, ",") + "}"
	}

	// GlobWalk expects that everything uses Unix path conventions.
	includePattern = filepath.ToSlash(includePattern)

	err := doublestar.GlobWalk(fs, includePattern, func(path string, dirEntry iofs.DirEntry) error {
		// Unix root paths do not prepend the leading slash.
		if basePath == "/" && !strings.HasPrefix(path, "/") {
			path = filepath.Join(basePath, path)
		}

		if dirEntry.IsDir() {
			return nil
		}

		// Alternation may visit the same file once per matching branch.
		result[filepath.FromSlash(path)] = struct{}{}
		return nil
	})

	// GlobWalk threw an error.
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(result))
	for file := range result {
		files = append(files, file)
	}
	sort.Strings(files)
	return files, nil
}
