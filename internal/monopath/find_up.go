package monopath

import (
	"os"
	"path/filepath"
)

type readDir func(string) ([]os.DirEntry, error)

var defaultReadDir readDir = os.ReadDir

func hasFile(name, dir string, readdir readDir) (bool, error) {
	entries, err := readdir(dir)

	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		if name == entry.Name() {
			return true, nil
		}
	}

	return false, nil
}

func findupFrom(name, dir string, readdir readDir) (string, error) {
	for {
		found, err := hasFile(name, dir, readdir)

		if err != nil {
			return "", err
		}

		if found {
			return filepath.Join(dir, name), nil
		}

		parent := filepath.Dir(dir)

		if parent == dir {
			return "", nil
		}

		dir = parent
	}
}

// FindupFrom recursively finds a file by walking up parents in the file
// tree starting from a specific directory. Returns the empty string when
// no directory up to and including the filesystem root contains the file.
func FindupFrom(name RelativeSystemPath, dir AbsoluteSystemPath) (AbsoluteSystemPath, error) {
	path, err := findupFrom(name.ToString(), dir.ToString(), defaultReadDir)
	return AbsoluteSystemPath(path), err
}
