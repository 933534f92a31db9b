// Package exact enumerates a package's compiler inputs by asking the
// TypeScript compiler itself, via its listFilesOnly mode.
//
// The compiler is the authoritative source for file inclusion because it
// resolves import statements, type inclusions, and /// <reference
// directives, none of which an independent reimplementation can fully
// replicate. From the tsconfig exclude documentation:
//
// > Important: `exclude` *only* changes which files are included as a
// > result of the `include` setting. A file specified by exclude can still
// > become part of your codebase due to an import statement in your code,
// > a types inclusion, a `/// <reference` directive, or being specified in
// > the `files` list.
//
// This strategy trades process-spawn latency for accuracy.
package exact

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/yookoala/realpath"

	"github.com/typescript-tools/tsconfig-includes/internal/fs"
	"github.com/typescript-tools/tsconfig-includes/internal/monopath"
)

// nodeModulesDirectory is the dependency-vendoring directory name. The
// compiler reports type declarations resolved out of it; those are not
// monorepo source files.
const nodeModulesDirectory = "node_modules"

// Compiler is the capability to list the files that belong to a TypeScript
// project. The production implementation spawns tsc; tests substitute a
// fake to avoid spawning real processes.
type Compiler interface {
	// ListFiles returns the raw stdout of a file-listing-only compiler
	// invocation scoped to the given project directory: one absolute path
	// per line.
	ListFiles(projectDirectory monopath.AbsoluteSystemPath) ([]byte, error)
}

// TSC invokes the real TypeScript compiler found on $PATH.
type TSC struct{}

var _ Compiler = TSC{}

// ListFiles runs `tsc --listFilesOnly --project <dir>` and returns its
// stdout.
func (TSC) ListFiles(projectDirectory monopath.AbsoluteSystemPath) ([]byte, error) {
	command := fmt.Sprintf("tsc --listFilesOnly --project %v", projectDirectory)
	cmd := exec.Command("tsc", "--listFilesOnly", "--project", projectDirectory.ToString())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		exitErr := &exec.ExitError{}
		if errors.As(err, &exitErr) {
			return nil, &CompilerInvocationError{Command: command, Stderr: stderr.Bytes()}
		}
		return nil, &ProcessSpawnError{Command: command, cause: err}
	}
	return stdout.Bytes(), nil
}

// Options carries the exact-mode policy knobs.
type Options struct {
	// Compiler lists a project's files. Defaults to TSC.
	Compiler Compiler
	// KeepNodeModules retains compiler-reported paths under node_modules.
	// The default drops them: whether the compiler reports such paths at
	// all varies by environment, so this is policy rather than hard-coded
	// behavior.
	KeepNodeModules bool
}

func (o Options) compiler() Compiler {
	if o.Compiler != nil {
		return o.Compiler
	}
	return TSC{}
}

// Enumerate asks the compiler for the file list of the given tsconfig's
// project and returns the monorepo source files among them as paths
// relative to the monorepo root.
func Enumerate(logger hclog.Logger, monorepoRoot monopath.AbsoluteSystemPath, tsconfigFile monopath.AbsoluteSystemPath, opts Options) ([]monopath.AnchoredSystemPath, error) {
	// Prefix comparisons below must operate on canonical paths: a
	// symlinked root would otherwise produce false negatives against the
	// compiler's resolved output.
	canonicalRoot, err := realpath.Realpath(monorepoRoot.ToString())
	if err != nil {
		return nil, &CanonicalizeError{Path: monorepoRoot, cause: err}
	}
	root := monopath.AbsoluteSystemPathFromUpstream(canonicalRoot)

	packageDirectory := tsconfigFile.Dir()
	if packageDirectory == monorepoRoot || packageDirectory == root {
		return nil, &fs.PackageAtMonorepoRootError{Path: tsconfigFile.ToString()}
	}

	stdout, err := opts.compiler().ListFiles(packageDirectory)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(stdout) {
		return nil, &OutputDecodeError{Command: fmt.Sprintf("tsc --listFilesOnly --project %v", packageDirectory)}
	}

	lines := strings.Split(string(stdout), "\n")
	includedFiles := make([]monopath.AnchoredSystemPath, 0, len(lines))
	for _, line := range lines {
		// Drop the empty newline at the end of stdout.
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sourceFile := monopath.AbsoluteSystemPathFromUpstream(line)
		if !sourceFile.HasPrefix(root) {
			logger.Trace("dropping file outside the monorepo", "file", sourceFile)
			continue
		}
		if !opts.KeepNodeModules && isChildOfNodeModules(sourceFile) {
			continue
		}
		includedFile, err := sourceFile.RelativeTo(root)
		if err != nil {
			return nil, monopath.NewPathNormalizationError(sourceFile, root, err)
		}
		includedFiles = append(includedFiles, includedFile)
	}

	return includedFiles, nil
}

func isChildOfNodeModules(path monopath.AbsoluteSystemPath) bool {
	for _, segment := range strings.Split(path.ToString(), string(filepath.Separator)) {
		if segment == nodeModulesDirectory {
			return true
		}
	}
	return false
}
