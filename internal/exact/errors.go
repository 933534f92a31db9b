package exact

import (
	"fmt"

	"github.com/typescript-tools/tsconfig-includes/internal/monopath"
)

// ProcessSpawnError signals that the TypeScript compiler child process
// could not be started at all: an environment failure (missing binary,
// exhausted resources), not a compilation failure.
type ProcessSpawnError struct {
	Command string
	cause   error
}

func (e *ProcessSpawnError) Error() string {
	return fmt.Sprintf("unable to spawn child process %v", e.Command)
}

func (e *ProcessSpawnError) Unwrap() error {
	return e.cause
}

// CompilerInvocationError signals that the compiler exited with a non-zero
// status. Stderr carries the compiler's own diagnostics; stdout is
// discarded rather than interpreted partially.
type CompilerInvocationError struct {
	Command string
	Stderr  []byte
}

func (e *CompilerInvocationError) Error() string {
	return fmt.Sprintf("tsc exited with non-zero status code for command %v: %s", e.Command, e.Stderr)
}

// OutputDecodeError signals that the compiler emitted stdout that is not
// valid UTF-8.
type OutputDecodeError struct {
	Command string
}

func (e *OutputDecodeError) Error() string {
	return fmt.Sprintf("command output included invalid UTF-8: %v", e.Command)
}

// CanonicalizeError signals that the monorepo root could not be resolved
// to a canonical absolute path.
type CanonicalizeError struct {
	Path  monopath.AbsoluteSystemPath
	cause error
}

func (e *CanonicalizeError) Error() string {
	return fmt.Sprintf("unable to canonicalize path %v", e.Path)
}

func (e *CanonicalizeError) Unwrap() error {
	return e.cause
}
