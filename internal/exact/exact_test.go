package exact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yookoala/realpath"

	"github.com/typescript-tools/tsconfig-includes/internal/fs"
	"github.com/typescript-tools/tsconfig-includes/internal/monopath"
)

// fakeCompiler substitutes for tsc: it returns canned stdout and records
// how many times it was invoked.
type fakeCompiler struct {
	stdout      []byte
	err         error
	invocations int
}

func (c *fakeCompiler) ListFiles(monopath.AbsoluteSystemPath) ([]byte, error) {
	c.invocations++
	if c.err != nil {
		return nil, c.err
	}
	return c.stdout, nil
}

func testMonorepo(t *testing.T) (root monopath.AbsoluteSystemPath, tsconfigFile monopath.AbsoluteSystemPath) {
	t.Helper()
	canonical, err := realpath.Realpath(t.TempDir())
	require.NoError(t, err)
	packageDirectory := filepath.Join(canonical, "packages", "foo")
	require.NoError(t, os.MkdirAll(packageDirectory, 0o755))
	return monopath.AbsoluteSystemPathFromUpstream(canonical),
		monopath.AbsoluteSystemPathFromUpstream(filepath.Join(packageDirectory, fs.TsconfigFilename))
}

func anchoredPaths(paths []monopath.AnchoredSystemPath) []string {
	strs := make([]string, 0, len(paths))
	for _, path := range paths {
		strs = append(strs, filepath.ToSlash(path.ToString()))
	}
	return strs
}

func TestEnumerateFiltersCompilerOutput(t *testing.T) {
	root, tsconfigFile := testMonorepo(t)

	compiler := &fakeCompiler{
		stdout: []byte(
			root.UntypedJoin("packages", "foo", "src", "index.ts").ToString() + "\n" +
				root.UntypedJoin("packages", "foo", "src", "lib.ts").ToString() + "\n" +
				root.UntypedJoin("node_modules", "typescript", "lib", "lib.es5.d.ts").ToString() + "\n" +
				"/usr/lib/node/typescript/lib/lib.dom.d.ts\n" +
				"\n"),
	}

	includedFiles, err := Enumerate(hclog.NewNullLogger(), root, tsconfigFile, Options{Compiler: compiler})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"packages/foo/src/index.ts",
		"packages/foo/src/lib.ts",
	}, anchoredPaths(includedFiles))
	assert.Equal(t, 1, compiler.invocations)
}

func TestEnumerateKeepNodeModules(t *testing.T) {
	root, tsconfigFile := testMonorepo(t)

	compiler := &fakeCompiler{
		stdout: []byte(
			root.UntypedJoin("packages", "foo", "src", "index.ts").ToString() + "\n" +
				root.UntypedJoin("node_modules", "typescript", "lib", "lib.es5.d.ts").ToString() + "\n"),
	}

	includedFiles, err := Enumerate(hclog.NewNullLogger(), root, tsconfigFile, Options{
		Compiler:        compiler,
		KeepNodeModules: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"packages/foo/src/index.ts",
		"node_modules/typescript/lib/lib.es5.d.ts",
	}, anchoredPaths(includedFiles))
}

func TestEnumerateInvalidUTF8(t *testing.T) {
	root, tsconfigFile := testMonorepo(t)
	compiler := &fakeCompiler{stdout: []byte{0xff, 0xfe, 0xfd}}

	_, err := Enumerate(hclog.NewNullLogger(), root, tsconfigFile, Options{Compiler: compiler})
	decodeErr := &OutputDecodeError{}
	require.ErrorAs(t, err, &decodeErr)
}

func TestEnumeratePropagatesCompilerFailure(t *testing.T) {
	root, tsconfigFile := testMonorepo(t)
	compiler := &fakeCompiler{err: &CompilerInvocationError{
		Command: "tsc --listFilesOnly --project packages/foo",
		Stderr:  []byte("error TS5083: Cannot read file"),
	}}

	_, err := Enumerate(hclog.NewNullLogger(), root, tsconfigFile, Options{Compiler: compiler})
	invocationErr := &CompilerInvocationError{}
	require.ErrorAs(t, err, &invocationErr)
	assert.Contains(t, invocationErr.Error(), "TS5083")
}

func TestEnumerateRejectsTsconfigAtMonorepoRoot(t *testing.T) {
	root, _ := testMonorepo(t)
	tsconfigFile := root.UntypedJoin(fs.TsconfigFilename)

	_, err := Enumerate(hclog.NewNullLogger(), root, tsconfigFile, Options{Compiler: &fakeCompiler{}})
	rootErr := &fs.PackageAtMonorepoRootError{}
	require.ErrorAs(t, err, &rootErr)
}
