package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typescript-tools/tsconfig-includes/internal/monopath"
)

func TestWhitelistedExtensions(t *testing.T) {
	tests := []struct {
		name     string
		tsconfig TsConfig
		want     []string
	}{
		{
			name:     "defaults",
			tsconfig: TsConfig{Include: []string{"src/**/*"}},
			want:     []string{".d.ts", ".ts", ".tsx"},
		},
		{
			name: "allowJs adds js extensions",
			tsconfig: TsConfig{
				CompilerOptions: CompilerOptions{AllowJS: true},
				Include:         []string{"src/**/*"},
			},
			want: []string{".d.ts", ".js", ".jsx", ".ts", ".tsx"},
		},
		{
			name:     "glob with compound suffix contributes it",
			tsconfig: TsConfig{Include: []string{"src/**/*.worker.js"}},
			want:     []string{".d.ts", ".ts", ".tsx", ".worker.js"},
		},
		{
			name:     "glob ending in bare wildcard contributes nothing",
			tsconfig: TsConfig{Include: []string{"src/**/*", "lib/*"}},
			want:     []string{".d.ts", ".ts", ".tsx"},
		},
		{
			name:     "pattern without wildcard contributes nothing",
			tsconfig: TsConfig{Include: []string{"src/index.ts"}},
			want:     []string{".d.ts", ".ts", ".tsx"},
		},
		{
			name:     "json glob gated by resolveJsonModule",
			tsconfig: TsConfig{Include: []string{"src/**/*.json"}},
			want:     []string{".d.ts", ".ts", ".tsx"},
		},
		{
			name: "json glob with resolveJsonModule enabled",
			tsconfig: TsConfig{
				CompilerOptions: CompilerOptions{ResolveJSONModule: true},
				Include:         []string{"src/**/*.json"},
			},
			want: []string{".d.ts", ".json", ".ts", ".tsx"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tsconfig.WhitelistedExtensions())
		})
	}
}

func TestHasWhitelistedExtension(t *testing.T) {
	extensions := []string{".ts", ".d.ts"}
	assert.True(t, HasWhitelistedExtension("packages/foo/src/index.ts", extensions))
	assert.True(t, HasWhitelistedExtension("packages/foo/src/types.d.ts", extensions))
	assert.False(t, HasWhitelistedExtension("packages/foo/src/legacy.js", extensions))
	assert.False(t, HasWhitelistedExtension("packages/foo/src/data.json", extensions))
}

func TestReadTsConfig(t *testing.T) {
	dir := t.TempDir()
	tsconfigPath := filepath.Join(dir, TsconfigFilename)
	contents := `{
  // tsconfig files may contain comments
  "compilerOptions": {
    "allowJs": true
  },
  "include": ["src/**/*"]
}`
	require.NoError(t, os.WriteFile(tsconfigPath, []byte(contents), 0o644))

	tsconfig, err := ReadTsConfig(monopath.AbsoluteSystemPathFromUpstream(tsconfigPath))
	require.NoError(t, err)
	assert.True(t, tsconfig.CompilerOptions.AllowJS)
	assert.False(t, tsconfig.CompilerOptions.ResolveJSONModule)
	assert.Equal(t, []string{"src/**/*"}, tsconfig.Include)
}

func TestReadTsConfigMissingIncludeDefaultsToEmpty(t *testing.T) {
	dir := t.TempDir()
	tsconfigPath := filepath.Join(dir, TsconfigFilename)
	require.NoError(t, os.WriteFile(tsconfigPath, []byte(`{"compilerOptions": {}}`), 0o644))

	tsconfig, err := ReadTsConfig(monopath.AbsoluteSystemPathFromUpstream(tsconfigPath))
	require.NoError(t, err)
	assert.Empty(t, tsconfig.Include)
}

func TestReadTsConfigMissingFile(t *testing.T) {
	dir := t.TempDir()
	tsconfigPath := filepath.Join(dir, TsconfigFilename)

	_, err := ReadTsConfig(monopath.AbsoluteSystemPathFromUpstream(tsconfigPath))
	require.Error(t, err)
	decodeErr := &ConfigDecodeError{}
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, tsconfigPath, decodeErr.Path.ToString())
}

func TestReadTsConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	tsconfigPath := filepath.Join(dir, TsconfigFilename)
	require.NoError(t, os.WriteFile(tsconfigPath, []byte(`{"include": "not-an-array"}`), 0o644))

	_, err := ReadTsConfig(monopath.AbsoluteSystemPathFromUpstream(tsconfigPath))
	decodeErr := &ConfigDecodeError{}
	require.ErrorAs(t, err, &decodeErr)
}
