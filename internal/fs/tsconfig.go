package fs

import (
	"sort"
	"strings"

	"muzzammil.xyz/jsonc"

	"github.com/typescript-tools/tsconfig-includes/internal/monopath"
)

// CompilerOptions models the two tsconfig compiler flags that influence
// which files participate in compilation. Absent flags default to false.
type CompilerOptions struct {
	AllowJS           bool `json:"allowJs"`
	ResolveJSONModule bool `json:"resolveJsonModule"`
}

// TsConfig is the subset of a TypeScript project configuration consulted by
// the enumeration engine.
type TsConfig struct {
	CompilerOptions CompilerOptions `json:"compilerOptions"`
	// Include is the ordered list of glob patterns describing which files
	// belong to this compilation unit. A missing include field decodes as an
	// empty list, which matches nothing.
	Include []string `json:"include"`
}

// ReadTsConfig decodes the tsconfig.json file at the given path. tsconfig
// files may contain comments, so this is a jsonc decode.
func ReadTsConfig(path monopath.AbsoluteSystemPath) (*TsConfig, error) {
	data, err := path.ReadFile()
	if err != nil {
		return nil, &ConfigDecodeError{Path: path, cause: err}
	}
	config := &TsConfig{}
	if err := jsonc.Unmarshal(data, config); err != nil {
		return nil, &ConfigDecodeError{Path: path, cause: err}
	}
	return config, nil
}

// baseExtensions are the suffixes the TypeScript compiler always considers:
//
// > If a glob pattern doesn't include a file extension, then only files with
// > supported extensions are included (e.g. .ts, .tsx, and .d.ts by default,
// > with .js and .jsx if allowJs is set to true).
var baseExtensions = []string{".ts", ".tsx", ".d.ts"}

var allowJSExtensions = []string{".js", ".jsx"}

// WhitelistedExtensions returns the sorted set of file suffixes considered
// valid compiler inputs for this configuration. These are suffixes, not
// final extensions: ".d.ts" spans two dots and cannot be expressed as a
// single filepath.Ext result.
//
// LIMITATION: a suffix extracted from one include glob is applied to every
// glob, which over-approximates the compiler's per-pattern behavior.
func (c *TsConfig) WhitelistedExtensions() []string {
	whitelist := make(map[string]struct{})
	for _, extension := range baseExtensions {
		whitelist[extension] = struct{}{}
	}
	if c.CompilerOptions.AllowJS {
		for _, extension := range allowJSExtensions {
			whitelist[extension] = struct{}{}
		}
	}

	// Add the suffix from any glob that specifies one, e.g. the
	// ".worker.js" in "src/**/*.worker.js". A pattern ending in a bare
	// wildcard contributes nothing.
	for _, pattern := range c.Include {
		if suffix, ok := globExtension(pattern); ok {
			whitelist[suffix] = struct{}{}
		}
	}

	extensions := make([]string, 0, len(whitelist))
	for extension := range whitelist {
		// A glob that looks like it whitelists JSON is not enough: JSON
		// imports are still gated by the resolveJsonModule compiler option.
		if strings.HasSuffix(extension, ".json") && !c.CompilerOptions.ResolveJSONModule {
			continue
		}
		extensions = append(extensions, extension)
	}
	sort.Strings(extensions)
	return extensions
}

// globExtension extracts the literal suffix following the last wildcard of
// a glob pattern. Patterns without a wildcard, or ending in one, have no
// extractable suffix.
func globExtension(pattern string) (string, bool) {
	index := strings.LastIndexByte(pattern, '*')
	if index < 0 || index == len(pattern)-1 {
		return "", false
	}
	return pattern[index+1:], true
}

// HasWhitelistedExtension reports whether the full path ends with one of the
// whitelisted suffixes. The match is against the whole path string rather
// than the filename's extension so that compound suffixes like ".d.ts" are
// detected correctly.
func HasWhitelistedExtension(path string, extensions []string) bool {
	for _, extension := range extensions {
		if strings.HasSuffix(path, extension) {
			return true
		}
	}
	return false
}
