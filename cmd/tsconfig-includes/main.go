// Command tsconfig-includes enumerates the source files used by the
// TypeScript compiler when compiling the given projects and their in-repo
// dependencies, printed as JSON grouped by scoped package name.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/typescript-tools/tsconfig-includes/internal/includes"
	"github.com/typescript-tools/tsconfig-includes/internal/monopath"
	"github.com/typescript-tools/tsconfig-includes/internal/ui"
)

// envLogLevel is the environment variable controlling log verbosity.
const envLogLevel = "TSCONFIG_INCLUDES_LOG_LEVEL"

type opts struct {
	enumerationMethod string
	monorepoRoot      string
	keepNodeModules   bool
}

func newRootCmd() *cobra.Command {
	var flags opts
	cmd := &cobra.Command{
		Use:   "tsconfig-includes [flags] <tsconfig>...",
		Short: "Enumerate source files used to compile TypeScript projects in a monorepo",
		Long: `Enumerate the source code files used by the TypeScript compiler when
compiling the given projects and every in-repo package they transitively
depend on. Output is a JSON object mapping scoped package name to the
sorted list of file paths relative to the monorepo root.

The estimate method expands each tsconfig's include globs and is fast but
imprecise; the exact method invokes tsc --listFilesOnly and is
authoritative but slow. tsconfig paths are interpreted relative to the
monorepo root.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, args)
		},
	}
	cmd.Flags().StringVar(&flags.enumerationMethod, "enumeration-method", "estimate", "which enumeration method to use (estimate|exact)")
	cmd.Flags().StringVar(&flags.monorepoRoot, "monorepo-root", ".", "path to the monorepo root directory")
	cmd.Flags().BoolVar(&flags.keepNodeModules, "keep-node-modules", false, "retain exact-mode paths under node_modules")
	return cmd
}

func run(flags opts, args []string) error {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "tsconfig-includes",
		Level:  hclog.LevelFromString(fallback(os.Getenv(envLogLevel), "warn")),
		Output: os.Stderr,
	})

	calculation, err := includes.ParseCalculation(flags.enumerationMethod)
	if err != nil {
		return err
	}

	absoluteRoot, err := filepath.Abs(flags.monorepoRoot)
	if err != nil {
		return fmt.Errorf("unable to resolve monorepo root %v: %w", flags.monorepoRoot, err)
	}
	monorepoRoot := monopath.AbsoluteSystemPathFromUpstream(absoluteRoot)

	tsconfigFiles := make([]monopath.RelativeSystemPath, len(args))
	for index, arg := range args {
		tsconfigFiles[index] = monopath.RelativeSystemPathFromUpstream(arg)
	}

	includedFiles, err := includes.ByPackageNameWithOptions(logger, monorepoRoot, tsconfigFiles, calculation, includes.Options{
		KeepNodeModules: flags.keepNodeModules,
	})
	if err != nil {
		return err
	}

	output := make(map[string][]string, len(includedFiles))
	for packageName, files := range includedFiles {
		output[packageName] = monopath.AnchoredSystemPathArray(files).ToStringArray()
	}
	serialized, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to serialize result: %w", err)
	}
	fmt.Println(string(serialized))
	return nil
}

func fallback(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		ui.Error(os.Stderr, err)
		os.Exit(1)
	}
}
