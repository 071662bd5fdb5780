// Package main is myxa's CLI entry point: cobra wiring around the pure
// core packages (version, schema, diff, index, resolve, publish).
// Grounded on invowk-invowk's cmd/invowk layout — a rootCmd in root.go
// plus one file per command group — with persistent --index/--verbose
// flags read back by internal/config.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	indexFlag   string
	verboseFlag bool

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "myxa"})

	rootCmd = &cobra.Command{
		Use:   "myxa",
		Short: "A package manager with structural compatibility checking",
		Long: `myxa records the full public interface of a package and diffs it
structurally between versions, classifying each change as breaking or
non-breaking. That classification drives publish-time version-bump
enforcement and a resolver that can cross major-version boundaries
when doing so provably breaks nothing a dependent actually uses.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&indexFlag, "index", "", "index file path (default: $MYXA_INDEX or myxa-index.json)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(indexCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyVerbosity raises the logger to debug level when -v was passed
// (SPEC_FULL.md §10.2).
func applyVerbosity() {
	if verboseFlag {
		logger.SetLevel(log.DebugLevel)
	}
}
