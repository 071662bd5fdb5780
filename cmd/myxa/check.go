package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gregorybchris/myxa/diff"
	"github.com/gregorybchris/myxa/internal/render"
)

var checkVersionFlag string

func init() {
	checkCmd.Flags().StringVar(&checkVersionFlag, "version", "", "compare against a specific indexed version (default: latest)")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Diff the working draft against the indexed version; nonzero exit if breaking",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyVerbosity()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		draft, err := loadDraft(draftFileName)
		if err != nil {
			return err
		}
		idx, err := loadIndex(cfg.IndexPath)
		if err != nil {
			return err
		}

		old, err := comparisonBase(idx, draft.Info.Name, checkVersionFlag)
		if err != nil {
			return err
		}

		d := diff.Compute(old, draft)
		fmt.Print(render.Diff(d))
		if d.IsBreaking() {
			os.Exit(1)
		}
		return nil
	},
}
