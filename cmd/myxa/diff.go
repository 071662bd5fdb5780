package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gregorybchris/myxa/diff"
	"github.com/gregorybchris/myxa/internal/render"
)

var diffVersionFlag string

func init() {
	diffCmd.Flags().StringVar(&diffVersionFlag, "version", "", "compare against a specific indexed version (default: latest)")
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Diff the working draft against an indexed version, reporting every change",
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

		old, err := comparisonBase(idx, draft.Info.Name, diffVersionFlag)
		if err != nil {
			return err
		}

		d := diff.Compute(old, draft)
		fmt.Print(render.Diff(d))
		return nil
	},
}
