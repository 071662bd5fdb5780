package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gregorybchris/myxa/internal/render"
)

var infoVersionFlag string

func init() {
	infoCmd.Flags().StringVar(&infoVersionFlag, "version", "", "render a published version instead of the working draft")
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Render the package interface tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyVerbosity()

		draft, err := loadDraft(draftFileName)
		if err != nil {
			return err
		}
		if infoVersionFlag == "" {
			fmt.Print(render.Tree(draft))
			return nil
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		idx, err := loadIndex(cfg.IndexPath)
		if err != nil {
			return err
		}
		pkg, err := comparisonBase(idx, draft.Info.Name, infoVersionFlag)
		if err != nil {
			return err
		}
		fmt.Print(render.Tree(pkg))
		return nil
	},
}
