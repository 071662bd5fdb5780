package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gregorybchris/myxa/resolve"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run the update planner and replace locks that still qualify",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyVerbosity()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		pkg, err := loadDraft(draftFileName)
		if err != nil {
			return err
		}
		idx, err := loadIndex(cfg.IndexPath)
		if err != nil {
			return err
		}

		plans, err := resolve.PlanUpdates(pkg, idx)
		if err != nil {
			return err
		}
		if len(plans) == 0 {
			fmt.Println("No updates available")
			return nil
		}

		updated, err := resolve.Apply(pkg, plans)
		if err != nil {
			return err
		}
		if err := saveDraft(draftFileName, updated); err != nil {
			return err
		}

		logger.Info("applied updates", "count", len(plans))
		for _, plan := range plans {
			fmt.Printf("%s: %s -> %s\n", plan.Name, plan.From.Version, plan.To.Version)
		}
		return nil
	},
}
