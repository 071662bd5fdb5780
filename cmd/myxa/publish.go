package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gregorybchris/myxa/publish"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Run the publish gate against the working draft",
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

		if err := publish.Publish(pkg, idx); err != nil {
			return err
		}
		if err := saveIndex(cfg.IndexPath, idx); err != nil {
			return err
		}

		logger.Info("published", "name", pkg.Info.Name, "version", pkg.Info.Version)
		fmt.Printf("Published %s %s\n", pkg.Info.Name, pkg.Info.Version)
		return nil
	},
}
