package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gregorybchris/myxa/index"
	"github.com/gregorybchris/myxa/version"
)

var addVersionFlag string

func init() {
	addCmd.Flags().StringVar(&addVersionFlag, "version", "", "minimum version (default: index's latest)")
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a dependency requirement",
	Args:  cobra.ExactArgs(1),
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

		name := args[0]
		if addVersionFlag != "" {
			v, err := version.Parse(addVersionFlag)
			if err != nil {
				return err
			}
			pkg.AddRequirement(name, v)
		} else {
			// Mirrors original_source/src/myxa/manager.py's Manager.add:
			// resolve against the index immediately rather than leaving
			// the minimum version unset (SPEC_FULL.md §12).
			req, err := index.NewDepReq(idx, name)
			if err != nil {
				return err
			}
			pkg.Requirements[name] = req
		}

		if err := saveDraft(draftFileName, pkg); err != nil {
			return err
		}
		logger.Info("added requirement", "name", name)
		fmt.Printf("Added %s to %s\n", name, pkg.Info.Name)
		return nil
	},
}
