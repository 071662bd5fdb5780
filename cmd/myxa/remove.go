package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gregorybchris/myxa/myxaerr"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a dependency requirement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		applyVerbosity()

		pkg, err := loadDraft(draftFileName)
		if err != nil {
			return err
		}

		name := args[0]
		if !pkg.RemoveRequirement(name) {
			return &myxaerr.UnknownDependencyError{Name: name}
		}

		if err := saveDraft(draftFileName, pkg); err != nil {
			return err
		}
		logger.Info("removed requirement", "name", name)
		fmt.Printf("Removed %s from %s\n", name, pkg.Info.Name)
		return nil
	},
}
