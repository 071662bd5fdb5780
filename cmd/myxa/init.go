package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gregorybchris/myxa/schema"
)

var initCmd = &cobra.Command{
	Use:   "init <name> <description>",
	Short: "Write a fresh working package at version 1.0",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		applyVerbosity()

		pkg := schema.New(args[0], args[1])
		if err := saveDraft(draftFileName, pkg); err != nil {
			return err
		}

		logger.Info("initialized package", "name", pkg.Info.Name, "version", pkg.Info.Version)
		fmt.Printf("Initialized %s %s\n", pkg.Info.Name, pkg.Info.Version)
		return nil
	},
}
