package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gregorybchris/myxa/resolve"
	"github.com/gregorybchris/myxa/schema"
)

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Resolve dependency requirements and write deps",
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

		result, err := resolve.Resolve(pkg, idx)
		if err != nil {
			return err
		}

		pkg.Deps = map[string]schema.Dep{}
		for name, v := range result.Deps {
			pkg.Deps[name] = schema.Dep{Name: name, Version: v}
		}

		if err := saveDraft(draftFileName, pkg); err != nil {
			return err
		}
		logger.Info("locked dependencies", "count", len(pkg.Deps))
		for _, name := range pkg.SortedRequirementNames() {
			if dep, ok := pkg.Deps[name]; ok {
				fmt.Printf("%s = %s\n", name, dep.Version)
			}
		}
		return nil
	},
}
