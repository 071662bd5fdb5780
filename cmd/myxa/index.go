package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	indexPackageFlag    string
	indexNoVersionsFlag bool
)

func init() {
	indexCmd.Flags().StringVar(&indexPackageFlag, "package", "", "restrict the listing to one package name")
	indexCmd.Flags().BoolVar(&indexNoVersionsFlag, "no-versions", false, "list package names only, without versions")
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "List index contents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyVerbosity()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		idx, err := loadIndex(cfg.IndexPath)
		if err != nil {
			return err
		}

		listing := idx.List()
		names := idx.Names()
		for _, name := range names {
			if indexPackageFlag != "" && name != indexPackageFlag {
				continue
			}
			if indexNoVersionsFlag {
				fmt.Println(name)
				continue
			}
			versions := listing[name]
			fmt.Printf("%s:\n", name)
			for _, v := range versions {
				fmt.Printf("  %s\n", v)
			}
		}
		return nil
	},
}
