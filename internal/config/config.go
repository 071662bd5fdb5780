// Package config resolves myxa's one piece of environment-driven
// state: where the index file lives. Grounded on invowk-invowk's
// internal/config package — a viper.New() instance layering defaults,
// environment, and flags, rather than a package-level global — scaled
// down to the single setting spec.md §6's Open Question (§9) scopes to
// the CLI.
package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultIndexPath = "myxa-index.json"
	indexPathKey     = "index_path"
	indexPathEnv     = "MYXA_INDEX"
)

// Config is the resolved set of CLI-level settings.
type Config struct {
	IndexPath string
	Verbose   bool
}

// Load builds a Config by layering, in increasing priority: the
// built-in default, the MYXA_INDEX environment variable, and the
// root command's --index/--verbose flags.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	v.SetDefault(indexPathKey, defaultIndexPath)
	if err := v.BindEnv(indexPathKey, indexPathEnv); err != nil {
		return nil, err
	}
	if err := v.BindPFlag(indexPathKey, cmd.Flags().Lookup("index")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("verbose", cmd.Flags().Lookup("verbose")); err != nil {
		return nil, err
	}

	return &Config{
		IndexPath: v.GetString(indexPathKey),
		Verbose:   v.GetBool("verbose"),
	}, nil
}
