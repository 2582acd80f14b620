package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/reactor/internal/version"
	"github.com/arthur-debert/reactor/pkg/config"
	"github.com/arthur-debert/reactor/pkg/logging"
	"github.com/arthur-debert/reactor/pkg/rules"
	"github.com/arthur-debert/reactor/pkg/types"
)

var (
	verbosity  int
	configPath string

	rootCmd = &cobra.Command{
		Use:   "reactor",
		Short: MsgRootShort,
		Long: `reactor subscribes to a stream of events, matches each event against
configured pattern rules, optionally evaluates a guarding condition, and
dispatches the matching rules' action messages to named hooks.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default is $XDG_CONFIG_HOME/reactor/reactor.toml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(hooksCmd)
	rootCmd.AddCommand(genConfigCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: MsgVersionShort,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("reactor version %s\n", version.Version)
		cmd.Printf("  commit: %s\n", version.Commit)
		cmd.Printf("  built:  %s\n", version.Date)
	},
}

// loadConfig loads the effective configuration and the rule records it
// references: inline rules first, then the standalone rules file.
func loadConfig() (*config.Config, []types.RuleConfig, error) {
	cfg, err := config.Load(configPath, nil)
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	records := append([]types.RuleConfig{}, cfg.Rules...)
	if cfg.RulesFile != "" {
		fromFile, err := rules.LoadFile(cfg.RulesFile)
		if err != nil {
			return nil, nil, fmt.Errorf(MsgErrLoadRules, err)
		}
		records = append(records, fromFile...)
	}

	return cfg, records, nil
}
