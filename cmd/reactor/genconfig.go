package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/reactor/pkg/config"
	"github.com/arthur-debert/reactor/pkg/paths"
)

var (
	genConfigWrite bool
	genConfigForce bool
)

var genConfigCmd = &cobra.Command{
	Use:   "genconfig",
	Short: MsgGenConfigShort,
	Long: `Genconfig prints a commented starter configuration. With --write it is
saved to the default config location instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content := config.StarterConfig()

		if !genConfigWrite {
			cmd.Print(string(content))
			return nil
		}

		p, err := paths.New()
		if err != nil {
			return fmt.Errorf(MsgErrStart, err)
		}
		target := p.ConfigFilePath()

		if _, err := os.Stat(target); err == nil && !genConfigForce {
			cmd.Printf(MsgConfigExists, target)
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := os.WriteFile(target, content, 0o644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		cmd.Printf(MsgConfigWritten, target)
		return nil
	},
}

func init() {
	genConfigCmd.Flags().BoolVar(&genConfigWrite, "write", false, "Write to the default config location instead of stdout")
	genConfigCmd.Flags().BoolVar(&genConfigForce, "force", false, "Overwrite an existing config file")
}
