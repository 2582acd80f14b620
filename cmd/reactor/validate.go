package main

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/reactor/pkg/rules"
)

var validatePrint bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: MsgValidateShort,
	Long: `Validate compiles every configured rule and reports the ones that
would be skipped at startup. The exit status is non-zero when any rule
is invalid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, records, err := loadConfig()
		if err != nil {
			return err
		}

		if validatePrint {
			out, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to render configuration: %w", err)
			}
			cmd.Print(string(out))
			return nil
		}

		type problem struct {
			index int
			name  string
			err   error
		}
		var problems []problem
		for i, record := range records {
			if _, err := rules.Compile(record); err != nil {
				name := record.Name
				if name == "" {
					name = "unnamed"
				}
				problems = append(problems, problem{index: i, name: name, err: err})
			}
		}

		if len(problems) == 0 {
			cmd.Printf(MsgRulesValid, len(records))
			return nil
		}

		cmd.Printf(MsgRulesInvalid, len(problems), len(records))
		for _, p := range problems {
			cmd.Printf(MsgRuleProblem, p.index, p.name, p.err)
		}
		return fmt.Errorf("%d invalid rules", len(problems))
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validatePrint, "print", false, "Print the effective configuration as TOML instead of validating")
}
