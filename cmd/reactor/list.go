package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/reactor/pkg/hooks"
	"github.com/arthur-debert/reactor/pkg/rules"
	"github.com/arthur-debert/reactor/pkg/state"
	"github.com/arthur-debert/reactor/pkg/ui"
)

var listFormat string

func outputFormat() (ui.Format, error) {
	format, err := ui.ParseFormat(listFormat)
	if err != nil {
		return ui.FormatAuto, err
	}
	return format.Resolve(os.Stdout), nil
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: MsgRulesShort,
	Long: `Rules lists the effective rules after compilation, in the order they
would be registered. Invalid rules appear with their failure reason.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, records, err := loadConfig()
		if err != nil {
			return err
		}

		format, err := outputFormat()
		if err != nil {
			return err
		}

		if len(records) == 0 {
			cmd.Println(MsgNoRules)
			return nil
		}

		table := ui.Table{
			Headers: []string{"NAME", "KIND", "PATTERN", "CONDITION", "RESOLVE", "ACTIONS", "STATUS"},
		}
		for _, record := range records {
			rule, err := rules.Compile(record)
			if err != nil {
				name := record.Name
				if name == "" {
					name = "unnamed"
				}
				table.Rows = append(table.Rows, []string{
					name, record.PatternKind, record.Pattern, record.Condition,
					strconv.FormatBool(record.KeywordResolve),
					strconv.Itoa(len(record.Actions)),
					fmt.Sprintf("invalid: %v", err),
				})
				continue
			}
			table.Rows = append(table.Rows, []string{
				rule.Name, rule.Kind, rule.Pattern, rule.Condition,
				strconv.FormatBool(rule.KeywordResolve),
				strconv.Itoa(len(rule.Actions)),
				"ok",
			})
		}

		out, err := table.Render(format)
		if err != nil {
			return err
		}
		cmd.Print(out)
		return nil
	},
}

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: MsgHooksShort,
	Long:  `Hooks lists the dispatch targets action messages can name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		format, err := outputFormat()
		if err != nil {
			return err
		}

		hookRegistry := hooks.NewRegistry(hooks.Deps{
			Runner:    hooks.NewExecRunner(cfg.Runner.Dir),
			Returners: hooks.NewReturners(),
			Store:     state.New(),
		})

		table := ui.Table{Headers: []string{"HOOK", "DESCRIPTION"}}
		for _, name := range hookRegistry.List() {
			hook, err := hookRegistry.Get(name)
			if err != nil {
				continue
			}
			table.Rows = append(table.Rows, []string{hook.Name(), hook.Description()})
		}

		out, err := table.Render(format)
		if err != nil {
			return err
		}
		cmd.Print(out)
		return nil
	},
}

func init() {
	rulesCmd.Flags().StringVar(&listFormat, "format", "auto", "Output format (auto, term, text, json)")
	hooksCmd.Flags().StringVar(&listFormat, "format", "auto", "Output format (auto, term, text, json)")
}
