package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/reactor/pkg/config"
	"github.com/arthur-debert/reactor/pkg/dispatch"
	"github.com/arthur-debert/reactor/pkg/engine"
	"github.com/arthur-debert/reactor/pkg/hooks"
	"github.com/arthur-debert/reactor/pkg/logging"
	"github.com/arthur-debert/reactor/pkg/resolver"
	"github.com/arthur-debert/reactor/pkg/source"
	"github.com/arthur-debert/reactor/pkg/state"
	"github.com/arthur-debert/reactor/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: MsgRunShort,
	Long: `Run registers the configured rules and dispatches events until the
process is interrupted. Rules that fail to compile are skipped with a
diagnostic; the remaining rules run. In-flight rule evaluations finish
before shutdown completes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, records, err := loadConfig()
		if err != nil {
			return err
		}
		return runEngine(cmd, records, cfg)
	},
}

func runEngine(cmd *cobra.Command, records []types.RuleConfig, cfg *config.Config) error {
	logger := logging.GetLogger("cmd.run")

	store := state.New()
	hookRegistry := hooks.NewRegistry(hooks.Deps{
		Runner:    hooks.NewExecRunner(cfg.Runner.Dir),
		Returners: hooks.NewReturners(),
		Store:     store,
	})
	sink := dispatch.NewHookSink(hookRegistry, cfg.DispatchTimeout)

	eng := engine.New(resolver.NewExprResolver(), sink, store)
	registered := eng.RegisterRules(records)
	fmt.Fprintf(cmd.OutOrStdout(), MsgStartupRules, registered, len(records))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	events := make(chan types.Event, 64)

	if cfg.Spool.Enabled {
		spool, err := source.NewSpoolSource(cfg.Spool.Dir)
		if err != nil {
			return fmt.Errorf(MsgErrStart, err)
		}
		go func() {
			if err := spool.Start(ctx, events); err != nil {
				logger.Error().Err(err).Str("source", spool.Name()).Msg("event source failed")
				cancel()
			}
		}()
	}

	go func() {
		<-ctx.Done()
		logger.Info().Msg(MsgShuttingDown)
	}()

	if err := eng.Run(ctx, events, cfg.Workers); err != nil {
		return fmt.Errorf(MsgErrStart, err)
	}

	logger.Info().Msg(MsgEngineStopped)
	return nil
}
