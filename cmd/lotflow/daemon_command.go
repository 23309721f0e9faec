package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"lotflow/internal/daemon"
	"lotflow/internal/logging"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the lotflow daemon in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logPath := filepath.Join(cfg.Paths.LogDir, "lotflow.log")
			logger, err := logging.New(logging.Options{
				Level:       cfg.Logging.Level,
				Format:      cfg.Logging.Format,
				OutputPaths: []string{"stdout", logPath},
			})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			services, err := daemon.NewServices(cfg, logger)
			if err != nil {
				return fmt.Errorf("init services: %w", err)
			}

			d, err := daemon.New(cfg, services, logger)
			if err != nil {
				_ = services.Close()
				return err
			}
			defer d.Close()

			if err := d.Start(signalCtx); err != nil {
				return err
			}

			<-signalCtx.Done()
			d.Stop()
			return nil
		},
	}
}
