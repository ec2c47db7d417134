package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/leofalp/sitefinder"
	"github.com/leofalp/sitefinder/config"
)

var (
	configPath string
	logLevel   string
	cfg        *config.Config
)

// Execute runs the command line with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. Flags are bound to package state, so
// only one tree should run at a time.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sitefinder",
		Short:        "Find the official website of Turkish companies",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				c.Log.Level = logLevel
				if err := c.Validate(); err != nil {
					return err
				}
			}
			cfg = c
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(resolveCmd(), runCmd(), reviewCmd(), calibrateCmd())
	return root
}

// withService builds a Service from the loaded configuration, runs fn and
// closes the service.
func withService(ctx context.Context, fn func(*sitefinder.Service) error) (err error) {
	svc, err := sitefinder.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svc.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(svc)
}
