// Package cmd implements the giterra command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/giterra/giterra/internal/config"
	"github.com/giterra/giterra/internal/log"
	"github.com/giterra/giterra/internal/telemetry"
)

// version is set at build time with -ldflags "-X github.com/giterra/giterra/cmd.version=...".
var version = "dev"

const serviceName = "giterra"

// app carries state shared by every command of one invocation.
type app struct {
	v        *viper.Viper
	cfg      config.Config
	cfgFile  string
	debug    bool
	shutdown telemetry.ShutdownFunc
}

// NewRootCmd builds the giterra command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	rootCmd := &cobra.Command{
		Use:   "giterra",
		Short: "Grow planets from commit history",
		Long: `Giterra turns a repository's commit history into a procedurally generated planet.
Commits are classified by message, a theme is chosen from the feat and fix counts,
and every commit becomes a placed asset on one octant of the planet.`,
		Version:            version,
		SilenceUsage:       true,
		PersistentPreRunE:  a.preRun,
		PersistentPostRunE: a.postRun,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/giterra/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newServeCmd(a),
		newClassifyCmd(),
		newThemesCmd(),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) preRun(cmd *cobra.Command, _ []string) error {
	if err := a.readConfig(); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.debug {
		level = "debug"
	}
	log.Init(log.Options{Level: level, Development: a.debug, Output: cmd.ErrOrStderr()})

	shutdown, err := telemetry.Setup(cmd.Context(), serviceName, telemetry.Options{
		Exporter: cfg.Telemetry.Exporter,
		Endpoint: cfg.Telemetry.Endpoint,
		Output:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	a.shutdown = shutdown
	return nil
}

func (a *app) postRun(cmd *cobra.Command, _ []string) error {
	if a.shutdown != nil {
		if err := a.shutdown(context.WithoutCancel(cmd.Context())); err != nil {
			log.ErrorErr(log.CatTelemetry, "Failed to flush spans", err)
		}
	}
	_ = log.Sync()
	return nil
}

// readConfig loads the explicit --config file, or the default file when it exists.
func (a *app) readConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", a.cfgFile, err)
		}
		return nil
	}

	path, err := config.DefaultConfigPath()
	if err != nil {
		return nil
	}
	a.v.SetConfigFile(path)
	if err := a.v.ReadInConfig(); err != nil {
		// It's fine if no config file is found; we use defaults.
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the giterra version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "giterra", version)
		},
	}
}
