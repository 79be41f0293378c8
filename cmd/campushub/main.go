package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"campushub/internal/config"
)

// app holds what every command shares once the config is loaded
type app struct {
	configPath string
	verbose    bool

	configSvc config.ConfigService
	cfg       *config.Config
	logger    *log.Logger
	clock     func() time.Time
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "campushub",
		Short: "Browse campus events, clubs, hackathons, exams, study partners, rooms and jobs",
		Long: `campushub is a terminal browser for campus life.

Every page supports live text search, category and date filters, a numeric
threshold (price, budget, stipend...) and quick actions such as saving,
registering or applying.

Run without arguments to start the interactive browser.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
		RunE: a.runTUI,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: $XDG_CONFIG_HOME/campushub/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newPagesCmd(a))
	rootCmd.AddCommand(newAskCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	return rootCmd
}

// load reads the config file and the environment. Commands log to w; the
// interactive browser replaces the logger with a file logger.
func (a *app) load(w io.Writer) error {
	a.configSvc = config.NewConfigService(a.configPath, nil)
	cfg, err := a.configSvc.Load()
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(w, cfg.Log.Level, a.verbose)
	if a.clock == nil {
		a.clock = time.Now
	}
	return nil
}

func newLogger(w io.Writer, level string, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "campushub",
		Level:           log.WarnLevel,
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
