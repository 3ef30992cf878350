package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxbot/broker/oanda"
	"github.com/rustyeddy/fxbot/config"
	"github.com/rustyeddy/fxbot/engine"
	"github.com/rustyeddy/fxbot/journal"
	"github.com/rustyeddy/fxbot/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the live scan loop",
	Long: `Run the scan loop against the OANDA account configured in the
environment (OANDA_API_KEY, OANDA_ACCOUNT_ID, OANDA_ENV).

The loop scans each configured instrument once per interval, publishes a
state snapshot for the dashboard, and stops cleanly on SIGINT/SIGTERM.

Example:
  fxbot run --config fxbot.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to YAML config file (defaults used when omitted)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if runConfigPath != "" {
		var err error
		cfg, err = config.LoadFromFile(runConfigPath)
		if err != nil {
			return err
		}
	}

	log := logging.New(logging.Config{
		Level:    cfg.Logging.Level,
		File:     cfg.Logging.File,
		FilePath: cfg.Logging.FilePath,
	})

	creds, err := oanda.LoadCredentials()
	if err != nil {
		return fmt.Errorf("credentials: %w", err)
	}
	client, err := oanda.New(creds)
	if err != nil {
		return err
	}

	jr, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jr.Close()

	bot, err := engine.New(cfg, client, jr, creds.AccountID, log)
	if err != nil {
		return err
	}

	bot.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown requested")
	bot.Stop()
	return nil
}
