package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inventory/m/internal/config"
	"inventory/m/internal/logger"
)

const serviceName = "inventory"

var (
	cfgFile string
	v       = config.NewViper()
	cfg     config.Config
	log     = zap.NewNop()

	rootCmd = &cobra.Command{
		Use:               "inventory",
		Short:             "Inventory and retail management API",
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("env", "development", "environment (development, production)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("database-driver", "sqlite", "database driver (sqlite, pgx)")
	flags.String("database-dsn", "inventory.db", "database DSN or SQLite file path")

	_ = v.BindPFlag("env", flags.Lookup("env"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("database.driver", flags.Lookup("database-driver"))
	_ = v.BindPFlag("database.dsn", flags.Lookup("database-dsn"))

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = log.Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if err := config.ReadFile(v, cfgFile); err != nil {
		return err
	}
	loaded, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}
	cfg = loaded

	l, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		ServiceName: serviceName,
	})
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	log = l
	zap.ReplaceGlobals(log)
	return nil
}
