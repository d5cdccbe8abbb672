package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inventory/m/internal/migrations"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down|version]",
		Short:     "Run database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "version"},
		RunE:      runMigrate,
	}
	return cmd
}

func runMigrate(_ *cobra.Command, args []string) error {
	action := "up"
	if len(args) == 1 {
		action = args[0]
	}
	driver, dsn := cfg.Database.Driver, cfg.Database.DSN

	switch action {
	case "up":
		if err := migrations.Run(driver, dsn); err != nil {
			return err
		}
	case "down":
		if err := migrations.Down(driver, dsn); err != nil {
			return err
		}
	}

	version, dirty, err := migrations.Version(driver, dsn)
	if err != nil {
		return err
	}
	log.Info("schema version", zap.String("action", action), zap.Uint("version", version), zap.Bool("dirty", dirty))
	fmt.Printf("schema version %d (dirty=%t)\n", version, dirty)
	return nil
}
