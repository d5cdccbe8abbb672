package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inventory/m/internal/database"
	"inventory/m/internal/migrations"
	"inventory/m/internal/seed"
	"inventory/m/internal/store"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <catalog.csv>",
		Short: "Import categories and products from a CSV file",
		Long: `Import rows of category,name,price,quantity[,expireDate] after a header
line. Categories are created by name; malformed rows are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migrations.Run(cfg.Database.Driver, cfg.Database.DSN); err != nil {
				return err
			}
			db, err := database.Connect(cfg.Database.Driver, cfg.Database.DSN, database.Options{})
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := seed.LoadCatalogFile(cmd.Context(), store.New(db), args[0], log)
			if err != nil {
				return err
			}
			fmt.Printf("imported %d products\n", n)
			return nil
		},
	}
}
