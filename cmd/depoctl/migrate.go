package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/depo-terminal/internal/infrastructure/postgres"
)

func newMigrateCmd() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones del diario de escaneos",
		Long:  "Sin --steps sube todas las migraciones pendientes; --steps negativo revierte esa cantidad.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			if !e.cfg.DB.Enabled() {
				return fmt.Errorf("migrate: configure DATABASE_URL o DB_HOST")
			}
			return postgres.Migrate(e.cfg.DB.ConnectionString(), steps, e.log.Component("migrate"))
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "Número de migraciones (negativo = revertir)")
	return cmd
}
