package main

import (
	"os"

	"github.com/spf13/cobra"

	appmovement "github.com/jhoicas/depo-terminal/internal/application/movement"
	"github.com/jhoicas/depo-terminal/internal/infrastructure/erp"
	"github.com/jhoicas/depo-terminal/pkg/config"
	"github.com/jhoicas/depo-terminal/pkg/logger"
)

// globalFlags flags comunes a los comandos que hablan con el ERP.
type globalFlags struct {
	token    string
	operator string
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:           "depoctl",
		Short:         "Terminal de almacén: recolección por lector, hoja de recolección y migraciones",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.token, "token", os.Getenv("DEPO_TOKEN"), "Bearer token del operario para el ERP (env DEPO_TOKEN)")
	root.PersistentFlags().StringVar(&g.operator, "operator", os.Getenv("USER"), "Id del operario para el diario")

	root.AddCommand(newCollectCmd(&g), newPickListCmd(&g), newMigrateCmd())
	return root
}

// env configuración y logger del CLI. El log va a stderr para no mezclarse con la salida.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func loadEnv(needsERP bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if needsERP {
		if err := cfg.ERP.Validate(); err != nil {
			return nil, err
		}
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "depoctl",
		Out:     os.Stderr,
	})
	return &env{cfg: cfg, log: log}, nil
}

func (e *env) gateway() *erp.Client {
	return erp.NewClient(erp.Config{
		BaseURL:    e.cfg.ERP.BaseURL,
		BranchCode: e.cfg.ERP.BranchCode,
		Timeout:    e.cfg.ERP.Timeout,
	}, nil)
}

func (e *env) collection() *appmovement.CollectionUseCase {
	return appmovement.NewCollectionUseCase(e.gateway(), appmovement.CollectionDeps{
		Logger: e.log.Component("collection"),
	})
}
