package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appmovement "github.com/jhoicas/depo-terminal/internal/application/movement"
	"github.com/jhoicas/depo-terminal/internal/application/ports"
	infrapdf "github.com/jhoicas/depo-terminal/internal/infrastructure/pdf"
)

func newPickListCmd(g *globalFlags) *cobra.Command {
	var (
		docType  string
		headerID int64
		output   string
	)
	cmd := &cobra.Command{
		Use:   "pick-list",
		Short: "Genera la hoja de recolección (PDF) de un documento asignado",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(true)
			if err != nil {
				return err
			}
			uc := appmovement.NewPickListUseCase(e.collection(), infrapdf.NewPickListGenerator())
			pdf, err := uc.Generate(ports.WithBearerToken(cmd.Context(), g.token), docType, headerID)
			if err != nil {
				return err
			}
			if output == "" {
				output = fmt.Sprintf("pick-list-%d.pdf", headerID)
			}
			if err := os.WriteFile(output, pdf, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&docType, "doc-type", "", "Tipo de documento")
	cmd.Flags().Int64Var(&headerID, "header", 0, "Id de cabecera en el ERP")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Archivo de salida (por defecto pick-list-<header>.pdf)")
	_ = cmd.MarkFlagRequired("doc-type")
	_ = cmd.MarkFlagRequired("header")
	return cmd
}
