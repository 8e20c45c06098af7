package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	appmovement "github.com/jhoicas/depo-terminal/internal/application/movement"
	"github.com/jhoicas/depo-terminal/internal/application/ports"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
	"github.com/jhoicas/depo-terminal/internal/infrastructure/scanner"
)

// collector lo que el bucle del lector necesita de la recolección.
type collector interface {
	Progress(ctx context.Context, docType string, headerID int64) (movement.Progress, error)
	Collect(ctx context.Context, in appmovement.CollectInput) (appmovement.CollectResult, error)
}

func newCollectCmd(g *globalFlags) *cobra.Command {
	var (
		docType  string
		headerID int64
	)
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Recolecta un documento asignado leyendo \"cantidad*código\" del lector (stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(true)
			if err != nil {
				return err
			}
			ctx := ports.WithBearerToken(cmd.Context(), g.token)
			dev := scanner.NewWedgeDevice(cmd.InOrStdin())
			return runCollect(ctx, dev, cmd.OutOrStdout(), e.collection(), g.operator, docType, headerID)
		},
	}
	cmd.Flags().StringVar(&docType, "doc-type", "", "Tipo de documento (shipment, transfer, ...)")
	cmd.Flags().Int64Var(&headerID, "header", 0, "Id de cabecera en el ERP")
	_ = cmd.MarkFlagRequired("doc-type")
	_ = cmd.MarkFlagRequired("header")
	return cmd
}

// runCollect carga el progreso y registra cada lectura. Los rechazos de una lectura se
// muestran y el bucle sigue; solo la cancelación o el fin de la entrada lo terminan.
func runCollect(ctx context.Context, dev scanner.Device, out io.Writer, uc collector, operator, docType string, headerID int64) error {
	p, err := uc.Progress(ctx, docType, headerID)
	if err != nil {
		return fmt.Errorf("cargar documento: %w", err)
	}
	printProgress(out, p)

	err = scanner.Run(ctx, dev, scanner.Linear, func(line string) error {
		reading, err := scanner.ParseLine(line)
		if err != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", line, err)
			return nil
		}
		res, err := uc.Collect(ctx, appmovement.CollectInput{
			OperatorID: operator,
			DocType:    docType,
			HeaderID:   headerID,
			Barcode:    reading.Barcode,
			Quantity:   reading.Quantity,
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintf(out, "✗ %s: %v\n", reading.Barcode, err)
			return nil
		}
		lp := res.LineProgress
		mark := "✓"
		if lp.Overage {
			mark = "!"
		}
		if res.Stale {
			// Registrada, pero el progreso mostrado no la incluye todavía.
			fmt.Fprintf(out, "✓ %s +%s  registrada, progreso pendiente\n", reading.Barcode, reading.Quantity)
			return nil
		}
		fmt.Fprintf(out, "%s %s +%s  %s/%s  resta %s\n", mark, lp.Line.StockCode,
			reading.Quantity, lp.Collected, lp.Line.Quantity, lp.Remaining)
		p = res.Progress
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	printProgress(out, p)
	return nil
}

func printProgress(out io.Writer, p movement.Progress) {
	fmt.Fprintf(out, "documento %d [%s] lecturas: %d\n", p.HeaderID, p.State, p.TotalCollectedCount)
	for _, lp := range p.Lines {
		flag := ""
		if lp.Overage {
			flag = "  SOBRANTE"
		}
		fmt.Fprintf(out, "  %-16s %s/%s%s\n", lp.Line.StockCode, lp.Collected, lp.Line.Quantity, flag)
	}
	if p.AllCollected {
		fmt.Fprintln(out, "todo recogido")
	}
}
