// Package pdf genera la hoja de recolección de un documento asignado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo + N° documento  │  Fecha + Cliente             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN / DESTINO                                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Descripción | Plan | Recogido | Resta       │
//	│         + código de barras del stock por línea              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: rutas totales / líneas completas                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appmovement "github.com/jhoicas/depo-terminal/internal/application/movement"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
)

var _ appmovement.PickListGenerator = (*PickListGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorOverage = &props.Color{Red: 190, Green: 30, Blue: 30}
	colorDone    = &props.Color{Red: 20, Green: 120, Blue: 60}
)

var docTypeTitles = map[string]string{
	"transfer":               "TRASLADO ENTRE ALMACENES",
	"shipment":               "DESPACHO A CLIENTE",
	"subcontracting-issue":   "SALIDA A SUBCONTRATACIÓN",
	"subcontracting-receipt": "ENTRADA DE SUBCONTRATACIÓN",
	"warehouse-inbound":      "ENTRADA DE ALMACÉN",
	"warehouse-outbound":     "SALIDA DE ALMACÉN",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// PickListGenerator implementa movement.PickListGenerator usando Maroto v2.
type PickListGenerator struct{}

// NewPickListGenerator construye el generador.
func NewPickListGenerator() *PickListGenerator { return &PickListGenerator{} }

// GeneratePickList genera el PDF y devuelve sus bytes.
func (g *PickListGenerator) GeneratePickList(_ context.Context, data appmovement.PickListData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de recolección "+data.Document.DocumentNo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(warehousesRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(data.Progress.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(data.Progress))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de recolección: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo + número (izq) y fecha + cliente (der).
func headerRow(data appmovement.PickListData) core.Row {
	doc := data.Document
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(docTypeTitles[doc.DocumentType], doc.DocumentType), props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+nonEmpty(doc.DocumentNo, fmt.Sprint(doc.HeaderID)), props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 8,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+doc.DocumentDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New(nonEmpty(doc.CustomerName, doc.CustomerCode), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Impreso: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func warehousesRow(data appmovement.PickListData) core.Row {
	doc := data.Document
	return row.New(8).Add(
		col.New(6).Add(text.New("Origen: "+nonEmpty(doc.SourceWarehouse, "—"), props.Text{Size: 9, Top: 2})),
		col.New(6).Add(text.New("Destino: "+nonEmpty(doc.TargetWarehouse, "—"), props.Text{Size: 9, Top: 2, Align: align.Right})),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo de color.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Descripción", 3, align.Left),
		h("Plan", 1, align.Right),
		h("Recogido", 1, align.Right),
		h("Resta", 1, align.Right),
		h("Código de barras", 4, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableLineRows: una fila por línea asignada. El sobrante se resalta en rojo.
func tableLineRows(lines []movement.LineProgress) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, lp := range lines {
		remainingStyle := props.Text{Size: 8, Align: align.Right, Top: 4, Right: 1}
		switch {
		case lp.Overage:
			remainingStyle.Color = colorOverage
			remainingStyle.Style = fontstyle.Bold
		case !lp.Remaining.IsPositive():
			remainingStyle.Color = colorDone
		}

		r := row.New(14).Add(
			col.New(2).Add(text.New(lp.Line.StockCode, props.Text{Size: 8, Top: 4, Left: 1})),
			col.New(3).Add(text.New(lp.Line.StockName, props.Text{Size: 8, Top: 4, Left: 1})),
			col.New(1).Add(text.New(lp.Line.Quantity.String(), props.Text{Size: 8, Align: align.Right, Top: 4, Right: 1})),
			col.New(1).Add(text.New(lp.Collected.String(), props.Text{Size: 8, Align: align.Right, Top: 4, Right: 1})),
			col.New(1).Add(text.New(lp.Remaining.String(), remainingStyle)),
			barcodeCol(4, lp.Line.StockCode),
		)
		rows = append(rows, r)
	}
	return rows
}

// barcodeCol Code128 del código de stock; vacío si no hay código.
func barcodeCol(size int, stockCode string) core.Col {
	c := col.New(size)
	if stockCode == "" {
		return c
	}
	return c.Add(code.NewBar(stockCode, props.Barcode{Percent: 80, Center: true}))
}

func summaryRow(p movement.Progress) core.Row {
	done := 0
	for _, lp := range p.Lines {
		if !lp.Remaining.IsPositive() {
			done++
		}
	}
	status := "Pendiente"
	if p.AllCollected {
		status = "Todo recogido"
	}
	return row.New(10).Add(
		col.New(4).Add(text.New(fmt.Sprintf("Lecturas: %d", p.TotalCollectedCount), props.Text{Size: 9, Top: 3})),
		col.New(4).Add(text.New(fmt.Sprintf("Líneas completas: %d/%d", done, len(p.Lines)), props.Text{Size: 9, Top: 3, Align: align.Center})),
		col.New(4).Add(text.New(status, props.Text{Style: fontstyle.Bold, Size: 9, Top: 3, Align: align.Right, Color: colorPrimary})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
