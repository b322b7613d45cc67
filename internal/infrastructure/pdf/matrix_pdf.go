// Package pdf genera la salida imprimible de la matriz de comisiones.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Matriz de comisiones  │  Versión + vigencia        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Grupo | Lista 4 | 3 cuotas | 6 | 9 | 12             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de emisión + leyenda                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	domainpricing "github.com/jhoicas/comisiones-api/internal/domain/pricing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Formateador es-AR para porcentajes con coma decimal.
var printerAR = message.NewPrinter(language.MustParse("es-AR"))

// ── Generator ─────────────────────────────────────────────────────────────────

// MatrixPDFGenerator genera la matriz de comisiones en PDF usando Maroto v2.
type MatrixPDFGenerator struct{}

// NewMatrixPDFGenerator construye el generador.
func NewMatrixPDFGenerator() *MatrixPDFGenerator { return &MatrixPDFGenerator{} }

// GenerateMatrixPDF arma la matriz de la versión dada y devuelve sus bytes.
func (g *MatrixPDFGenerator) GenerateMatrixPDF(esquema *entity.CommissionSchedule) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Matriz de comisiones", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(esquema))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(domainpricing.ProjectMatrix(esquema)) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar matriz: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y nombre de versión + vigencia (der).
func headerRow(esquema *entity.CommissionSchedule) core.Row {
	vigencia := "Vigente desde " + esquema.VigenteDesde.Format("02/01/2006")
	if esquema.VigenteHasta != nil {
		vigencia = fmt.Sprintf("Vigencia %s a %s",
			esquema.VigenteDesde.Format("02/01/2006"),
			esquema.VigenteHasta.Format("02/01/2006"))
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("MATRIZ DE COMISIONES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tasas totales por grupo y cantidad de cuotas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(esquema.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New(vigencia, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera Grupo | Lista 4 | 3 | 6 | 9 | 12 cuotas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Grupo", 2, align.Center),
		h("Lista 4 (contado)", 2, align.Right),
		h("3 cuotas", 2, align.Right),
		h("6 cuotas", 2, align.Right),
		h("9 cuotas", 2, align.Right),
		h("12 cuotas", 2, align.Right),
	)
}

// tableRows: una fila por grupo de comisión.
func tableRows(matriz []domainpricing.GroupRates) []core.Row {
	celda := func(tasa decimal.Decimal) core.Col {
		return col.New(2).Add(text.New(
			formatPct(tasa),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		))
	}

	result := make([]core.Row, 0, len(matriz))
	for _, fila := range matriz {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("Grupo %d", fila.Grupo),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			celda(fila.Lista4),
			celda(fila.Cuotas[3]),
			celda(fila.Cuotas[6]),
			celda(fila.Cuotas[9]),
			celda(fila.Cuotas[12]),
		))
	}
	return result
}

// footerRow: fecha de emisión y leyenda.
func footerRow() core.Row {
	emitido := time.Now().Format("02/01/2006 15:04")
	return row.New(10).Add(col.New(12).Add(
		text.New("Emitido el "+emitido, props.Text{
			Size: 7, Color: colorGray, Top: 2,
		}),
		text.New("Las tasas incluyen la comisión base del grupo más el adicional por cuotas.", props.Text{
			Size: 6.5, Color: colorGray, Top: 6,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatPct formatea una tasa con coma decimal según es-AR. Ej: 18.5 → "18,50 %".
func formatPct(tasa decimal.Decimal) string {
	f, _ := tasa.Float64()
	return printerAR.Sprintf("%.2f %%", f)
}
