// Package pdf genera la versión imprimible del reporte de estoque con Maroto v2.
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Loja             │  Fecha de generación    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por Column del RecordSet                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Registros / Estoque / Pedido / Total               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/nicholasloureiro/backend-cs/internal/domain/entity"
	"github.com/nicholasloureiro/backend-cs/pkg/textnorm"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Peso de cada columna en la grilla; las cantidades usan qtyWeight.
var columnWeights = map[entity.Column]int{
	entity.ColStoreCode:   3,
	entity.ColProductCode: 4,
	entity.ColDescription: 14,
	entity.ColGroup:       7,
}

const qtyWeight = 3

// ── Renderer ──────────────────────────────────────────────────────────────────

// Renderer implementa report.Renderer en PDF.
type Renderer struct {
	now func() time.Time
}

// NewRenderer construye el renderer PDF.
func NewRenderer() *Renderer { return &Renderer{now: time.Now} }

func (r *Renderer) Format() string      { return "pdf" }
func (r *Renderer) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (r *Renderer) Render(ctx context.Context, set *entity.RecordSet) ([]byte, error) {
	grid := 0
	for _, c := range set.Columns {
		grid += weight(c)
	}
	if grid == 0 {
		return nil, fmt.Errorf("pdf: reporte sin columnas")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(grid).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Relatório de Estoque", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(set, grid, r.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(set.Columns))

	for i, rec := range set.Records {
		if i%200 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		m.AddRows(tableDetailRow(set.Columns, rec))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(set, grid))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + tienda (izq) y fecha (der).
func headerRow(set *entity.RecordSet, grid int, now time.Time) core.Row {
	left := grid * 2 / 3
	store := storeLabel(set)
	return row.New(14).Add(
		col.New(left).Add(
			text.New("RELATÓRIO DE ESTOQUE E PEDIDOS", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(store, props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
		col.New(grid-left).Add(
			text.New("Gerado em: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// storeLabel: "Loja <código> - <Nombre>" con el nombre en formato título.
func storeLabel(set *entity.RecordSet) string {
	name := textnorm.Title(set.StoreName)
	if set.StoreCode == "" {
		return name
	}
	return "Loja " + set.StoreCode + " - " + name
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow(cols []entity.Column) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, col.New(weight(c)).Add(text.New(string(c), props.Text{
			Style: fontstyle.Bold, Size: 7, Align: alignFor(c),
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cells...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRow: una fila por registro.
func tableDetailRow(cols []entity.Column, rec entity.ProductRecord) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, col.New(weight(c)).Add(text.New(cellText(rec.Value(c)), props.Text{
			Size: 7, Align: alignFor(c), Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(5).Add(cells...)
}

// totalsRow: cantidad de registros y sumas de estoque, pedido y total.
func totalsRow(set *entity.RecordSet, grid int) core.Row {
	var onHand, pend, total decimal.Decimal
	for _, rec := range set.Records {
		onHand = onHand.Add(entity.OrZero(rec.OnHand))
		pend = pend.Add(entity.OrZero(rec.Pending))
		total = total.Add(entity.OrZero(rec.Total))
	}
	summary := fmt.Sprintf("Registros: %d   |   Estoque: %s   |   Pedido: %s   |   Total: %s",
		set.Len(), formatQty(onHand), formatQty(pend), formatQty(total))

	return row.New(10).Add(col.New(grid).Add(
		text.New(summary, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func weight(c entity.Column) int {
	if w, ok := columnWeights[c]; ok {
		return w
	}
	return qtyWeight
}

func alignFor(c entity.Column) align.Type {
	if _, ok := columnWeights[c]; ok {
		return align.Left
	}
	return align.Right
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return formatQty(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// formatQty escribe enteros con punto de miles y decimales con coma.
// Ej: 25000 → "25.000", 12.5 → "12,5"
func formatQty(d decimal.Decimal) string {
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasFrac := strings.Cut(s, ".")
	out := formatThousands(intPart)
	if hasFrac {
		out += "," + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
