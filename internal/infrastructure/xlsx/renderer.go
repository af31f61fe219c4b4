package xlsx

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nicholasloureiro/backend-cs/internal/domain/entity"
)

// ContentType de una planilla .xlsx.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var columnWidths = map[entity.Column]float64{
	entity.ColDescription: 48,
	entity.ColGroup:       24,
	entity.ColProductCode: 18,
}

// Renderer escribe un RecordSet como planilla de una hoja.
type Renderer struct{}

// NewRenderer construye el renderer xlsx.
func NewRenderer() *Renderer { return &Renderer{} }

func (Renderer) Format() string      { return "xlsx" }
func (Renderer) ContentType() string { return ContentType }

// Render escribe encabezados en la fila 1 y un registro por fila. Las celdas nulas
// quedan vacías y las cantidades enteras se escriben como enteros.
func (Renderer) Render(ctx context.Context, set *entity.RecordSet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), entity.OutputSheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	sw, err := f.NewStreamWriter(entity.OutputSheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, col := range set.Columns {
		width, ok := columnWidths[col]
		if !ok {
			width = 12
		}
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}

	header := make([]interface{}, len(set.Columns))
	for i, col := range set.Columns {
		header[i] = excelize.Cell{StyleID: bold, Value: string(col)}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}

	for n, rec := range set.Records {
		if n%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		row := make([]interface{}, len(set.Columns))
		for i, col := range set.Columns {
			row[i] = cellValue(rec.Value(col))
		}
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", n+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("xlsx: flush: %w", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(v any) interface{} {
	d, ok := v.(decimal.Decimal)
	if !ok {
		return v
	}
	if d.IsInteger() {
		return d.IntPart()
	}
	return d.InexactFloat64()
}
