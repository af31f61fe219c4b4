// Package xlsx lee las planillas de entrada y escribe el reporte de salida con excelize.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nicholasloureiro/backend-cs/internal/domain"
	"github.com/nicholasloureiro/backend-cs/internal/domain/entity"
	"github.com/nicholasloureiro/backend-cs/pkg/textnorm"
)

// Reader implementa report.WorkbookReader.
type Reader struct{}

// NewReader construye el lector de planillas.
func NewReader() *Reader { return &Reader{} }

// ReadSales lee el reporte de ventas. Descarta filas sin código y la fila de totales.
func (rd *Reader) ReadSales(ctx context.Context, r io.Reader) ([]entity.SalesRow, error) {
	t, err := readTable(ctx, r, salesSchema)
	if err != nil {
		return nil, err
	}
	out := make([]entity.SalesRow, 0, len(t.rows))
	for _, row := range t.rows {
		code := entity.CanonicalCode(t.cell(row, hdrProductCode))
		desc := strings.TrimSpace(t.cell(row, hdrDescription))
		if code == "" || textnorm.ContainsFold(desc, "totais") {
			continue
		}
		out = append(out, entity.SalesRow{
			ProductCode: code,
			Description: desc,
			Group:       strings.TrimSpace(t.cell(row, hdrGroup)),
			OnHand:      numberOrZero(t.cell(row, hdrOnHand)),
			Outbound:    numberOrZero(t.cell(row, hdrNetQuantity)),
		})
	}
	return out, nil
}

// ReadInventory lee el inventario de la tienda.
func (rd *Reader) ReadInventory(ctx context.Context, r io.Reader) ([]entity.InventoryEntry, error) {
	t, err := readTable(ctx, r, inventorySchema)
	if err != nil {
		return nil, err
	}
	out := make([]entity.InventoryEntry, 0, len(t.rows))
	for _, row := range t.rows {
		code := entity.CanonicalCode(t.cell(row, hdrInvCode))
		if code == "" {
			continue
		}
		out = append(out, entity.InventoryEntry{
			StoreCode:   entity.CanonicalCode(t.cell(row, hdrStoreCode)),
			StoreName:   strings.TrimSpace(t.cell(row, hdrStoreName)),
			ProductCode: code,
			Description: strings.TrimSpace(t.cell(row, hdrInvDesc)),
			GroupCode:   entity.CanonicalCode(t.cell(row, hdrInvGroupCode)),
			GroupLabel:  strings.TrimSpace(t.cell(row, hdrInvGroupLabel)),
			Quantity:    numberOrZero(t.cell(row, hdrQuantity)),
			UnitCost:    numberOrZero(t.cell(row, hdrUnitCost)),
			TotalCost:   numberOrZero(t.cell(row, hdrTotalCost)),
			UnitPrice:   numberOrZero(t.cell(row, hdrUnitPrice)),
			TotalPrice:  numberOrZero(t.cell(row, hdrTotalPrice)),
		})
	}
	return out, nil
}

// ReadRanking lee el ranking de facturación externo.
func (rd *Reader) ReadRanking(ctx context.Context, r io.Reader) ([]entity.RankingEntry, error) {
	t, err := readTable(ctx, r, rankingSchema)
	if err != nil {
		return nil, err
	}
	out := make([]entity.RankingEntry, 0, len(t.rows))
	for _, row := range t.rows {
		code := entity.CanonicalCode(t.cell(row, hdrRankCode))
		if code == "" {
			continue
		}
		out = append(out, entity.RankingEntry{
			ProductCode:  code,
			ProductName:  strings.TrimSpace(t.cell(row, hdrRankName)),
			Quantity:     numberOrZero(t.cell(row, hdrRankQuantity)),
			CatalogTotal: numberOrZero(t.cell(row, hdrRankCatalog)),
			BilledTotal:  numberOrZero(t.cell(row, hdrRankBilled)),
		})
	}
	return out, nil
}

// ReadWeekly lee un reporte semanal ya transformado. Las celdas vacías quedan nulas.
func (rd *Reader) ReadWeekly(ctx context.Context, r io.Reader) ([]entity.ProductRecord, error) {
	t, err := readTable(ctx, r, weeklySchema)
	if err != nil {
		return nil, err
	}
	out := make([]entity.ProductRecord, 0, len(t.rows))
	for _, row := range t.rows {
		code := entity.CanonicalCode(t.cell(row, hdrProductCode))
		if code == "" {
			continue
		}
		out = append(out, entity.ProductRecord{
			ProductCode: code,
			Description: strings.TrimSpace(t.cell(row, hdrDescription)),
			Group:       strings.TrimSpace(t.cell(row, hdrGroup)),
			OnHand:      nullableNumber(t.cell(row, hdrOnHand)),
			Pending:     nullableNumber(t.cell(row, hdrPending)),
			Total:       nullableNumber(t.cell(row, hdrTotal)),
			Outbound:    nullableNumber(t.cell(row, hdrOutbound)),
		})
	}
	return out, nil
}

// table son las filas de datos de una hoja con el índice de sus columnas.
type table struct {
	cols map[string]int // HeaderKey -> posición
	rows [][]string
}

// cell devuelve el valor de la columna en la fila; vacío si la columna no existe
// o la fila es más corta.
func (t *table) cell(row []string, header string) string {
	i, ok := t.cols[textnorm.HeaderKey(header)]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func readTable(ctx context.Context, r io.Reader, s sheetSchema) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	sheet, ok := findSheet(f, s.sheet)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrMissingSheet, s.sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: hoja %q: %v", domain.ErrUnreadableWorkbook, sheet, err)
	}

	var header []string
	if len(rows) >= s.headerRow {
		header = rows[s.headerRow-1]
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := textnorm.HeaderKey(h)
		if key == "" {
			continue
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	for _, req := range s.required {
		if _, ok := cols[textnorm.HeaderKey(req)]; !ok {
			return nil, fmt.Errorf("%w: %q en hoja %q", domain.ErrMissingColumn, req, sheet)
		}
	}

	t := &table{cols: cols}
	if len(rows) > s.headerRow {
		for _, row := range rows[s.headerRow:] {
			if !isRowEmpty(row) {
				t.rows = append(t.rows, row)
			}
		}
	}
	return t, nil
}

// findSheet busca la hoja por nombre, sin distinguir mayúsculas ni acentos.
func findSheet(f *excelize.File, name string) (string, bool) {
	want := textnorm.HeaderKey(name)
	for _, s := range f.GetSheetList() {
		if textnorm.HeaderKey(s) == want {
			return s, true
		}
	}
	return "", false
}

func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseNumber acepta "12", "12.5", "1e3" y también texto en formato brasileño "1.234,50".
func parseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}
	if strings.Contains(s, ",") {
		br := strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		if d, err := decimal.NewFromString(br); err == nil {
			return d, true
		}
	}
	return decimal.Zero, false
}

// numberOrZero: vacío o no numérico cuenta como cero.
func numberOrZero(s string) decimal.Decimal {
	d, _ := parseNumber(s)
	return d
}

// nullableNumber: vacío o no numérico queda nulo.
func nullableNumber(s string) decimal.NullDecimal {
	d, ok := parseNumber(s)
	if !ok {
		return decimal.NullDecimal{}
	}
	return entity.Qty(d)
}
