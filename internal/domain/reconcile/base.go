package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nicholasloureiro/backend-cs/internal/domain/entity"
	"github.com/nicholasloureiro/backend-cs/internal/domain/pending"
)

// BuildBase arma el reporte semanal transformado: cada fila de ventas recibe su
// pedido pendiente y los códigos que sólo aparecen en NFs/pedidos entran como
// productos nuevos sin grupo. El resultado se ordena por descripción.
func BuildBase(sales []entity.SalesRow, p pending.Totals) *entity.RecordSet {
	records := make([]entity.ProductRecord, 0, len(sales)+len(p.Quantities))
	known := make(map[string]struct{}, len(sales))

	for _, s := range sales {
		known[s.ProductCode] = struct{}{}
		records = append(records, withPending(entity.ProductRecord{
			ProductCode: s.ProductCode,
			Description: s.Description,
			Group:       s.Group,
			OnHand:      entity.Qty(s.OnHand),
			Outbound:    entity.Qty(s.Outbound),
		}, p))
	}

	for _, code := range p.Codes() {
		if _, ok := known[code]; ok {
			continue
		}
		desc, ok := p.Descriptions[code]
		if !ok || desc == "" {
			desc = "Produto " + code
		}
		records = append(records, withPending(entity.ProductRecord{
			ProductCode: code,
			Description: desc,
			OnHand:      entity.QtyInt(0),
			Outbound:    entity.QtyInt(0),
		}, p))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Description < records[j].Description
	})

	return &entity.RecordSet{
		StoreName: entity.UnknownStoreName,
		Columns:   entity.TransformColumns(),
		Records:   records,
	}
}

func withPending(r entity.ProductRecord, p pending.Totals) entity.ProductRecord {
	if q, ok := p.Quantity(r.ProductCode); ok {
		r.Pending = entity.QtyInt(int64(q))
	}
	r.Total = entity.Qty(entity.OrZero(r.OnHand).Add(entity.OrZero(r.Pending)))
	r.Suggestion = decimal.NullDecimal{}
	return r
}
