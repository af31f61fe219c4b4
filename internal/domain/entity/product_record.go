package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductRecord es una fila del reporte consolidado por producto.
// Los campos numéricos son anulables: un registro agregado desde el ranking externo
// sólo trae salidas externas, el resto queda nulo.
type ProductRecord struct {
	StoreCode        string // vacío = nulo (inventario vacío)
	ProductCode      string // clave única, forma canónica numérica
	Description      string
	Group            string // "<cod grupo> - <desc grupo>"; vacío = sin grupo
	OnHand           decimal.NullDecimal
	Pending          decimal.NullDecimal
	Total            decimal.NullDecimal // OnHand + Pending (Pending nulo = 0)
	Outbound         decimal.NullDecimal
	OutboundExternal decimal.NullDecimal
	OutboundCombined decimal.NullDecimal
	Suggestion       decimal.NullDecimal // siempre nulo, lo completa la tienda
}

// Qty envuelve un decimal como valor presente.
func Qty(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}

// QtyInt envuelve un entero como valor presente.
func QtyInt(n int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(n))
}

// OrZero devuelve el valor o cero si es nulo.
func OrZero(n decimal.NullDecimal) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Decimal
}

// HasGroup indica si el grupo de clasificación ya está definido.
func (r ProductRecord) HasGroup() bool {
	return strings.TrimSpace(r.Group) != ""
}

// Value devuelve el valor de la columna: string para texto, decimal.Decimal para
// cantidades presentes y nil para celdas nulas.
func (r ProductRecord) Value(col Column) any {
	switch col {
	case ColStoreCode:
		return nullableText(r.StoreCode)
	case ColProductCode:
		return r.ProductCode
	case ColDescription:
		return r.Description
	case ColGroup:
		return nullableText(r.Group)
	case ColOnHand:
		return nullableQty(r.OnHand)
	case ColPending:
		return nullableQty(r.Pending)
	case ColTotal:
		return nullableQty(r.Total)
	case ColOutbound:
		return nullableQty(r.Outbound)
	case ColOutboundExternal:
		return nullableQty(r.OutboundExternal)
	case ColOutboundCombined:
		return nullableQty(r.OutboundCombined)
	case ColSuggestion:
		return nullableQty(r.Suggestion)
	}
	return nil
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableQty(n decimal.NullDecimal) any {
	if !n.Valid {
		return nil
	}
	return n.Decimal
}
