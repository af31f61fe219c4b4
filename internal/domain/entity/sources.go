package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SalesRow es una fila del reporte de ventas (Faturamento por Produtos) ya depurada:
// la fila de "Totais" no llega hasta aquí.
type SalesRow struct {
	ProductCode string
	Description string
	Group       string
	OnHand      decimal.Decimal
	Outbound    decimal.Decimal // Quantidade Líquida
}

// InventoryEntry es una fila del inventario autoritativo de una tienda.
// Los campos monetarios se conservan pero el motor no los usa.
type InventoryEntry struct {
	StoreCode   string
	StoreName   string
	ProductCode string
	Description string
	GroupCode   string
	GroupLabel  string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Group compone "<código> - <etiqueta>" sin separadores sueltos; vacío si ambos lo están.
func (e InventoryEntry) Group() string {
	if strings.TrimSpace(e.GroupCode) == "" && strings.TrimSpace(e.GroupLabel) == "" {
		return ""
	}
	return strings.Trim(e.GroupCode+" - "+e.GroupLabel, " -")
}

// RankingEntry es una fila del ranking de facturación externo (venta directa).
type RankingEntry struct {
	ProductCode  string
	ProductName  string
	Quantity     decimal.Decimal
	CatalogTotal decimal.Decimal
	BilledTotal  decimal.Decimal
}

// CanonicalCode normaliza un código leído de planilla a su forma numérica:
// "1234567.0" y " 1234567 " quedan como "1234567". Valores no numéricos se
// devuelven recortados.
func CanonicalCode(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return s
	}
	return d.String()
}
