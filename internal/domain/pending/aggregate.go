// Package pending consolida las cantidades pendientes de varios documentos escaneados.
package pending

import (
	"sort"

	"github.com/nicholasloureiro/backend-cs/internal/domain/docscan"
)

// Totals son las unidades pendientes por código, con la descripción del primer
// documento (en orden de procesamiento) que introdujo cada código.
type Totals struct {
	Quantities   map[string]int
	Descriptions map[string]string
}

// NewTotals devuelve un Totals vacío.
func NewTotals() Totals {
	return Totals{Quantities: map[string]int{}, Descriptions: map[string]string{}}
}

// Aggregate suma las NFs y luego los pedidos, en el orden recibido. La suma no
// depende del orden; sólo la descripción retenida (gana la primera).
func Aggregate(invoices, orders []docscan.Result) Totals {
	t := NewTotals()
	for _, r := range invoices {
		t.merge(r)
	}
	for _, r := range orders {
		t.merge(r)
	}
	return t
}

func (t Totals) merge(r docscan.Result) {
	for code, qty := range r.Quantities {
		t.Quantities[code] += qty
		if _, ok := t.Descriptions[code]; ok {
			continue
		}
		if desc, ok := r.Descriptions[code]; ok {
			t.Descriptions[code] = desc
		}
	}
}

// Quantity devuelve las unidades pendientes del código.
func (t Totals) Quantity(code string) (int, bool) {
	q, ok := t.Quantities[code]
	return q, ok
}

// Codes devuelve los códigos ordenados.
func (t Totals) Codes() []string {
	codes := make([]string, 0, len(t.Quantities))
	for c := range t.Quantities {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
