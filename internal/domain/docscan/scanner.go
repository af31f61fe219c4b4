// Package docscan recupera (código, cantidad, descripción) de las líneas de texto
// de una NF o de un pedido usando sólo patrones posicionales.
//
// Layout NF (una columna por línea):
//
//	1234567                                   <- código
//	TABLETE LACREME BRANCO ZA 100GX15UN X 15  <- descripción
//	... hasta 8 líneas ...
//	3,000                                     <- cantidad de empaques
//
// Layout pedido:
//
//	10                                        <- ítem (múltiplo de 10)
//	1234567                                   <- material
//	TRUFA LACREME GIANDUIA 13,5GX150UN        <- denominación
//	... hasta 5 líneas ...
//	1,000                                     <- cantidad
package docscan

import (
	"fmt"
	"strconv"

	"github.com/nicholasloureiro/backend-cs/internal/domain/units"
)

// Format identifica el layout del documento.
type Format string

const (
	FormatInvoice Format = "nf"
	FormatOrder   Format = "pedido"
)

// Result es el resultado de escanear un documento: unidades pendientes por código
// y la primera descripción normalizada vista de cada código.
// Un Result vacío es la falla suave (documento ilegible o sin ítems).
type Result struct {
	Quantities   map[string]int
	Descriptions map[string]string
}

// Empty devuelve el resultado de falla suave.
func Empty() Result {
	return Result{Quantities: map[string]int{}, Descriptions: map[string]string{}}
}

// IsEmpty indica si el documento no aportó ningún código.
func (r Result) IsEmpty() bool {
	return len(r.Quantities) == 0
}

func (r Result) add(code, rawDescription string, n int) {
	if _, seen := r.Quantities[code]; !seen {
		r.Descriptions[code] = units.Canonicalize(rawDescription)
	}
	r.Quantities[code] += n
}

// layout describe dónde está cada dato respecto de la línea que abre el ítem.
type layout struct {
	format Format
	// anchor decide si la línea en el cursor abre un ítem; devuelve el código y
	// el desplazamiento de la línea de descripción.
	anchor func(c cursor) (code string, descAt int, ok bool)
	// ventana de búsqueda de la cantidad, [qtyFrom, qtyTo) relativa al cursor.
	qtyFrom, qtyTo int
}

var layouts = map[Format]layout{
	FormatInvoice: {
		format: FormatInvoice,
		anchor: func(c cursor) (string, int, bool) {
			code, ok := c.match(0, productCode)
			return code, 1, ok
		},
		qtyFrom: 2,
		qtyTo:   10,
	},
	FormatOrder: {
		format: FormatOrder,
		anchor: func(c cursor) (string, int, bool) {
			if _, ok := c.match(0, itemMarker); !ok {
				return "", 0, false
			}
			code, ok := c.match(1, productCode)
			return code, 2, ok
		},
		qtyFrom: 3,
		qtyTo:   8,
	},
}

// ScanInvoice escanea las líneas de una NF.
func ScanInvoice(lines []string) Result { return Scan(FormatInvoice, lines) }

// ScanOrder escanea las líneas de un pedido.
func ScanOrder(lines []string) Result { return Scan(FormatOrder, lines) }

// Scan aplica el layout indicado. Nunca falla: cualquier error interno devuelve Empty().
func Scan(format Format, lines []string) Result {
	l, ok := layouts[format]
	if !ok {
		return Empty()
	}
	res, err := scan(l, lines)
	if err != nil {
		return Empty()
	}
	return res
}

func scan(l layout, lines []string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docscan %s: %v", l.format, r)
		}
	}()

	res = Empty()
	for i := range lines {
		c := cursor{lines: lines, pos: i}
		code, descAt, ok := l.anchor(c)
		if !ok {
			continue
		}
		desc, ok := c.line(descAt)
		if !ok {
			continue
		}
		raw, ok := c.find(l.qtyFrom, l.qtyTo, quantity)
		if !ok {
			continue
		}
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return Result{}, fmt.Errorf("docscan %s: cantidad %q: %w", l.format, raw, err)
		}
		if qty <= 0 {
			continue
		}
		res.add(code, desc, qty*units.Multiplier(desc))
	}
	return res, nil
}
