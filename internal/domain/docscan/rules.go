package docscan

import (
	"regexp"
	"strconv"
	"strings"
)

// lineRule es un patrón de línea completa con nombre y un ejemplo de lo que acepta.
// accept permite validar el valor capturado más allá de la expresión regular.
type lineRule struct {
	name    string
	example string
	re      *regexp.Regexp
	accept  func(value string) bool
}

// capture devuelve el primer grupo (o la coincidencia completa) si la línea cumple la regla.
func (r lineRule) capture(line string) (string, bool) {
	m := r.re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	v := m[0]
	if len(m) > 1 {
		v = m[1]
	}
	if r.accept != nil && !r.accept(v) {
		return "", false
	}
	return v, true
}

var (
	// productCode: 7 dígitos que empiezan con 1 o 2. Ej: "1234567".
	productCode = lineRule{
		name:    "codigo-produto",
		example: "1234567",
		re:      regexp.MustCompile(`^([12]\d{6})$`),
	}

	// quantity: entero con sufijo decimal de tres ceros. Ej: "12,000" -> 12.
	quantity = lineRule{
		name:    "quantidade",
		example: "12,000",
		re:      regexp.MustCompile(`^(\d+)[,.]000$`),
	}

	// itemMarker: número de ítem del pedido, 2 o 3 dígitos múltiplo de 10. Ej: "30".
	itemMarker = lineRule{
		name:    "item-pedido",
		example: "30",
		re:      regexp.MustCompile(`^(\d{2,3})$`),
		accept: func(v string) bool {
			n, err := strconv.Atoi(v)
			return err == nil && n%10 == 0
		},
	}
)

// cursor es una posición sobre la secuencia de líneas; los desplazamientos son relativos a pos.
type cursor struct {
	lines []string
	pos   int
}

// line devuelve la línea recortada en pos+offset, si existe.
func (c cursor) line(offset int) (string, bool) {
	i := c.pos + offset
	if i < 0 || i >= len(c.lines) {
		return "", false
	}
	return strings.TrimSpace(c.lines[i]), true
}

// match aplica la regla a la línea en pos+offset.
func (c cursor) match(offset int, r lineRule) (string, bool) {
	l, ok := c.line(offset)
	if !ok {
		return "", false
	}
	return r.capture(l)
}

// find busca la primera línea en [pos+from, pos+to) que cumpla la regla.
func (c cursor) find(from, to int, r lineRule) (string, bool) {
	for off := from; off < to; off++ {
		if c.pos+off >= len(c.lines) {
			break
		}
		if v, ok := c.match(off, r); ok {
			return v, true
		}
	}
	return "", false
}
