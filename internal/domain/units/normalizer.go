// Package units deriva el multiplicador de empaque y la descripción canónica
// a partir de la descripción cruda de un producto en NF o pedido.
package units

import (
	"regexp"
	"strconv"
	"strings"
)

// rule es un patrón de empaque con nombre. El primer grupo capturado son las unidades.
type rule struct {
	name    string
	example string
	re      *regexp.Regexp
}

// multiplierRules se evalúan en orden; gana la primera que coincide.
var multiplierRules = []rule{
	{
		name:    "peso-x-unidades",
		example: "TRUFA LACREME GIANDUIA 13,5GX150UN -> 150",
		re:      regexp.MustCompile(`(?i)\d+(?:[,.]\d+)?(?:G|KG)X(\d+)U(?:N)?`),
	},
	{
		name:    "x-unidades",
		example: "BOMBOM SORTIDO X24UN -> 24",
		re:      regexp.MustCompile(`(?i)X(\d+)UN`),
	},
	{
		name:    "x-final",
		example: "TABLETE AO LEITE X 15 -> 15",
		re:      regexp.MustCompile(`(?i)\s+X\s+(\d+)\s*$`),
	},
	{
		name:    "unidades",
		example: "DISPLAY PIRULITO 72UN -> 72",
		re:      regexp.MustCompile(`(?i)(\d+)UN`),
	},
}

var (
	trailingCount = regexp.MustCompile(`(?i)\s+X\s+\d+\s*$`)
	packaging     = regexp.MustCompile(`(?i)\s*\d+(?:[,.]\d+)?(?:G|KG)X\d+U(?:N)?\s*`)
)

// Match devuelve la regla que define el multiplicador y las unidades por empaque.
// ok es false si ninguna regla coincide.
func Match(description string) (name string, units int, ok bool) {
	if description == "" {
		return "", 1, false
	}
	for _, r := range multiplierRules {
		m := r.re.FindStringSubmatch(description)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		// "X0UN" no tiene sentido como empaque; se trata como unidad suelta.
		if n < 1 {
			n = 1
		}
		return r.name, n, true
	}
	return "", 1, false
}

// Multiplier devuelve las unidades por empaque (>= 1).
//
//	Multiplier("TABLETE LACREME BRANCO ZA 100GX15UN X 15") == 15
//	Multiplier("PRODUTO SEM EMBALAGEM") == 1
func Multiplier(description string) int {
	_, n, _ := Match(description)
	return n
}

// Canonicalize quita la cantidad final "X <n>" y la anotación de empaque
// "<peso>(G|KG)X<n>U(N)", y colapsa los espacios.
//
//	Canonicalize("TABLETE LACREME BRANCO ZA 100GX15UN X 15") == "TABLETE LACREME BRANCO ZA"
func Canonicalize(description string) string {
	if description == "" {
		return ""
	}
	desc := trailingCount.ReplaceAllString(description, "")
	desc = packaging.ReplaceAllString(desc, " ")
	return strings.Join(strings.Fields(desc), " ")
}
