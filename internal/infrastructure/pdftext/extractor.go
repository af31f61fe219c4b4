// Package pdftext extrae las líneas de texto de un PDF usando ledongthuc/pdf.
//
// Los glifos de cada página se agrupan en tramos: un tramo termina cuando cambia
// la línea base o cuando el salto horizontal supera el tamaño de la fuente, que
// es como se separan las celdas de una tabla impresa.
package pdftext

import (
	"bytes"
	"context"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/nicholasloureiro/backend-cs/pkg/logger"
	"github.com/nicholasloureiro/backend-cs/pkg/textnorm"
)

const (
	baselineTolerance = 2.0
	defaultFontSize   = 10.0
)

// Extractor implementa report.TextExtractor.
type Extractor struct {
	log *logger.Logger
}

// NewExtractor construye el extractor.
func NewExtractor(log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{log: log}
}

// Lines devuelve las líneas de todas las páginas en orden. Un PDF ilegible
// devuelve un slice vacío.
func (e *Extractor) Lines(ctx context.Context, data []byte) (lines []string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn().Interface("panic", r).Msg("pdftext: documento ilegible")
			lines = []string{}
		}
	}()

	if len(data) == 0 {
		return []string{}
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.log.Warn().Err(err).Msg("pdftext: no se pudo abrir el PDF")
		return []string{}
	}

	lines = []string{}
	for i := 1; i <= r.NumPage(); i++ {
		if ctx.Err() != nil {
			return lines
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		lines = append(lines, pageLines(p.Content().Text)...)
	}
	return lines
}

// pageLines arma los tramos de texto de una página.
func pageLines(texts []pdf.Text) []string {
	var (
		out     []string
		cur     strings.Builder
		started bool
		lastY   float64
		lastEnd float64
	)
	flush := func() {
		if s := strings.TrimSpace(textnorm.NFC(cur.String())); s != "" {
			out = append(out, s)
		}
		cur.Reset()
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		size := t.FontSize
		if size <= 0 {
			size = defaultFontSize
		}
		if started {
			sameLine := math.Abs(t.Y-lastY) <= baselineTolerance
			gap := t.X - lastEnd
			if !sameLine || gap > size || gap < -size {
				flush()
			}
		}
		cur.WriteString(t.S)
		started = true
		lastY = t.Y
		lastEnd = t.X + t.W
	}
	if started {
		flush()
	}
	return out
}
