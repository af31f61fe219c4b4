package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nicholasloureiro/backend-cs/internal/domain"
	"github.com/nicholasloureiro/backend-cs/internal/domain/entity"
)

// Output es un archivo listo para descargar.
type Output struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Exporter elige el Renderer según el formato pedido.
type Exporter struct {
	renderers     map[string]Renderer
	defaultFormat string
}

// NewExporter registra los renderers disponibles. defaultFormat se usa cuando
// el formato pedido viene vacío.
func NewExporter(defaultFormat string, renderers ...Renderer) *Exporter {
	m := make(map[string]Renderer, len(renderers))
	for _, r := range renderers {
		m[r.Format()] = r
	}
	return &Exporter{renderers: m, defaultFormat: strings.ToLower(defaultFormat)}
}

// Formats lista los formatos registrados.
func (e *Exporter) Formats() []string {
	out := make([]string, 0, len(e.renderers))
	for f := range e.renderers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Resolve normaliza el formato pedido y devuelve su Renderer.
func (e *Exporter) Resolve(format string) (Renderer, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		f = e.defaultFormat
	}
	r, ok := e.renderers[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q (disponibles: %s)", domain.ErrUnsupportedFormat, f, strings.Join(e.Formats(), ", "))
	}
	return r, nil
}

// Export renderiza el conjunto; name recibe la extensión y devuelve el nombre de archivo.
func (e *Exporter) Export(ctx context.Context, set *entity.RecordSet, format string, name func(ext string) string) (*Output, error) {
	r, err := e.Resolve(format)
	if err != nil {
		return nil, err
	}
	data, err := r.Render(ctx, set)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", r.Format(), err)
	}
	return &Output{
		Filename:    name(r.Format()),
		ContentType: r.ContentType(),
		Data:        data,
	}, nil
}
