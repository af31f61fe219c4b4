package report

import (
	"context"
	"io"

	"github.com/nicholasloureiro/backend-cs/internal/domain/entity"
)

// TextExtractor obtiene las líneas de texto de un PDF, página por página.
// Un PDF ilegible produce cero líneas, nunca error.
type TextExtractor interface {
	Lines(ctx context.Context, pdf []byte) []string
}

// WorkbookReader lee las planillas de entrada. Una hoja o columna obligatoria
// ausente devuelve un error que envuelve domain.ErrInvalidInput.
type WorkbookReader interface {
	ReadSales(ctx context.Context, r io.Reader) ([]entity.SalesRow, error)
	ReadInventory(ctx context.Context, r io.Reader) ([]entity.InventoryEntry, error)
	ReadRanking(ctx context.Context, r io.Reader) ([]entity.RankingEntry, error)
	ReadWeekly(ctx context.Context, r io.Reader) ([]entity.ProductRecord, error)
}

// Renderer serializa un RecordSet en un formato de salida.
type Renderer interface {
	Format() string
	ContentType() string
	Render(ctx context.Context, set *entity.RecordSet) ([]byte, error)
}
