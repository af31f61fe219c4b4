package report

import (
	"fmt"
	"time"

	"github.com/nicholasloureiro/backend-cs/internal/domain/entity"
	"github.com/nicholasloureiro/backend-cs/pkg/textnorm"
)

// TransformFilename es el nombre fijo de la salida de Transform, sin extensión.
const TransformFilename = "Relatorio_GAC_Semanal_Output"

// unknownStoreCode se usa en el nombre de archivo cuando el inventario vino vacío.
const unknownStoreCode = "desconhecida"

// ProcessedFilename arma relatorio_processado_<fecha>_loja_<código>_<nombre seguro>.<ext>.
func ProcessedFilename(now time.Time, set *entity.RecordSet, ext string) string {
	code := set.StoreCode
	if code == "" {
		code = unknownStoreCode
	}
	return fmt.Sprintf("relatorio_processado_%s_loja_%s_%s.%s",
		now.Format("2006-01-02"), textnorm.SafeFilename(code), textnorm.SafeFilename(set.StoreName), ext)
}
