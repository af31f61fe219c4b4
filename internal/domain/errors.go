package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrMissingFile  = errors.New("archivo requerido ausente")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Fallas estructurales de planillas: todas son también ErrInvalidInput.
	ErrMissingSheet       = fmt.Errorf("%w: hoja requerida ausente", ErrInvalidInput)
	ErrMissingColumn      = fmt.Errorf("%w: columna requerida ausente", ErrInvalidInput)
	ErrUnreadableWorkbook = fmt.Errorf("%w: planilla ilegible", ErrInvalidInput)
	ErrUnsupportedFormat  = fmt.Errorf("%w: formato de salida no soportado", ErrInvalidInput)
)
