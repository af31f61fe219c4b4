package entity

// UnknownStoreName es el nombre usado cuando el inventario no trae filas.
const UnknownStoreName = "Unknown"

// RecordSet es la colección ordenada producida por una etapa del pipeline.
// Cada etapa devuelve un RecordSet nuevo; nunca se modifica el de la etapa anterior.
type RecordSet struct {
	StoreCode     string // vacío = nulo
	StoreName     string
	RankingMerged bool
	Columns       []Column
	Records       []ProductRecord
}

// Len devuelve la cantidad de registros.
func (s *RecordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// Find busca un registro por código de producto.
func (s *RecordSet) Find(code string) (ProductRecord, bool) {
	if s == nil {
		return ProductRecord{}, false
	}
	for _, r := range s.Records {
		if r.ProductCode == code {
			return r, true
		}
	}
	return ProductRecord{}, false
}
