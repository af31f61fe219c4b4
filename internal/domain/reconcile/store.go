package reconcile

import "github.com/nicholasloureiro/backend-cs/internal/domain/entity"

// Store es la identidad de la tienda a la que pertenece el inventario.
type Store struct {
	Code string // vacío = nulo
	Name string
}

// Identify toma la tienda de la primera fila del inventario. El inventario se asume
// de una sola tienda; DistinctStores permite verificarlo antes de conciliar.
func Identify(inventory []entity.InventoryEntry) Store {
	if len(inventory) == 0 {
		return Store{Name: entity.UnknownStoreName}
	}
	first := inventory[0]
	return Store{Code: first.StoreCode, Name: first.StoreName}
}

// DistinctStores devuelve los códigos de tienda distintos, en orden de aparición.
// Más de uno viola la precondición de inventario de tienda única.
func DistinctStores(inventory []entity.InventoryEntry) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, e := range inventory {
		if _, ok := seen[e.StoreCode]; ok {
			continue
		}
		seen[e.StoreCode] = struct{}{}
		codes = append(codes, e.StoreCode)
	}
	return codes
}
