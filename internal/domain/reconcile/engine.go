// Package reconcile implementa el motor que concilia el reporte semanal con el
// inventario autoritativo de la tienda y, para la tienda designada, con el ranking
// de facturación externo.
package reconcile

import (
	"sort"
	"strings"

	"github.com/nicholasloureiro/backend-cs/internal/domain/entity"
)

// Marcadores de los grupos con prioridad de orden propia.
const (
	groupFuncionaisCode  = "1014"
	groupFuncionaisLabel = "Funcionais"
	groupPascoaCode      = "1013"
	groupPascoaLabel     = "Pascoa"
)

// Input son las fuentes de una conciliación. Ranking nil significa que no se
// envió ranking; un slice vacío (no nil) sí cuenta como enviado.
type Input struct {
	Base      []entity.ProductRecord
	Inventory []entity.InventoryEntry
	Ranking   []entity.RankingEntry
}

// Engine concilia registros. Es inmutable y puede compartirse entre llamadas.
type Engine struct {
	rankingStore string
}

// NewEngine construye el motor; rankingStoreCode es la tienda designada para la
// que se aplica el ranking externo.
func NewEngine(rankingStoreCode string) *Engine {
	return &Engine{rankingStore: entity.CanonicalCode(rankingStoreCode)}
}

// RankingStore devuelve el código de la tienda designada.
func (e *Engine) RankingStore() string { return e.rankingStore }

// Reconcile ejecuta, en orden: identidad de tienda, ajuste de estoque y
// enriquecimiento de cada registro base, inyección de productos sólo del
// inventario, orden por prioridad de grupo y, si corresponde, merge del ranking.
// No modifica Input.
func (e *Engine) Reconcile(in Input) *entity.RecordSet {
	store := Identify(in.Inventory)
	inv := newInventoryIndex(in.Inventory)

	records := make([]entity.ProductRecord, 0, len(in.Base)+len(inv.order))
	inBase := make(map[string]struct{}, len(in.Base))

	for _, base := range in.Base {
		inBase[base.ProductCode] = struct{}{}
		rec := adjust(base, inv)
		rec.StoreCode = store.Code
		records = append(records, rec)
	}

	for _, code := range inv.order {
		if _, ok := inBase[code]; ok {
			continue
		}
		entry := inv.byCode[code]
		records = append(records, entity.ProductRecord{
			StoreCode:   store.Code,
			ProductCode: code,
			Description: entry.Description,
			Group:       entry.Group(),
			OnHand:      entity.Qty(entry.Quantity),
			Total:       entity.Qty(entry.Quantity),
			Outbound:    entity.QtyInt(0),
		})
	}

	SortByGroupPriority(records)

	set := &entity.RecordSet{
		StoreCode: store.Code,
		StoreName: store.Name,
		Columns:   entity.ReportColumns(false),
		Records:   records,
	}

	if in.Ranking != nil && store.Code != "" && store.Code == e.rankingStore {
		set.Records = mergeRanking(set.Records, in.Ranking, e.rankingStore)
		set.RankingMerged = true
		set.Columns = entity.ReportColumns(true)
	}
	return set
}

// adjust aplica el estoque del inventario y el enriquecimiento de grupo a una copia del registro.
func adjust(rec entity.ProductRecord, inv inventoryIndex) entity.ProductRecord {
	entry, found := inv.byCode[rec.ProductCode]
	if !found {
		if !rec.OnHand.Valid || !rec.OnHand.Decimal.IsZero() {
			rec.OnHand = entity.QtyInt(0)
			rec.Total = entity.Qty(entity.OrZero(rec.Pending))
		}
		return rec
	}

	if !rec.OnHand.Valid || !rec.OnHand.Decimal.Equal(entry.Quantity) {
		rec.OnHand = entity.Qty(entry.Quantity)
		rec.Total = entity.Qty(entry.Quantity.Add(entity.OrZero(rec.Pending)))
	}

	// Un grupo ya definido nunca se toca.
	if !rec.HasGroup() {
		if g := entry.Group(); g != "" {
			rec.Group = g
		}
		rec.Description = entry.Description
	}
	return rec
}

// groupTier: 0 Funcionais, 2 Páscoa, 1 el resto (incluido sin grupo).
func groupTier(group string) int {
	switch {
	case strings.Contains(group, groupFuncionaisCode) && strings.Contains(group, groupFuncionaisLabel):
		return 0
	case strings.Contains(group, groupPascoaCode) && strings.Contains(group, groupPascoaLabel):
		return 2
	default:
		return 1
	}
}

// SortByGroupPriority ordena por prioridad de grupo y, dentro de cada nivel, por descripción.
func SortByGroupPriority(records []entity.ProductRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, tj := groupTier(records[i].Group), groupTier(records[j].Group)
		if ti != tj {
			return ti < tj
		}
		return records[i].Description < records[j].Description
	})
}

// mergeRanking suma las salidas externas a los registros existentes y agrega
// como registro mínimo cada código que no existe. Devuelve un slice nuevo.
func mergeRanking(records []entity.ProductRecord, ranking []entity.RankingEntry, storeCode string) []entity.ProductRecord {
	out := make([]entity.ProductRecord, len(records), len(records)+len(ranking))
	copy(out, records)

	byCode := make(map[string][]int, len(out))
	for i, r := range out {
		byCode[r.ProductCode] = append(byCode[r.ProductCode], i)
	}

	for _, rk := range ranking {
		idxs, ok := byCode[rk.ProductCode]
		if !ok {
			out = append(out, entity.ProductRecord{
				StoreCode:        storeCode,
				ProductCode:      rk.ProductCode,
				Description:      rk.ProductName,
				OutboundExternal: entity.Qty(rk.Quantity),
				OutboundCombined: entity.Qty(rk.Quantity),
			})
			byCode[rk.ProductCode] = []int{len(out) - 1}
			continue
		}
		for _, i := range idxs {
			external := entity.OrZero(out[i].OutboundExternal).Add(rk.Quantity)
			out[i].OutboundExternal = entity.Qty(external)
			out[i].OutboundCombined = entity.Qty(entity.OrZero(out[i].Outbound).Add(external))
		}
	}
	return out
}

// inventoryIndex: búsqueda por código (gana la última fila) y orden de primera aparición.
type inventoryIndex struct {
	byCode map[string]entity.InventoryEntry
	order  []string
}

func newInventoryIndex(rows []entity.InventoryEntry) inventoryIndex {
	idx := inventoryIndex{byCode: make(map[string]entity.InventoryEntry, len(rows))}
	for _, r := range rows {
		if _, seen := idx.byCode[r.ProductCode]; !seen {
			idx.order = append(idx.order, r.ProductCode)
		}
		idx.byCode[r.ProductCode] = r
	}
	return idx
}
