package entity

// Column identifica una columna del reporte de salida; el valor es el encabezado
// tal como lo espera la planilla de la tienda.
type Column string

const (
	ColStoreCode        Column = "Cód. Loja"
	ColProductCode      Column = "Código do Produto"
	ColDescription      Column = "Descrição"
	ColGroup            Column = "Grupo"
	ColOnHand           Column = "Estoque"
	ColPending          Column = "Pedido"
	ColTotal            Column = "Total"
	ColOutbound         Column = "Saídas"
	ColOutboundExternal Column = "Saídas VD"
	ColOutboundCombined Column = "Saídas Total"
	ColSuggestion       Column = "Sugestão"
)

// OutputSheet es el nombre de la hoja del reporte generado.
const OutputSheet = "Faturamento por Produtos"

var columnKeys = map[Column]string{
	ColStoreCode:        "cod_loja",
	ColProductCode:      "codigo_produto",
	ColDescription:      "descricao",
	ColGroup:            "grupo",
	ColOnHand:           "estoque",
	ColPending:          "pedido",
	ColTotal:            "total",
	ColOutbound:         "saidas",
	ColOutboundExternal: "saidas_vd",
	ColOutboundCombined: "saidas_total",
	ColSuggestion:       "sugestao",
}

// Key devuelve un identificador ASCII estable (etiquetas XML, JSON).
func (c Column) Key() string {
	if k, ok := columnKeys[c]; ok {
		return k
	}
	return string(c)
}

// TransformColumns es el orden de columnas del reporte semanal transformado (sin tienda).
func TransformColumns() []Column {
	return []Column{
		ColProductCode, ColDescription, ColGroup,
		ColOnHand, ColPending, ColTotal, ColOutbound, ColSuggestion,
	}
}

// ReportColumns es el orden del reporte conciliado. Con ranking, las salidas
// externas quedan inmediatamente antes de la sugerencia.
func ReportColumns(rankingMerged bool) []Column {
	cols := []Column{
		ColStoreCode, ColProductCode, ColDescription, ColGroup,
		ColOnHand, ColPending, ColTotal, ColOutbound,
	}
	if rankingMerged {
		cols = append(cols, ColOutboundExternal, ColOutboundCombined)
	}
	return append(cols, ColSuggestion)
}
