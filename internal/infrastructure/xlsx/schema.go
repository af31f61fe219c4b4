package xlsx

// Encabezados de las planillas de entrada. La comparación ignora mayúsculas,
// acentos y espacios sobrantes.
const (
	hdrProductCode = "Código do Produto"
	hdrDescription = "Descrição"
	hdrGroup       = "Grupo"
	hdrOnHand      = "Estoque"
	hdrNetQuantity = "Quantidade Líquida"
	hdrPending     = "Pedido"
	hdrTotal       = "Total"
	hdrOutbound    = "Saídas"

	hdrStoreCode     = "Cód. Loja"
	hdrStoreName     = "Loja"
	hdrInvCode       = "Cód Produto"
	hdrInvDesc       = "Desc Produto"
	hdrInvGroupCode  = "Cod Grupo"
	hdrInvGroupLabel = "Desc GRUPO"
	hdrQuantity      = "Quantidade"
	hdrUnitCost      = "R$ CUSTO UN"
	hdrTotalCost     = "R$ CUSTO TOTAL ITEM"
	hdrUnitPrice     = "R$ VENDA UN"
	hdrTotalPrice    = "R$ VENDA TOTAL ITEM"

	hdrRankCode     = "CODIGO"
	hdrRankName     = "NOME PRODUTO"
	hdrRankQuantity = "QUANTIDADE"
	hdrRankCatalog  = "VALOR TOTAL CATÁLOGO"
	hdrRankBilled   = "VALOR TOTAL FATURADO"
)

// sheetSchema describe dónde está el encabezado de una hoja y qué columnas exige.
type sheetSchema struct {
	sheet     string
	headerRow int // base 1
	required  []string
	optional  []string
}

var (
	salesSchema = sheetSchema{
		sheet:     "Faturamento por Produtos",
		headerRow: 2, // la fila 1 es el título del reporte
		required:  []string{hdrProductCode, hdrDescription, hdrGroup, hdrOnHand, hdrNetQuantity},
	}

	inventorySchema = sheetSchema{
		sheet:     "Estoque Produtos com Valor",
		headerRow: 2,
		required: []string{
			hdrStoreCode, hdrStoreName, hdrInvCode, hdrInvDesc,
			hdrInvGroupCode, hdrInvGroupLabel, hdrQuantity,
		},
		optional: []string{hdrUnitCost, hdrTotalCost, hdrUnitPrice, hdrTotalPrice},
	}

	rankingSchema = sheetSchema{
		sheet:     "RankingFaturamento",
		headerRow: 1,
		required:  []string{hdrRankCode, hdrRankName, hdrRankQuantity},
		optional:  []string{hdrRankCatalog, hdrRankBilled},
	}

	weeklySchema = sheetSchema{
		sheet:     "Faturamento por Produtos",
		headerRow: 1,
		required:  []string{hdrProductCode, hdrDescription, hdrGroup, hdrOnHand},
		optional:  []string{hdrPending, hdrTotal, hdrOutbound},
	}
)
