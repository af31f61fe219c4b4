package reconcile_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicholasloureiro/backend-cs/internal/domain/docscan"
	"github.com/nicholasloureiro/backend-cs/internal/domain/entity"
	"github.com/nicholasloureiro/backend-cs/internal/domain/pending"
	"github.com/nicholasloureiro/backend-cs/internal/domain/reconcile"
)

func salesRows() []entity.SalesRow {
	return []entity.SalesRow{
		{ProductCode: "1234567", Description: "PRODUTO TESTE A", Group: "1014 - Funcionais",
			OnHand: decimal.NewFromInt(100), Outbound: decimal.NewFromInt(20)},
		{ProductCode: "2345678", Description: "CHOCOLATE B", Group: "1010 - Outros",
			OnHand: decimal.NewFromInt(50), Outbound: decimal.NewFromInt(10)},
	}
}

func TestBuildBase_AgregaPedidoYTotal(t *testing.T) {
	p := pending.Aggregate([]docscan.Result{{
		Quantities:   map[string]int{"1234567": 25, "7654321": 12},
		Descriptions: map[string]string{"1234567": "OUTRA DESC", "7654321": "ITEM SO DO PDF"},
	}}, nil)

	set := reconcile.BuildBase(salesRows(), p)

	require.Equal(t, 3, set.Len())
	assert.Equal(t, entity.TransformColumns(), set.Columns)
	assert.Equal(t, entity.UnknownStoreName, set.StoreName)

	a := mustFind(t, set, "1234567")
	assert.Equal(t, "PRODUTO TESTE A", a.Description, "la planilla manda sobre el PDF")
	assertQty(t, 25, a.Pending, "pedido")
	assertQty(t, 125, a.Total, "100 + 25")
	assert.False(t, a.Suggestion.Valid)

	b := mustFind(t, set, "2345678")
	assert.False(t, b.Pending.Valid, "sin documentos el pedido queda nulo")
	assertQty(t, 50, b.Total, "total = estoque")

	n := mustFind(t, set, "7654321")
	assert.Equal(t, "ITEM SO DO PDF", n.Description)
	assert.Equal(t, "", n.Group)
	assertQty(t, 0, n.OnHand, "estoque")
	assertQty(t, 0, n.Outbound, "saídas")
	assertQty(t, 12, n.Total, "total")
}

func TestBuildBase_DescripcionPorDefecto(t *testing.T) {
	p := pending.Aggregate(nil, []docscan.Result{{Quantities: map[string]int{"1111111": 3}}})

	set := reconcile.BuildBase(nil, p)

	require.Equal(t, 1, set.Len())
	assert.Equal(t, "Produto 1111111", set.Records[0].Description)
}

func TestBuildBase_OrdenaPorDescripcion(t *testing.T) {
	p := pending.Aggregate([]docscan.Result{{
		Quantities:   map[string]int{"1000000": 1},
		Descriptions: map[string]string{"1000000": "BALA"},
	}}, nil)

	set := reconcile.BuildBase(salesRows(), p)

	assert.Equal(t, []string{"1000000", "2345678", "1234567"}, codes(set))
}

func TestBuildBase_SinDocumentos(t *testing.T) {
	set := reconcile.BuildBase(salesRows(), pending.NewTotals())

	require.Equal(t, 2, set.Len())
	for _, r := range set.Records {
		assert.False(t, r.Pending.Valid)
		assert.True(t, r.Total.Decimal.Equal(r.OnHand.Decimal))
	}
}
