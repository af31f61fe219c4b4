// Package xmlexport serializa un RecordSet como XML con beevik/etree.
//
//	<relatorio loja="6835" nome_loja="..." ranking="false" registros="2">
//	  <colunas><coluna chave="estoque">Estoque</coluna>...</colunas>
//	  <produtos>
//	    <produto><codigo_produto>1234567</codigo_produto>...</produto>
//	  </produtos>
//	</relatorio>
//
// Las celdas nulas no generan elemento.
package xmlexport

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/nicholasloureiro/backend-cs/internal/domain/entity"
)

// Renderer implementa report.Renderer en XML.
type Renderer struct{}

// NewRenderer construye el renderer XML.
func NewRenderer() *Renderer { return &Renderer{} }

func (Renderer) Format() string      { return "xml" }
func (Renderer) ContentType() string { return "application/xml" }

// Render construye el documento completo en memoria.
func (Renderer) Render(ctx context.Context, set *entity.RecordSet) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("relatorio")
	if set.StoreCode != "" {
		root.CreateAttr("loja", set.StoreCode)
	}
	root.CreateAttr("nome_loja", set.StoreName)
	root.CreateAttr("ranking", strconv.FormatBool(set.RankingMerged))
	root.CreateAttr("registros", strconv.Itoa(set.Len()))

	cols := root.CreateElement("colunas")
	for _, c := range set.Columns {
		el := cols.CreateElement("coluna")
		el.CreateAttr("chave", c.Key())
		el.SetText(string(c))
	}

	products := root.CreateElement("produtos")
	for i, rec := range set.Records {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		p := products.CreateElement("produto")
		for _, c := range set.Columns {
			v := rec.Value(c)
			if v == nil {
				continue
			}
			p.CreateElement(c.Key()).SetText(textOf(v))
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	return out, nil
}

func textOf(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case decimal.Decimal:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
