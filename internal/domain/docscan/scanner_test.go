package docscan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicholasloureiro/backend-cs/internal/domain/docscan"
)

// invoiceItem arma las líneas de un ítem de NF con padding líneas de relleno
// entre la descripción y la cantidad.
func invoiceItem(code, desc string, padding int, qty string) []string {
	lines := []string{code, desc}
	for i := 0; i < padding; i++ {
		lines = append(lines, "UN")
	}
	return append(lines, qty)
}

func TestScanInvoice_CodigoDescripcionCantidad(t *testing.T) {
	lines := []string{
		"DANFE",
		"CÓD. PRODUTO",
		"1234567",
		"TABLETE LACREME BRANCO ZA 100GX15UN X 15",
		"18069000",
		"5102",
		"CX",
		"3,000",
		"45,90",
	}

	res := docscan.ScanInvoice(lines)

	assert.Equal(t, map[string]int{"1234567": 45}, res.Quantities)
	assert.Equal(t, "TABLETE LACREME BRANCO ZA", res.Descriptions["1234567"])
}

func TestScanInvoice_CodigoRepetidoAcumulaYConservaPrimeraDescripcion(t *testing.T) {
	var lines []string
	lines = append(lines, invoiceItem("2000001", "BOMBOM AO LEITE X 10", 1, "2,000")...)
	lines = append(lines, invoiceItem("2000001", "BOMBOM OUTRA DESCRICAO X 10", 1, "1.000")...)

	res := docscan.ScanInvoice(lines)

	assert.Equal(t, 30, res.Quantities["2000001"])
	assert.Equal(t, "BOMBOM AO LEITE", res.Descriptions["2000001"])
}

func TestScanInvoice_VentanaDeCantidad(t *testing.T) {
	// la ventana cubre i+2 .. i+9: con 7 líneas de relleno la cantidad cae en i+9.
	dentro := docscan.ScanInvoice(invoiceItem("1000001", "PRODUTO", 7, "4,000"))
	assert.Equal(t, 4, dentro.Quantities["1000001"])

	// con 8 líneas de relleno la cantidad cae en i+10, fuera de la ventana.
	fuera := docscan.ScanInvoice(invoiceItem("1000001", "PRODUTO", 8, "4,000"))
	assert.NotContains(t, fuera.Quantities, "1000001")
	assert.True(t, fuera.IsEmpty())
}

func TestScanInvoice_IgnoraCodigosInvalidosYCantidadCero(t *testing.T) {
	lines := []string{
		"3234567", "CODIGO QUE EMPIEZA CON 3", "1,000",
		"123456", "SEIS DIGITOS", "1,000",
		"1111111", "CANTIDAD CERO", "0,000",
		"1222222", "CANTIDAD CON DECIMALES", "1,500",
	}

	res := docscan.ScanInvoice(lines)

	assert.True(t, res.IsEmpty())
	assert.Empty(t, res.Descriptions)
}

func TestScanInvoice_CodigoEnUltimaLinea(t *testing.T) {
	res := docscan.ScanInvoice([]string{"ENCABEZADO", "1234567"})
	assert.True(t, res.IsEmpty())
}

func TestScanOrder_ItemMaterialDenominacionCantidad(t *testing.T) {
	lines := []string{
		"ITEM", "MATERIAL", "DENOMINAÇÃO", "QUANTIDADE",
		"10",
		"1234567",
		"TRUFA LACREME GIANDUIA 13,5GX150UN",
		"CX",
		"2,000",
		"20",
		"2345678",
		"BOMBOM X24UN",
		"UN",
		"1,000",
	}

	res := docscan.ScanOrder(lines)

	assert.Equal(t, map[string]int{"1234567": 300, "2345678": 24}, res.Quantities)
	assert.Equal(t, "TRUFA LACREME GIANDUIA", res.Descriptions["1234567"])
	assert.Equal(t, "BOMBOM X24UN", res.Descriptions["2345678"])
}

func TestScanOrder_MarcadorNoMultiploDeDiezOSinCodigo(t *testing.T) {
	lines := []string{
		"15", "1234567", "ITEM 15 NO VALE", "1,000",
		"30", "NO ES CODIGO", "DESCRICAO", "1,000",
	}

	res := docscan.ScanOrder(lines)

	assert.True(t, res.IsEmpty())
}

func TestScanOrder_VentanaDeCantidad(t *testing.T) {
	item := func(padding int) []string {
		lines := []string{"10", "1234567", "PRODUTO"}
		for i := 0; i < padding; i++ {
			lines = append(lines, "-")
		}
		return append(lines, "2,000")
	}

	// ventana i+3 .. i+7
	assert.Equal(t, 2, docscan.ScanOrder(item(4)).Quantities["1234567"])
	assert.NotContains(t, docscan.ScanOrder(item(5)).Quantities, "1234567")
}

func TestScan_EntradaVaciaYFormatoDesconocido(t *testing.T) {
	assert.True(t, docscan.ScanInvoice(nil).IsEmpty())
	assert.True(t, docscan.ScanOrder([]string{}).IsEmpty())
	assert.True(t, docscan.Scan(docscan.Format("otro"), []string{"1234567", "X", "1,000"}).IsEmpty())
}

func TestScan_CantidadQueDesbordaEsFallaSuave(t *testing.T) {
	lines := []string{
		"1234567", "PRODUTO", "1,000",
		"2345678", "OUTRO", "99999999999999999999999,000",
	}

	res := docscan.ScanInvoice(lines)

	assert.True(t, res.IsEmpty(), "un error interno descarta el documento completo")
	assert.NotNil(t, res.Quantities)
	assert.NotNil(t, res.Descriptions)
}
