package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nicholasloureiro/backend-cs/internal/application/dto"
	"github.com/nicholasloureiro/backend-cs/internal/application/report"
	"github.com/nicholasloureiro/backend-cs/internal/domain/reconcile"
	"github.com/nicholasloureiro/backend-cs/internal/infrastructure/xlsx"
	"github.com/nicholasloureiro/backend-cs/internal/infrastructure/xmlexport"
	apphttp "github.com/nicholasloureiro/backend-cs/internal/interfaces/http"
	"github.com/nicholasloureiro/backend-cs/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// linesByContent simula el extractor de PDF: el contenido del archivo es la clave.
type linesByContent map[string][]string

func (l linesByContent) Lines(_ context.Context, pdf []byte) []string { return l[string(pdf)] }

func buildReportApp(t *testing.T, secret string) *fiber.App {
	t.Helper()
	extractor := linesByContent{
		"nf-1": {"1234567", "CHOCOLATE AO LEITE", "25,000"},
	}
	uc := report.NewUseCase(extractor, xlsx.NewReader(), reconcile.NewEngine("1225"), logger.Nop())
	exporter := report.NewExporter("xlsx", xlsx.NewRenderer(), xmlexport.NewRenderer())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Reports:   apphttp.NewReportHandler(uc, exporter, logger.Nop()),
		AppName:   "relatorio-test",
		Version:   "9.9.9",
		Formats:   exporter.Formats(),
		JWTSecret: secret,
	})
	return app
}

func sheetBytes(t *testing.T, sheet string, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func salesWorkbook(t *testing.T) []byte {
	return sheetBytes(t, "Faturamento por Produtos",
		[]interface{}{"Faturamento por Produtos"},
		[]interface{}{"Código do Produto", "Descrição", "Grupo", "Estoque", "Quantidade Líquida"},
		[]interface{}{1234567, "CHOCOLATE AO LEITE", "1014 - Funcionais", 100, 20},
		[]interface{}{"", "Totais", "", 100, 20},
	)
}

func inventoryWorkbook(t *testing.T, store int) []byte {
	return sheetBytes(t, "Estoque Produtos com Valor",
		[]interface{}{"Estoque"},
		[]interface{}{"Cód. Loja", "Loja", "Cód Produto", "Desc Produto", "Cod Grupo", "Desc GRUPO", "Quantidade"},
		[]interface{}{store, "LOJA SÃO PAULO", 1234567, "CHOCOLATE AO LEITE", 1014, "Funcionais", 150},
	)
}

func rankingWorkbook(t *testing.T) []byte {
	return sheetBytes(t, "RankingFaturamento",
		[]interface{}{"CODIGO", "NOME PRODUTO", "QUANTIDADE"},
		[]interface{}{1234567, "CHOCOLATE AO LEITE", 50},
	)
}

type part struct {
	field, filename string
	data            []byte
}

func postMultipart(t *testing.T, app *fiber.App, url, auth string, parts ...part) *http.Response {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readSheet(t *testing.T, resp *http.Response) [][]string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Faturamento por Produtos")
	require.NoError(t, err)
	return rows
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Process
// ──────────────────────────────────────────────────────────────────────────────

func TestProcess_DevuelvePlanillaConciliada(t *testing.T) {
	app := buildReportApp(t, "")

	resp := postMultipart(t, app, "/api/reports/process", "",
		part{"weekly_report", "semanal.xlsx", salesWorkbook(t)},
		part{"inventory_report", "estoque.xlsx", inventoryWorkbook(t, 6835)},
		part{"nf_pdfs", "nf.pdf", []byte("nf-1")},
	)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsx.ContentType, resp.Header.Get("Content-Type"))
	assert.Equal(t, "6835", resp.Header.Get(apphttp.HeaderStoreCode))
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRunID))

	cd := resp.Header.Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(cd, "attachment; filename=relatorio_processado_"), cd)
	assert.True(t, strings.HasSuffix(cd, "_loja_6835_LOJA_SAO_PAULO.xlsx"), cd)

	rows := readSheet(t, resp)
	require.Len(t, rows, 2)
	assert.Equal(t, "Cód. Loja", rows[0][0])
	assert.Equal(t, []string{"6835", "1234567", "CHOCOLATE AO LEITE", "1014 - Funcionais", "150", "25", "175", "20"}, rows[1])
}

func TestProcess_RankingEnTiendaDesignada(t *testing.T) {
	app := buildReportApp(t, "")

	resp := postMultipart(t, app, "/api/reports/process", "",
		part{"weekly_report", "semanal.xlsx", salesWorkbook(t)},
		part{"inventory_report", "estoque.xlsx", inventoryWorkbook(t, 1225)},
		part{"mazza_report", "mazza.xlsx", rankingWorkbook(t)},
	)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := readSheet(t, resp)
	assert.Equal(t, "Saídas VD", rows[0][8])
	assert.Equal(t, "Saídas Total", rows[0][9])
	assert.Equal(t, "50", rows[1][8])
	assert.Equal(t, "70", rows[1][9])
}

func TestProcess_FormatoXML(t *testing.T) {
	app := buildReportApp(t, "")

	resp := postMultipart(t, app, "/api/reports/process?format=xml", "",
		part{"weekly_report", "semanal.xlsx", salesWorkbook(t)},
		part{"inventory_report", "estoque.xlsx", inventoryWorkbook(t, 6835)},
	)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/xml", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasSuffix(resp.Header.Get("Content-Disposition"), ".xml"))
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "<codigo_produto>1234567</codigo_produto>")
}

func TestProcess_Errores(t *testing.T) {
	app := buildReportApp(t, "")

	t.Run("sin inventario", func(t *testing.T) {
		resp := postMultipart(t, app, "/api/reports/process", "",
			part{"weekly_report", "semanal.xlsx", salesWorkbook(t)})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "MISSING_FILE", errorCode(t, resp))
	})

	t.Run("hoja equivocada", func(t *testing.T) {
		resp := postMultipart(t, app, "/api/reports/process", "",
			part{"weekly_report", "semanal.xlsx", rankingWorkbook(t)},
			part{"inventory_report", "estoque.xlsx", inventoryWorkbook(t, 6835)})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION", errorCode(t, resp))
	})

	t.Run("formato desconocido", func(t *testing.T) {
		resp := postMultipart(t, app, "/api/reports/process?format=csv", "",
			part{"weekly_report", "semanal.xlsx", salesWorkbook(t)},
			part{"inventory_report", "estoque.xlsx", inventoryWorkbook(t, 6835)})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION", errorCode(t, resp))
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Transform / Compare
// ──────────────────────────────────────────────────────────────────────────────

func TestTransform_NombreFijo(t *testing.T) {
	app := buildReportApp(t, "")

	resp := postMultipart(t, app, "/api/reports/transform", "",
		part{"weekly_report", "semanal.xlsx", salesWorkbook(t)},
		part{"nf_pdfs", "nf.pdf", []byte("nf-1")},
	)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "attachment; filename=Relatorio_GAC_Semanal_Output.xlsx", resp.Header.Get("Content-Disposition"))
	assert.Empty(t, resp.Header.Get(apphttp.HeaderStoreCode))

	rows := readSheet(t, resp)
	assert.Equal(t, "Código do Produto", rows[0][0])
	assert.Equal(t, []string{"1234567", "CHOCOLATE AO LEITE", "1014 - Funcionais", "100", "25", "125", "20"}, rows[1])
}

func TestCompare_SobreSalidaDeTransform(t *testing.T) {
	app := buildReportApp(t, "")

	tr := postMultipart(t, app, "/api/reports/transform", "",
		part{"weekly_report", "semanal.xlsx", salesWorkbook(t)},
		part{"nf_pdfs", "nf.pdf", []byte("nf-1")},
	)
	transformed, err := io.ReadAll(tr.Body)
	require.NoError(t, err)
	tr.Body.Close()

	resp := postMultipart(t, app, "/api/reports/compare", "",
		part{"weekly_report", "Relatorio_GAC_Semanal_Output.xlsx", transformed},
		part{"inventory_report", "estoque.xlsx", inventoryWorkbook(t, 6835)},
	)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := readSheet(t, resp)
	assert.Equal(t, []string{"6835", "1234567", "CHOCOLATE AO LEITE", "1014 - Funcionais", "150", "25", "175", "20"}, rows[1])
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas públicas y auth
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildReportApp(t, testJWTSecret)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "9.9.9", body.Version)
}

func TestRoot(t *testing.T) {
	app := buildReportApp(t, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.InfoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "relatorio-test", body.Name)
	assert.Equal(t, []string{"xlsx", "xml"}, body.Formats)
}

func TestReports_ConSecretExigenToken(t *testing.T) {
	app := buildReportApp(t, testJWTSecret)
	parts := []part{
		{"weekly_report", "semanal.xlsx", salesWorkbook(t)},
		{"inventory_report", "estoque.xlsx", inventoryWorkbook(t, 6835)},
	}

	resp := postMultipart(t, app, "/api/reports/process", "", parts...)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postMultipart(t, app, "/api/reports/process", tokenForRole(t, "vendedor"), parts...)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = postMultipart(t, app, "/api/reports/process", tokenForRole(t, "gerente"), parts...)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
