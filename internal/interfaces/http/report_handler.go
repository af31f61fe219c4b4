package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/nicholasloureiro/backend-cs/internal/application/dto"
	"github.com/nicholasloureiro/backend-cs/internal/application/report"
	"github.com/nicholasloureiro/backend-cs/internal/domain"
	"github.com/nicholasloureiro/backend-cs/internal/domain/entity"
	"github.com/nicholasloureiro/backend-cs/pkg/logger"
)

// Campos multipart.
const (
	fieldWeekly    = "weekly_report"
	fieldInventory = "inventory_report"
	fieldRanking   = "mazza_report"
	fieldInvoices  = "nf_pdfs"
	fieldOrders    = "pedido_pdfs"
)

// Headers de respuesta.
const (
	HeaderStoreCode = "X-Store-Code"
	HeaderRunID     = "X-Run-ID"
)

// ReportHandler maneja la carga de planillas y PDFs y devuelve el reporte generado.
type ReportHandler struct {
	uc       *report.UseCase
	exporter *report.Exporter
	log      *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase, exporter *report.Exporter, log *logger.Logger) *ReportHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportHandler{uc: uc, exporter: exporter, log: log}
}

// Process godoc
// @Summary      Procesar reporte semanal completo
// @Description  Transforma el reporte de ventas con NFs y pedidos y lo concilia con el inventario.
// @Tags         reports
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        weekly_report     formData  file    true   "Faturamento por Produtos"
// @Param        inventory_report  formData  file    true   "Estoque Produtos com Valor"
// @Param        nf_pdfs           formData  file    false  "NFs (PDF)"
// @Param        pedido_pdfs       formData  file    false  "Pedidos (PDF)"
// @Param        mazza_report      formData  file    false  "RankingFaturamento (sólo tienda designada)"
// @Param        format            query     string  false  "xlsx | pdf | xml"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/process [post]
func (h *ReportHandler) Process(c *fiber.Ctx) error {
	if _, err := h.exporter.Resolve(c.Query("format")); err != nil {
		return h.fail(c, "", err)
	}
	files := newUploads(c)
	defer files.close()

	in := report.ProcessInput{
		Sales:     files.open(fieldWeekly),
		Inventory: files.open(fieldInventory),
		Ranking:   files.open(fieldRanking),
		Invoices:  files.documents(fieldInvoices),
		Orders:    files.documents(fieldOrders),
	}
	if files.err != nil {
		return h.fail(c, "", files.err)
	}

	res, err := h.uc.Process(c.UserContext(), in)
	if err != nil {
		return h.fail(c, "", err)
	}
	return h.send(c, res, func(ext string) string { return report.ProcessedFilename(h.uc.Now(), res.Set, ext) })
}

// Transform godoc
// @Summary      Transformar reporte semanal
// @Description  Agrega pedidos pendientes (NFs y pedidos) al reporte de ventas.
// @Tags         reports
// @Security     Bearer
// @Accept       multipart/form-data
// @Param        weekly_report  formData  file    true   "Faturamento por Produtos"
// @Param        nf_pdfs        formData  file    false  "NFs (PDF)"
// @Param        pedido_pdfs    formData  file    false  "Pedidos (PDF)"
// @Param        format         query     string  false  "xlsx | pdf | xml"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/transform [post]
func (h *ReportHandler) Transform(c *fiber.Ctx) error {
	if _, err := h.exporter.Resolve(c.Query("format")); err != nil {
		return h.fail(c, "", err)
	}
	files := newUploads(c)
	defer files.close()

	in := report.TransformInput{
		Sales:    files.open(fieldWeekly),
		Invoices: files.documents(fieldInvoices),
		Orders:   files.documents(fieldOrders),
	}
	if files.err != nil {
		return h.fail(c, "", files.err)
	}

	res, err := h.uc.Transform(c.UserContext(), in)
	if err != nil {
		return h.fail(c, "", err)
	}
	return h.send(c, res, func(ext string) string { return report.TransformFilename + "." + ext })
}

// Compare godoc
// @Summary      Conciliar reporte transformado con inventario
// @Tags         reports
// @Security     Bearer
// @Accept       multipart/form-data
// @Param        weekly_report     formData  file    true   "Reporte semanal transformado"
// @Param        inventory_report  formData  file    true   "Estoque Produtos com Valor"
// @Param        mazza_report      formData  file    false  "RankingFaturamento (sólo tienda designada)"
// @Param        format            query     string  false  "xlsx | pdf | xml"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/compare [post]
func (h *ReportHandler) Compare(c *fiber.Ctx) error {
	if _, err := h.exporter.Resolve(c.Query("format")); err != nil {
		return h.fail(c, "", err)
	}
	files := newUploads(c)
	defer files.close()

	in := report.CompareInput{
		Weekly:    files.open(fieldWeekly),
		Inventory: files.open(fieldInventory),
		Ranking:   files.open(fieldRanking),
	}
	if files.err != nil {
		return h.fail(c, "", files.err)
	}

	res, err := h.uc.Compare(c.UserContext(), in)
	if err != nil {
		return h.fail(c, "", err)
	}
	return h.send(c, res, func(ext string) string { return report.ProcessedFilename(h.uc.Now(), res.Set, ext) })
}

func (h *ReportHandler) send(c *fiber.Ctx, res *report.Result, name func(ext string) string) error {
	out, err := h.exporter.Export(c.UserContext(), res.Set, c.Query("format"), name)
	if err != nil {
		return h.fail(c, res.RunID, err)
	}
	c.Set(HeaderRunID, res.RunID)
	if res.Set.StoreCode != "" {
		c.Set(HeaderStoreCode, res.Set.StoreCode)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", out.Filename))
	h.log.Debug().Str("run_id", res.RunID).Str("store", storeLabel(res.Set)).Str("file", out.Filename).
		Int("bytes", len(out.Data)).Msg("reporte enviado")
	return c.Status(fiber.StatusOK).Send(out.Data)
}

// fail traduce errores de dominio a respuestas HTTP.
func (h *ReportHandler) fail(c *fiber.Ctx, runID string, err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingFile):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.log.Warn().Str("run_id", runID).Err(err).Str("path", c.Path()).Msg("petición cancelada")
		return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{Code: "TIMEOUT", Message: "petición cancelada"})
	default:
		h.log.Error().Str("run_id", runID).Err(err).Str("path", c.Path()).Msg("fallo al generar reporte")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// ── uploads ───────────────────────────────────────────────────────────────────

// uploads abre las partes del multipart y recuerda qué cerrar. El primer error
// de lectura queda en err.
type uploads struct {
	form    *multipart.Form
	closers []io.Closer
	err     error
}

func newUploads(c *fiber.Ctx) *uploads {
	u := &uploads{}
	if form, err := c.MultipartForm(); err == nil {
		u.form = form
	}
	return u
}

func (u *uploads) headers(field string) []*multipart.FileHeader {
	if u.form == nil {
		return nil
	}
	if fhs := u.form.File[field]; len(fhs) > 0 {
		return fhs
	}
	return u.form.File[field+"[]"]
}

// open devuelve el primer archivo del campo o nil si no se envió.
func (u *uploads) open(field string) io.Reader {
	fhs := u.headers(field)
	if len(fhs) == 0 || u.err != nil {
		return nil
	}
	f, err := fhs[0].Open()
	if err != nil {
		u.err = fmt.Errorf("abrir %s: %w", field, err)
		return nil
	}
	u.closers = append(u.closers, f)
	return f
}

// documents lee completos todos los archivos del campo.
func (u *uploads) documents(field string) []report.Document {
	fhs := u.headers(field)
	docs := make([]report.Document, 0, len(fhs))
	for _, fh := range fhs {
		if u.err != nil {
			return nil
		}
		data, err := readAll(fh)
		if err != nil {
			u.err = fmt.Errorf("leer %s (%s): %w", field, fh.Filename, err)
			return nil
		}
		docs = append(docs, report.Document{Name: fh.Filename, Data: data})
	}
	return docs
}

func (u *uploads) close() {
	for _, c := range u.closers {
		_ = c.Close()
	}
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// storeLabel identifica la tienda en los logs.
func storeLabel(set *entity.RecordSet) string {
	if set.StoreCode == "" {
		return set.StoreName
	}
	return set.StoreCode
}
