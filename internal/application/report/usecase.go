// Package report orquesta el pipeline de reportes: lectura de planillas, escaneo de
// NFs y pedidos, armado de la base semanal y conciliación contra el inventario.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nicholasloureiro/backend-cs/internal/domain"
	"github.com/nicholasloureiro/backend-cs/internal/domain/docscan"
	"github.com/nicholasloureiro/backend-cs/internal/domain/entity"
	"github.com/nicholasloureiro/backend-cs/internal/domain/pending"
	"github.com/nicholasloureiro/backend-cs/internal/domain/reconcile"
	"github.com/nicholasloureiro/backend-cs/pkg/logger"
)

// Document es un PDF subido (NF o pedido).
type Document struct {
	Name string
	Data []byte
}

// TransformInput entrada de Transform: planilla de ventas más documentos.
type TransformInput struct {
	Sales    io.Reader
	Invoices []Document
	Orders   []Document
}

// CompareInput entrada de Compare. Ranking nil = no enviado.
type CompareInput struct {
	Weekly    io.Reader
	Inventory io.Reader
	Ranking   io.Reader
}

// ProcessInput entrada de Process: Transform y luego Compare en memoria.
type ProcessInput struct {
	Sales     io.Reader
	Inventory io.Reader
	Ranking   io.Reader
	Invoices  []Document
	Orders    []Document
}

// Result es el RecordSet producido junto al identificador de la ejecución.
type Result struct {
	RunID string
	Set   *entity.RecordSet
}

// UseCase ejecuta Transform, Compare y Process.
type UseCase struct {
	extractor TextExtractor
	workbooks WorkbookReader
	engine    *reconcile.Engine
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(
	extractor TextExtractor,
	workbooks WorkbookReader,
	engine *reconcile.Engine,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		extractor: extractor,
		workbooks: workbooks,
		engine:    engine,
		log:       log,
		now:       time.Now,
	}
}

// Now devuelve la hora usada para nombrar archivos.
func (uc *UseCase) Now() time.Time { return uc.now() }

// Transform arma la base semanal a partir de la planilla de ventas y los PDFs.
func (uc *UseCase) Transform(ctx context.Context, in TransformInput) (*Result, error) {
	runID := uuid.NewString()
	set, err := uc.transform(ctx, runID, in)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("run_id", runID).Str("op", "transform").Int("records", set.Len()).Msg("reporte transformado")
	return &Result{RunID: runID, Set: set}, nil
}

// Compare concilia una base semanal ya transformada contra el inventario.
func (uc *UseCase) Compare(ctx context.Context, in CompareInput) (*Result, error) {
	runID := uuid.NewString()
	if in.Weekly == nil {
		return nil, fmt.Errorf("%w: weekly_report", domain.ErrMissingFile)
	}
	base, err := uc.workbooks.ReadWeekly(ctx, in.Weekly)
	if err != nil {
		return nil, err
	}
	set, err := uc.compare(ctx, runID, base, in.Inventory, in.Ranking)
	if err != nil {
		return nil, err
	}
	uc.logDone(runID, "compare", set)
	return &Result{RunID: runID, Set: set}, nil
}

// Process ejecuta Transform y Compare sin pasar por disco.
func (uc *UseCase) Process(ctx context.Context, in ProcessInput) (*Result, error) {
	runID := uuid.NewString()
	base, err := uc.transform(ctx, runID, TransformInput{Sales: in.Sales, Invoices: in.Invoices, Orders: in.Orders})
	if err != nil {
		return nil, err
	}
	set, err := uc.compare(ctx, runID, base.Records, in.Inventory, in.Ranking)
	if err != nil {
		return nil, err
	}
	uc.logDone(runID, "process", set)
	return &Result{RunID: runID, Set: set}, nil
}

func (uc *UseCase) transform(ctx context.Context, runID string, in TransformInput) (*entity.RecordSet, error) {
	if in.Sales == nil {
		return nil, fmt.Errorf("%w: weekly_report", domain.ErrMissingFile)
	}
	sales, err := uc.workbooks.ReadSales(ctx, in.Sales)
	if err != nil {
		return nil, err
	}

	invoices, err := uc.scanAll(ctx, runID, docscan.FormatInvoice, in.Invoices)
	if err != nil {
		return nil, err
	}
	orders, err := uc.scanAll(ctx, runID, docscan.FormatOrder, in.Orders)
	if err != nil {
		return nil, err
	}

	return reconcile.BuildBase(sales, pending.Aggregate(invoices, orders)), nil
}

func (uc *UseCase) compare(ctx context.Context, runID string, base []entity.ProductRecord, inventory, ranking io.Reader) (*entity.RecordSet, error) {
	if inventory == nil {
		return nil, fmt.Errorf("%w: inventory_report", domain.ErrMissingFile)
	}
	inv, err := uc.workbooks.ReadInventory(ctx, inventory)
	if err != nil {
		return nil, err
	}
	if stores := reconcile.DistinctStores(inv); len(stores) > 1 {
		uc.log.Warn().Str("run_id", runID).Str("stores", strings.Join(stores, ",")).
			Msg("inventario con más de una tienda; se usa la primera fila")
	}

	var rk []entity.RankingEntry
	if ranking != nil {
		rk, err = uc.workbooks.ReadRanking(ctx, ranking)
		if err != nil {
			return nil, err
		}
		if rk == nil {
			rk = []entity.RankingEntry{}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return uc.engine.Reconcile(reconcile.Input{Base: base, Inventory: inv, Ranking: rk}), nil
}

// scanAll extrae y escanea cada documento. Un documento que no aporta nada se
// registra y se sigue con el siguiente.
func (uc *UseCase) scanAll(ctx context.Context, runID string, format docscan.Format, docs []Document) ([]docscan.Result, error) {
	results := make([]docscan.Result, 0, len(docs))
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := docscan.Scan(format, uc.extractor.Lines(ctx, doc.Data))
		if res.IsEmpty() {
			uc.log.Warn().Str("run_id", runID).Str("format", string(format)).Int("index", i).
				Str("file", doc.Name).Msg("documento sin productos reconocidos")
		} else {
			uc.log.Debug().Str("run_id", runID).Str("format", string(format)).Int("index", i).
				Int("codes", len(res.Quantities)).Msg("documento escaneado")
		}
		results = append(results, res)
	}
	return results, nil
}

func (uc *UseCase) logDone(runID, op string, set *entity.RecordSet) {
	uc.log.Info().
		Str("run_id", runID).
		Str("op", op).
		Str("store_code", set.StoreCode).
		Int("records", set.Len()).
		Bool("ranking_merged", set.RankingMerged).
		Msg("conciliación completada")
}
