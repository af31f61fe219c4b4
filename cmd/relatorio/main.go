package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nicholasloureiro/backend-cs/cmd/relatorio/app"
	"github.com/nicholasloureiro/backend-cs/internal/application/report"
	"github.com/nicholasloureiro/backend-cs/internal/domain/reconcile"
	infrapdf "github.com/nicholasloureiro/backend-cs/internal/infrastructure/pdf"
	"github.com/nicholasloureiro/backend-cs/internal/infrastructure/pdftext"
	"github.com/nicholasloureiro/backend-cs/internal/infrastructure/xlsx"
	"github.com/nicholasloureiro/backend-cs/internal/infrastructure/xmlexport"
	"github.com/nicholasloureiro/backend-cs/pkg/config"
	"github.com/nicholasloureiro/backend-cs/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	// stdout queda para el resumen JSON
	log := logger.NewWriter(os.Stderr, cfg.Log.Level)

	uc := report.NewUseCase(pdftext.NewExtractor(log), xlsx.NewReader(), reconcile.NewEngine(cfg.Report.RankingStoreCode), log)
	exporter := report.NewExporter(cfg.Report.DefaultFormat,
		xlsx.NewRenderer(),
		infrapdf.NewRenderer(),
		xmlexport.NewRenderer(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(uc, exporter, log, cfg.App.Version).Execute(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Error().Err(err).Msg("relatorio")
		stop()
		os.Exit(1)
	}
}
