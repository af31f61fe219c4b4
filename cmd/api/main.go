package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nicholasloureiro/backend-cs/internal/application/report"
	"github.com/nicholasloureiro/backend-cs/internal/domain/reconcile"
	infrapdf "github.com/nicholasloureiro/backend-cs/internal/infrastructure/pdf"
	"github.com/nicholasloureiro/backend-cs/internal/infrastructure/pdftext"
	"github.com/nicholasloureiro/backend-cs/internal/infrastructure/xlsx"
	"github.com/nicholasloureiro/backend-cs/internal/infrastructure/xmlexport"
	httpRouter "github.com/nicholasloureiro/backend-cs/internal/interfaces/http"
	"github.com/nicholasloureiro/backend-cs/pkg/config"
	"github.com/nicholasloureiro/backend-cs/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("ranking_store", cfg.Report.RankingStoreCode).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	engine := reconcile.NewEngine(cfg.Report.RankingStoreCode)
	reportUC := report.NewUseCase(pdftext.NewExtractor(log), xlsx.NewReader(), engine, log)
	exporter := report.NewExporter(cfg.Report.DefaultFormat,
		xlsx.NewRenderer(),
		infrapdf.NewRenderer(),
		xmlexport.NewRenderer(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit(),
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Disposition, " + httpRouter.HeaderStoreCode + ", " + httpRouter.HeaderRunID,
	}))

	// Swagger UI: http://localhost:<port>/docs (sólo si existe docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Relatório de Estoque API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Reports:   httpRouter.NewReportHandler(reportUC, exporter, log),
		AppName:   cfg.App.Name,
		Version:   cfg.App.Version,
		Formats:   exporter.Formats(),
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
