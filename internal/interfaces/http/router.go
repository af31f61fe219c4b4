package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nicholasloureiro/backend-cs/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Reports   *ReportHandler
	AppName   string
	Version   string
	Formats   []string
	JWTSecret string // vacío = rutas de reportes públicas
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(dto.InfoResponse{
			Name:    deps.AppName,
			Version: deps.Version,
			Docs:    "/docs",
			Formats: deps.Formats,
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "healthy", Version: deps.Version})
	})

	api := app.Group("/api")

	// Reportes (protegidos sólo si hay JWT_SECRET)
	var reports fiber.Router
	if deps.JWTSecret != "" {
		reports = api.Group("/reports", AuthMiddleware(deps.JWTSecret), RequireRole(RoleAdmin, RoleGerente))
	} else {
		reports = api.Group("/reports")
	}
	reports.Post("/process", deps.Reports.Process)
	reports.Post("/transform", deps.Reports.Transform)
	reports.Post("/compare", deps.Reports.Compare)
}
