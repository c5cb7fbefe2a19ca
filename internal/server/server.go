// Package server assembles the fiber application and its routes.
package server

import (
	"errors"
	"strings"
	"time"

	"fabrica-backend/internal/audit"
	"fabrica-backend/internal/cashflow"
	"fabrica-backend/internal/config"
	"fabrica-backend/internal/dashboard"
	"fabrica-backend/internal/expense"
	"fabrica-backend/internal/financial"
	"fabrica-backend/internal/inventory"
	"fabrica-backend/internal/ledger"
	"fabrica-backend/internal/metrics"
	"fabrica-backend/internal/report"
	"fabrica-backend/internal/sales"
	"fabrica-backend/internal/share"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Deps struct {
	Config  *config.Config
	Store   *ledger.Store
	Reports *report.Service
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      d.Config.AppTitle,
		ErrorHandler: ErrorHandler(d.Log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: joinOrigins(d.Config.CORSOriginList()),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,OPTIONS",
	}))
	app.Use(requestLogger(d.Log))
	if d.Metrics != nil {
		app.Use(d.Metrics.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Productos
	api.Get("/products", inventory.ListProductsHandler(d.Store))
	api.Post("/products", inventory.CreateProductHandler(d.Store))
	api.Post("/products/import", inventory.ImportProductsHandler(d.Store))
	api.Get("/products/:id", inventory.GetProductHandler(d.Store))
	api.Post("/products/:id/stock-adjustments", inventory.AdjustStockHandler(d.Store))

	// Producción
	api.Get("/production", inventory.ListProductionHandler(d.Store))
	api.Post("/production", inventory.CreateProductionHandler(d.Store))

	// Ventas y gastos
	api.Get("/sales", sales.ListSalesHandler(d.Store))
	api.Post("/sales", sales.CreateSaleHandler(d.Store))
	api.Get("/expenses", expense.ListExpensesHandler(d.Store))
	api.Post("/expenses", expense.CreateExpenseHandler(d.Store))

	// Libro de caja
	api.Get("/ledger/movements", cashflow.ListMovementsHandler(d.Store))
	api.Get("/ledger/balance", cashflow.BalanceHandler(d.Store))
	api.Get("/financial-summary/monthly", financial.MonthlySummaryHandler(d.Store))

	// Panel
	api.Get("/dashboard", dashboard.PanelHandler(d.Store))
	api.Get("/dashboard/cash-chart", dashboard.CashChartHandler(d.Store))

	// Reportes
	api.Post("/reports/monthly", report.GenerateMonthlyHandler(d.Reports))
	api.Get("/reports", report.ListReportsHandler(d.Store))
	api.Get("/reports/:id", report.GetReportHandler(d.Store))
	api.Get("/reports/:id/file", report.DownloadReportHandler(d.Store))

	api.Get("/audit-logs", audit.ListAuditLogsHandler(d.Store))

	return app
}

// ErrorHandler maps domain errors onto HTTP statuses. Unexpected errors are
// logged and answered with a generic message.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		status, msg := classify(err)
		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("request_id", requestID(c)),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ledger.ErrInvalidArgument):
		return fiber.StatusBadRequest, "Datos inválidos: " + err.Error()
	case errors.Is(err, ledger.ErrConstraintViolation):
		return fiber.StatusConflict, "Registro duplicado: " + err.Error()
	case errors.Is(err, ledger.ErrNotFound):
		return fiber.StatusNotFound, "No encontrado: " + err.Error()
	case errors.Is(err, ledger.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable, "Base de datos no disponible"
	case errors.Is(err, report.ErrRenderFailure):
		return fiber.StatusInternalServerError, "No se pudo generar el documento"
	case errors.Is(err, share.ErrShareFailure):
		return fiber.StatusBadGateway, "No se pudo compartir el documento"
	}
	return fiber.StatusInternalServerError, "Error inesperado del servidor"
}

func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			// resolve the status before logging it
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		log.Debug("request",
			zap.String("request_id", requestID(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}

func joinOrigins(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}
