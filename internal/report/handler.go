package report

import (
	"context"
	"os"
	"path/filepath"

	"fabrica-backend/internal/httpx"
	"fabrica-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Archive is the read side of the generated report history.
type Archive interface {
	ListReports(ctx context.Context, limit int) ([]models.MonthlyReport, error)
	Report(ctx context.Context, id uint) (models.MonthlyReport, error)
}

type GenerateReportRequest struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Format string `json:"format"` // pdf | xlsx | md | html
	Share  bool   `json:"share"`
}

type GenerateReportResponse struct {
	Report       models.MonthlyReport `json:"report"`
	Document     Document             `json:"document"`
	Shared       bool                 `json:"shared"`
	ShareMessage string               `json:"share_message,omitempty"`
}

type ReportDetailResponse struct {
	Report   models.MonthlyReport `json:"report"`
	Document *Document            `json:"document,omitempty"`
}

// POST /api/reports/monthly
func GenerateMonthlyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GenerateReportRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
			}
		}

		p, err := httpx.Period(body.Year, body.Month, svc.Now())
		if err != nil {
			return err
		}

		res, err := svc.Generate(c.UserContext(), p, body.Format)
		if err != nil {
			return err
		}

		resp := GenerateReportResponse{Report: res.Report, Document: res.Document}
		if body.Share {
			if err := svc.Share(c.UserContext(), res.Path); err != nil {
				resp.ShareMessage = "No se pudo compartir el reporte: " + err.Error()
			} else {
				resp.Shared = true
			}
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// GET /api/reports?limit=20
func ListReportsHandler(archive Archive) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := httpx.QueryLimit(c)
		if err != nil {
			return err
		}
		reports, err := archive.ListReports(c.UserContext(), limit)
		if err != nil {
			return err
		}
		return c.JSON(reports)
	}
}

// GET /api/reports/:id
func GetReportHandler(archive Archive) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		r, err := archive.Report(c.UserContext(), id)
		if err != nil {
			return err
		}

		resp := ReportDetailResponse{Report: r}
		if doc, err := Snapshot(r); err == nil {
			resp.Document = &doc
		}
		return c.JSON(resp)
	}
}

// GET /api/reports/:id/file
func DownloadReportHandler(archive Archive) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		r, err := archive.Report(c.UserContext(), id)
		if err != nil {
			return err
		}

		if _, err := os.Stat(r.FilePath); err != nil {
			return fiber.NewError(fiber.StatusGone, "El archivo del reporte ya no existe")
		}
		return c.Download(r.FilePath, filepath.Base(r.FilePath))
	}
}
