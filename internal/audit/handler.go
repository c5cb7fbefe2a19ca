package audit

import (
	"context"
	"strconv"

	"fabrica-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Lister is the read side of the audit trail.
type Lister interface {
	AuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, error)
}

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	AfterData   string             `json:"after_data"`
}

// GET /api/audit-logs?entity_type=expense&entity_id=1&limit=20
func ListAuditLogsHandler(store Lister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := Filter{EntityType: c.Query("entity_type")}

		if s := c.Query("entity_id"); s != "" {
			id, err := strconv.ParseUint(s, 10, 64)
			if err != nil || id == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "entity_id inválido")
			}
			f.EntityID = uint(id)
		}
		if s := c.Query("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "limit inválido")
			}
			f.Limit = n
		}

		logs, err := store.AuditLogs(c.UserContext(), f)
		if err != nil {
			return err
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   models.FormatTimestamp(l.CreatedAt),
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				AfterData:   l.AfterData,
			})
		}
		return c.JSON(resp)
	}
}
