// Package httpx holds the request parsing shared by the fiber handlers.
package httpx

import (
	"strconv"
	"time"

	"fabrica-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

// ParamID reads a positive numeric route parameter.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID inválido")
	}
	return uint(id), nil
}

// QueryLimit reads ?limit=, 0 when absent so the store applies its default.
func QueryLimit(c *fiber.Ctx) (int, error) {
	s := c.Query("limit")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "limit inválido")
	}
	return n, nil
}

// Period builds a month from year and month, falling back to the month of
// now for whichever is zero.
func Period(year, month int, now time.Time) (ledger.Period, error) {
	p := ledger.CurrentPeriod(now)
	if year != 0 {
		p.Year = year
	}
	if month != 0 {
		p.Month = time.Month(month)
	}
	if err := p.Validate(); err != nil {
		return ledger.Period{}, fiber.NewError(fiber.StatusBadRequest, "Período inválido")
	}
	return p, nil
}

// QueryPeriod reads ?year=&month=.
func QueryPeriod(c *fiber.Ctx, now time.Time) (ledger.Period, error) {
	year, err := queryInt(c, "year")
	if err != nil {
		return ledger.Period{}, err
	}
	month, err := queryInt(c, "month")
	if err != nil {
		return ledger.Period{}, err
	}
	return Period(year, month, now)
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	s := c.Query(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" inválido")
	}
	return n, nil
}
