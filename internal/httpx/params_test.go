package httpx

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)

	p, err := Period(0, 0, now)
	require.NoError(t, err)
	assert.Equal(t, 2024, p.Year)
	assert.Equal(t, time.March, p.Month)

	p, err = Period(2023, 11, now)
	require.NoError(t, err)
	assert.Equal(t, 2023, p.Year)
	assert.Equal(t, time.November, p.Month)

	_, err = Period(2024, 13, now)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestQueryHelpers(t *testing.T) {
	app := fiber.New()
	app.Get("/x/:id", func(c *fiber.Ctx) error {
		id, err := ParamID(c, "id")
		if err != nil {
			return err
		}
		limit, err := QueryLimit(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": id, "limit": limit})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x/7?limit=3", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/x/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/x/1?limit=-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
