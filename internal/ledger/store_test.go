package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fabrica-backend/internal/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect("sqlite", filepath.Join(t.TempDir(), "fabrica.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestStore(t *testing.T) (*Store, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2024, time.March, 15, 10, 30, 0, 0, time.Local)}
	return New(newTestDB(t), WithClock(clock.Now)), clock
}

func addProduct(t *testing.T, s *Store, name, code string, stock int) uint {
	t.Helper()
	id, err := s.AddProduct(context.Background(), NewProduct{
		Name:      name,
		Code:      code,
		Stock:     stock,
		SalePrice: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	return id
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
