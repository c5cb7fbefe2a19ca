// Package ledger owns the factory's books: products, production runs,
// sales, expenses and the append-only cash ledger derived from them.
package ledger

import (
	"context"
	"time"

	"fabrica-backend/internal/audit"
	"fabrica-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 50

// Observer is notified after a compound operation commits.
type Observer interface {
	ProductionRecorded(units int)
	SaleRecorded(total decimal.Decimal)
	ExpenseRecorded(amount decimal.Decimal)
	BalanceChanged(balance decimal.Decimal)
}

type nopObserver struct{}

func (nopObserver) ProductionRecorded(int)          {}
func (nopObserver) SaleRecorded(decimal.Decimal)    {}
func (nopObserver) ExpenseRecorded(decimal.Decimal) {}
func (nopObserver) BalanceChanged(decimal.Decimal)  {}

type Store struct {
	db       *gorm.DB
	now      func() time.Time
	log      *zap.Logger
	obs      Observer
	validate *validator.Validate
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

func WithObserver(obs Observer) Option {
	return func(s *Store) { s.obs = obs }
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:       db,
		now:      time.Now,
		log:      zap.NewNop(),
		obs:      nopObserver{},
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now is the store's clock, truncated to the persisted precision.
func (s *Store) Now() time.Time {
	return models.NewTimestamp(s.now()).Time
}

func (s *Store) transaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	if err := s.db.WithContext(ctx).Transaction(fn); err != nil {
		return storageErr(op, err)
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}

func (s *Store) AuditLogs(ctx context.Context, f audit.Filter) ([]models.AuditLog, error) {
	logs, err := audit.List(ctx, s.db, f)
	if err != nil {
		return nil, storageErr("list audit logs", err)
	}
	return logs, nil
}
