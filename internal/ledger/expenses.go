package ledger

import (
	"context"
	"strings"

	"fabrica-backend/internal/audit"
	"fabrica-backend/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NewExpense struct {
	Concept     string          `json:"concept" validate:"required,max=150"`
	Amount      decimal.Decimal `json:"amount" validate:"dgt0"`
	Category    string          `json:"category" validate:"max=100"`
	Description string          `json:"description" validate:"max=500"`
}

// RecordExpense stores an expense and books it against the running balance.
func (s *Store) RecordExpense(ctx context.Context, in NewExpense) (models.Expense, error) {
	in.Concept = strings.TrimSpace(in.Concept)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.check(in); err != nil {
		return models.Expense{}, err
	}
	if in.Category == "" {
		in.Category = models.DefaultExpenseCategory
	}

	expense := models.Expense{
		Concept:     in.Concept,
		Amount:      in.Amount,
		Category:    in.Category,
		SpentAt:     models.NewTimestamp(s.now()),
		Description: in.Description,
	}

	var movement models.LedgerMovement
	err := s.transaction(ctx, "record expense", func(tx *gorm.DB) error {
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}

		var err error
		movement, err = appendMovement(tx, models.MovementExpense, expense.Concept, expense.Amount, expense.SpentAt,
			movementSource{kind: "expense", id: expense.ID})
		if err != nil {
			return err
		}

		return audit.Write(tx, audit.LogOptions{
			EntityType:  "expense",
			EntityID:    expense.ID,
			Action:      models.AuditActionCreate,
			Description: "Gasto registrado: " + expense.Concept,
			After:       expense,
		})
	})
	if err != nil {
		return models.Expense{}, err
	}

	s.obs.ExpenseRecorded(expense.Amount)
	s.obs.BalanceChanged(movement.Balance)
	s.log.Info("expense recorded",
		zap.Uint("expense_id", expense.ID),
		zap.String("category", expense.Category),
		zap.String("amount", expense.Amount.String()),
		zap.String("balance", movement.Balance.String()),
	)
	return expense, nil
}

func (s *Store) ListExpenses(ctx context.Context, limit int) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := s.db.WithContext(ctx).
		Order("spent_at DESC").
		Order("id DESC").
		Limit(normalizeLimit(limit)).
		Find(&expenses).Error
	if err != nil {
		return nil, storageErr("list expenses", err)
	}
	return expenses, nil
}
