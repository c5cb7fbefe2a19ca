package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"fabrica-backend/internal/audit"
	"fabrica-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestScenario_ProductionSaleExpenseSummary(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()

	a := addProduct(t, s, "A", "P1", 0)

	_, err := s.RecordProduction(ctx, NewProduction{ProductID: a, Quantity: 10, TotalCost: dec(5000)})
	require.NoError(t, err)
	p, err := s.Product(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)

	clock.Advance(time.Minute)
	sale, err := s.RecordSale(ctx, NewSale{ProductID: a, Quantity: 4, UnitPrice: dec(2000), Customer: "Bob"})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(dec(8000)), "total = %s", sale.Total)

	p, err = s.Product(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 6, p.Stock)

	bal, err := s.CurrentBalance(ctx)
	require.NoError(t, err)
	assert.True(t, bal.Equal(dec(8000)), "balance = %s", bal)

	clock.Advance(time.Minute)
	_, err = s.RecordExpense(ctx, NewExpense{Concept: "Rent", Amount: dec(3000)})
	require.NoError(t, err)

	bal, err = s.CurrentBalance(ctx)
	require.NoError(t, err)
	assert.True(t, bal.Equal(dec(5000)), "balance = %s", bal)

	sum, err := s.MonthlySummary(ctx, CurrentPeriod(clock.Now()))
	require.NoError(t, err)
	assert.True(t, sum.TotalSales.Equal(dec(8000)), "sales = %s", sum.TotalSales)
	assert.True(t, sum.TotalExpenses.Equal(dec(3000)), "expenses = %s", sum.TotalExpenses)
	assert.True(t, sum.Balance.Equal(dec(5000)), "balance = %s", sum.Balance)
	assert.Equal(t, int64(10), sum.UnitsProduced)
	assert.True(t, sum.CostPerUnit.Equal(dec(300)), "cost per unit = %s", sum.CostPerUnit)
	assert.True(t, sum.ProductionCost.Equal(dec(5000)), "production cost = %s", sum.ProductionCost)

	movements, err := s.ListMovements(ctx, 0)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, models.MovementExpense, movements[0].Type)
	assert.Equal(t, "Rent", movements[0].Concept)
	assert.Equal(t, models.MovementIncome, movements[1].Type)
	assert.Equal(t, "Sale - Bob", movements[1].Concept)
}

func TestBalanceEqualsIncomeMinusExpenses(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()
	a := addProduct(t, s, "A", "P1", 100)

	type step struct {
		sale    bool
		qty     int
		amount  int64
		concept string
	}
	steps := []step{
		{sale: true, qty: 2, amount: 1500},
		{amount: 4000, concept: "Luz"},
		{sale: true, qty: 1, amount: 999},
		{amount: 250, concept: "Agua"},
		{amount: 10000, concept: "Alquiler"},
		{sale: true, qty: 7, amount: 3200},
	}

	want := decimal.Zero
	for _, st := range steps {
		clock.Advance(time.Second)
		if st.sale {
			_, err := s.RecordSale(ctx, NewSale{ProductID: a, Quantity: st.qty, UnitPrice: dec(st.amount)})
			require.NoError(t, err)
			want = want.Add(dec(st.amount).Mul(decimal.NewFromInt(int64(st.qty))))
		} else {
			_, err := s.RecordExpense(ctx, NewExpense{Concept: st.concept, Amount: dec(st.amount)})
			require.NoError(t, err)
			want = want.Sub(dec(st.amount))
		}

		got, err := s.CurrentBalance(ctx)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "want %s got %s", want, got)
	}

	movements, err := s.ListMovements(ctx, 0)
	require.NoError(t, err)
	require.Len(t, movements, len(steps))
	// newest first: each balance is the previous one plus the signed amount
	for i := 0; i < len(movements)-1; i++ {
		prev := movements[i+1].Balance
		assert.True(t, prev.Add(movements[i].Signed()).Equal(movements[i].Balance))
	}
	assert.True(t, movements[len(movements)-1].Balance.Equal(movements[len(movements)-1].Signed()))
}

func TestCurrentBalance_EmptyLedger(t *testing.T) {
	s, _ := newTestStore(t)
	bal, err := s.CurrentBalance(context.Background())
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestRecordProduction_OnlyTouchesTargetProduct(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := addProduct(t, s, "A", "P1", 3)
	b := addProduct(t, s, "B", "P2", 7)

	entry, err := s.RecordProduction(ctx, NewProduction{ProductID: b, Quantity: 5, TotalCost: dec(1200)})
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)

	pa, err := s.Product(ctx, a)
	require.NoError(t, err)
	pb, err := s.Product(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 3, pa.Stock)
	assert.Equal(t, 12, pb.Stock)

	// production never touches the cash ledger
	movements, err := s.ListMovements(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestRecordProduction_Invalid(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := addProduct(t, s, "A", "P1", 3)

	for name, in := range map[string]NewProduction{
		"zero quantity":     {ProductID: a, Quantity: 0},
		"negative quantity": {ProductID: a, Quantity: -2},
		"negative cost":     {ProductID: a, Quantity: 1, TotalCost: dec(-1)},
		"missing product":   {Quantity: 1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.RecordProduction(ctx, in)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}

	p, err := s.Product(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
}

func TestRecordSale_InvalidLeavesNoTrace(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := addProduct(t, s, "A", "P1", 10)

	cases := []NewSale{
		{ProductID: a, Quantity: 0, UnitPrice: dec(100)},
		{ProductID: a, Quantity: -1, UnitPrice: dec(100)},
		{ProductID: a, Quantity: 1, UnitPrice: decimal.Zero},
		{ProductID: a, Quantity: 1, UnitPrice: dec(-100)},
	}
	for _, in := range cases {
		_, err := s.RecordSale(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}

	p, err := s.Product(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)

	sales, err := s.ListSales(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)

	movements, err := s.ListMovements(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestRecordSale_UnknownProduct(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.RecordSale(ctx, NewSale{ProductID: 42, Quantity: 1, UnitPrice: dec(100)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.RecordProduction(ctx, NewProduction{ProductID: 42, Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	movements, err := s.ListMovements(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestRecordSale_DefaultsAndNegativeStock(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := addProduct(t, s, "A", "P1", 1)

	sale, err := s.RecordSale(ctx, NewSale{ProductID: a, Quantity: 3, UnitPrice: dec(500), Customer: "   "})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCustomer, sale.Customer)

	p, err := s.Product(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, -2, p.Stock)

	movements, err := s.ListMovements(ctx, 1)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, models.MovementIncome, movements[0].Type)
	assert.Equal(t, "Sale - Cliente General", movements[0].Concept)
	assert.Equal(t, "sale", movements[0].SourceType)
	assert.Equal(t, sale.ID, movements[0].SourceID)
	assert.True(t, movements[0].Amount.Equal(dec(1500)))
}

func TestRecordExpense(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.RecordExpense(ctx, NewExpense{Concept: "", Amount: dec(10)})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.RecordExpense(ctx, NewExpense{Concept: "Luz", Amount: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	e, err := s.RecordExpense(ctx, NewExpense{Concept: "Luz", Amount: dec(2500), Description: "factura marzo"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultExpenseCategory, e.Category)

	movements, err := s.ListMovements(ctx, 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, models.MovementExpense, movements[0].Type)
	assert.Equal(t, "Luz", movements[0].Concept)
	assert.True(t, movements[0].Balance.Equal(dec(-2500)))

	expenses, err := s.ListExpenses(ctx, 0)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "factura marzo", expenses[0].Description)
}

func TestMonthlySummary_EmptyMonth(t *testing.T) {
	s, _ := newTestStore(t)

	sum, err := s.MonthlySummary(context.Background(), Period{Year: 2024, Month: time.March})
	require.NoError(t, err)
	assert.True(t, sum.TotalSales.IsZero())
	assert.True(t, sum.TotalExpenses.IsZero())
	assert.True(t, sum.Balance.IsZero())
	assert.Zero(t, sum.UnitsProduced)
	assert.True(t, sum.CostPerUnit.IsZero())
	assert.True(t, sum.ProductionCost.IsZero())
}

func TestMonthlySummary_OnlyCountsItsMonth(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()
	a := addProduct(t, s, "A", "P1", 100)

	clock.t = time.Date(2024, time.February, 29, 23, 59, 59, 0, time.Local)
	_, err := s.RecordSale(ctx, NewSale{ProductID: a, Quantity: 1, UnitPrice: dec(700)})
	require.NoError(t, err)

	clock.t = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	_, err = s.RecordSale(ctx, NewSale{ProductID: a, Quantity: 1, UnitPrice: dec(300)})
	require.NoError(t, err)

	clock.t = time.Date(2024, time.April, 1, 0, 0, 0, 0, time.Local)
	_, err = s.RecordExpense(ctx, NewExpense{Concept: "Luz", Amount: dec(50)})
	require.NoError(t, err)

	feb, err := s.MonthlySummary(ctx, Period{Year: 2024, Month: time.February})
	require.NoError(t, err)
	assert.True(t, feb.TotalSales.Equal(dec(700)))

	mar, err := s.MonthlySummary(ctx, Period{Year: 2024, Month: time.March})
	require.NoError(t, err)
	assert.True(t, mar.TotalSales.Equal(dec(300)))
	assert.True(t, mar.TotalExpenses.IsZero())

	_, err = s.MonthlySummary(ctx, Period{Year: 2024, Month: 13})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMonthlySummary_NoProductionMeansZeroCostPerUnit(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()

	_, err := s.RecordExpense(ctx, NewExpense{Concept: "Alquiler", Amount: dec(9000)})
	require.NoError(t, err)

	sum, err := s.MonthlySummary(ctx, CurrentPeriod(clock.Now()))
	require.NoError(t, err)
	assert.True(t, sum.Balance.Equal(dec(-9000)))
	assert.True(t, sum.CostPerUnit.IsZero())
}

func TestAddProduct(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	addProduct(t, s, "Zeta", "Z1", 0)
	addProduct(t, s, "Alfa", "A1", 0)

	_, err := s.AddProduct(ctx, NewProduct{Name: "Otro", Code: "Z1"})
	assert.ErrorIs(t, err, ErrConstraintViolation)

	_, err = s.AddProduct(ctx, NewProduct{Name: "", Code: "X"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.AddProduct(ctx, NewProduct{Name: "X", Code: " "})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Alfa", products[0].Name)
	assert.Equal(t, "Zeta", products[1].Name)
	assert.Equal(t, "2024-03-15 10:30:00", products[0].CreatedAt.String())

	_, err = s.Product(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdjustStock(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := addProduct(t, s, "A", "P1", 5)

	p, err := s.AdjustStock(ctx, a, -2)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)

	_, err = s.AdjustStock(ctx, a, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.AdjustStock(ctx, 404, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSales_NewestFirstWithProductName(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()
	a := addProduct(t, s, "Ladrillo", "L1", 100)

	for i := 1; i <= 3; i++ {
		clock.Advance(time.Hour)
		_, err := s.RecordSale(ctx, NewSale{ProductID: a, Quantity: i, UnitPrice: dec(100)})
		require.NoError(t, err)
	}

	sales, err := s.ListSales(ctx, 2)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, 3, sales[0].Quantity)
	assert.Equal(t, 2, sales[1].Quantity)
	assert.Equal(t, "Ladrillo", sales[0].ProductName)
}

func TestListProduction(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := context.Background()
	a := addProduct(t, s, "Teja", "T1", 0)

	_, err := s.RecordProduction(ctx, NewProduction{ProductID: a, Quantity: 4})
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = s.RecordProduction(ctx, NewProduction{ProductID: a, Quantity: 9})
	require.NoError(t, err)

	entries, err := s.ListProduction(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 9, entries[0].Quantity)
	assert.Equal(t, "Teja", entries[0].ProductName)
}

func TestRecordSale_RollsBackWhenMovementFails(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := addProduct(t, s, "A", "P1", 10)

	err := s.db.Callback().Create().Before("gorm:create").Register("test:fail_movements", func(tx *gorm.DB) {
		if tx.Statement.Table == "ledger_movements" {
			_ = tx.AddError(errors.New("disk full"))
		}
	})
	require.NoError(t, err)

	_, err = s.RecordSale(ctx, NewSale{ProductID: a, Quantity: 4, UnitPrice: dec(2000)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	p, err := s.Product(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)

	sales, err := s.ListSales(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)

	_, err = s.RecordExpense(ctx, NewExpense{Concept: "Luz", Amount: dec(10)})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	expenses, err := s.ListExpenses(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	logs, err := s.AuditLogs(ctx, audit.Filter{EntityType: "sale"})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestRecordProduction_RollsBackWhenLaterStepFails(t *testing.T) {
	tests := []struct {
		name     string
		register func(db *gorm.DB) error
	}{
		{
			name: "audit write",
			register: func(db *gorm.DB) error {
				return db.Callback().Create().Before("gorm:create").Register("test:fail_audit", func(tx *gorm.DB) {
					if tx.Statement.Table == "audit_logs" {
						_ = tx.AddError(errors.New("disk full"))
					}
				})
			},
		},
		{
			name: "stock update",
			register: func(db *gorm.DB) error {
				return db.Callback().Update().Before("gorm:update").Register("test:fail_stock", func(tx *gorm.DB) {
					if tx.Statement.Table == "products" {
						_ = tx.AddError(errors.New("disk full"))
					}
				})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			ctx := context.Background()
			a := addProduct(t, s, "A", "P1", 10)
			require.NoError(t, tt.register(s.db))

			_, err := s.RecordProduction(ctx, NewProduction{ProductID: a, Quantity: 5, TotalCost: dec(1000)})
			assert.ErrorIs(t, err, ErrStorageUnavailable)

			p, err := s.Product(ctx, a)
			require.NoError(t, err)
			assert.Equal(t, 10, p.Stock)

			var entries int64
			require.NoError(t, s.db.Model(&models.ProductionEntry{}).Count(&entries).Error)
			assert.Zero(t, entries)

			logs, err := s.AuditLogs(ctx, audit.Filter{EntityType: "production"})
			require.NoError(t, err)
			assert.Empty(t, logs)
		})
	}
}

func TestStorageUnavailable(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = s.CurrentBalance(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = s.RecordExpense(ctx, NewExpense{Concept: "Luz", Amount: dec(10)})
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = s.MonthlySummary(ctx, Period{Year: 2024, Month: time.March})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestAuditTrailWrittenWithMutations(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := addProduct(t, s, "A", "P1", 10)

	sale, err := s.RecordSale(ctx, NewSale{ProductID: a, Quantity: 1, UnitPrice: dec(10)})
	require.NoError(t, err)

	logs, err := s.AuditLogs(ctx, audit.Filter{EntityType: "sale", EntityID: sale.ID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditActionCreate, logs[0].Action)
	assert.Contains(t, logs[0].AfterData, `"customer":"Cliente General"`)

	all, err := s.AuditLogs(ctx, audit.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "sale", all[0].EntityType)
}

func TestSeedSampleProducts(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := New(newTestDB(t), WithLogger(zap.New(core)))
	ctx := context.Background()

	n, err := s.SeedSampleProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.SeedSampleProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "PROD-001", products[0].Code)
	assert.Equal(t, 100, products[0].Stock)

	// one entry for the seeding run, none for the no-op
	seeded := logs.FilterMessage("sample products seeded").All()
	require.Len(t, seeded, 1)
	assert.EqualValues(t, 3, seeded[0].ContextMap()["count"])
}

func TestImportProducts_AllOrNothing(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	addProduct(t, s, "Existente", "E1", 0)

	_, err := s.ImportProducts(ctx, []NewProduct{
		{Name: "Uno", Code: "U1"},
		{Name: "Dos", Code: "U1"},
	})
	assert.ErrorIs(t, err, ErrConstraintViolation)

	_, err = s.ImportProducts(ctx, []NewProduct{
		{Name: "Uno", Code: "U1"},
		{Name: "Choca", Code: "E1"},
	})
	assert.ErrorIs(t, err, ErrConstraintViolation)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	n, err := s.ImportProducts(ctx, []NewProduct{
		{Name: "Uno", Code: "U1", SalePrice: dec(10)},
		{Name: "Dos", Code: "U2", Stock: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
