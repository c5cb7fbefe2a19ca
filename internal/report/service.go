package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fabrica-backend/internal/ledger"
	"fabrica-backend/internal/models"
	"fabrica-backend/internal/share"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Source is the slice of the ledger the report service reads and archives to.
type Source interface {
	MonthlySummary(ctx context.Context, p ledger.Period) (ledger.MonthlySummary, error)
	CurrentBalance(ctx context.Context) (decimal.Decimal, error)
	SaveReport(ctx context.Context, r *models.MonthlyReport) error
}

type Service struct {
	src           Source
	out           Output
	defaultFormat string
	sharer        share.Sharer
	now           func() time.Time
	log           *zap.Logger
}

type Result struct {
	Path     string               `json:"path"`
	Report   models.MonthlyReport `json:"report"`
	Document Document             `json:"document"`
}

func NewService(src Source, out Output, defaultFormat string, sharer share.Sharer, log *zap.Logger) *Service {
	if sharer == nil {
		sharer = share.NopSharer{Log: log}
	}
	return &Service{
		src:           src,
		out:           out,
		defaultFormat: defaultFormat,
		sharer:        sharer,
		now:           time.Now,
		log:           log,
	}
}

// WithClock replaces the generation clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Now() time.Time {
	return s.now()
}

// Document builds the document for p without writing anything.
func (s *Service) Document(ctx context.Context, p ledger.Period) (Document, error) {
	doc, _, _, err := s.build(ctx, p)
	return doc, err
}

func (s *Service) build(ctx context.Context, p ledger.Period) (Document, ledger.MonthlySummary, decimal.Decimal, error) {
	sum, err := s.src.MonthlySummary(ctx, p)
	if err != nil {
		return Document{}, sum, decimal.Zero, err
	}
	balance, err := s.src.CurrentBalance(ctx)
	if err != nil {
		return Document{}, sum, decimal.Zero, err
	}

	doc := Build(sum, balance)
	doc.AppTitle = s.out.AppTitle
	doc.GeneratedAt = s.now().Truncate(time.Second)
	return doc, sum, balance, nil
}

// Generate renders the monthly document for p in format (the configured
// default when empty) and archives it.
func (s *Service) Generate(ctx context.Context, p ledger.Period, format string) (Result, error) {
	if format == "" {
		format = s.defaultFormat
	}
	renderer, err := NewRenderer(format, s.out)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ledger.ErrInvalidArgument, err)
	}

	doc, sum, balance, err := s.build(ctx, p)
	if err != nil {
		return Result{}, err
	}

	path, err := renderer.Render(doc)
	if err != nil {
		if !errors.Is(err, ErrRenderFailure) {
			err = fmt.Errorf("%w: %v", ErrRenderFailure, err)
		}
		return Result{}, err
	}

	snapshot, err := json.Marshal(doc)
	if err != nil {
		return Result{}, fmt.Errorf("%w: snapshot: %v", ErrRenderFailure, err)
	}

	rep := models.MonthlyReport{
		Year:               p.Year,
		Month:              int(p.Month),
		Format:             format,
		FilePath:           path,
		GeneratedAt:        models.NewTimestamp(doc.GeneratedAt),
		SalesTotal:         sum.TotalSales,
		ExpensesTotal:      sum.TotalExpenses,
		Balance:            sum.Balance,
		UnitsProduced:      sum.UnitsProduced,
		CostPerUnit:        sum.CostPerUnit,
		AccumulatedBalance: balance,
		ReportData:         string(snapshot),
	}
	if err := s.src.SaveReport(ctx, &rep); err != nil {
		return Result{}, err
	}

	s.log.Info("monthly report generated",
		zap.Uint("report_id", rep.ID),
		zap.String("period", p.String()),
		zap.String("format", format),
		zap.String("path", path),
	)
	return Result{Path: path, Report: rep, Document: doc}, nil
}

// Share hands a generated document to the configured sharing mechanism.
// Failures are reported, never fatal: the document stays where it is.
func (s *Service) Share(ctx context.Context, path string) error {
	if err := s.sharer.Share(ctx, path); err != nil {
		s.log.Warn("document could not be shared", zap.String("path", path), zap.Error(err))
		if !errors.Is(err, share.ErrShareFailure) {
			err = fmt.Errorf("%w: %v", share.ErrShareFailure, err)
		}
		return err
	}
	return nil
}

// Snapshot decodes the document stored with an archived report.
func Snapshot(r models.MonthlyReport) (Document, error) {
	var doc Document
	if r.ReportData == "" {
		return doc, fmt.Errorf("report %d has no document snapshot", r.ID)
	}
	if err := json.Unmarshal([]byte(r.ReportData), &doc); err != nil {
		return doc, fmt.Errorf("report %d snapshot: %w", r.ID, err)
	}
	return doc, nil
}
