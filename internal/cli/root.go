// Package cli holds the fabrica terminal commands. Every command works on the
// same ledger database the HTTP server uses.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"fabrica-backend/internal/config"
	"fabrica-backend/internal/database"
	"fabrica-backend/internal/ledger"
	"fabrica-backend/internal/logging"
	"fabrica-backend/internal/report"
	"fabrica-backend/internal/share"

	"github.com/charmbracelet/glamour"
	md "github.com/nao1215/markdown"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *ledger.Store
	reports *report.Service
	close   func() error
}

// openApp is the single place the ledger and its collaborators are built.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	store := ledger.New(db, ledger.WithLogger(log))
	if cfg.SeedSampleData {
		if _, err := store.SeedSampleProducts(ctx); err != nil {
			log.Warn("sample data not loaded", zap.Error(err))
		}
	}
	reports := report.NewService(store,
		report.Output{Dir: cfg.ReportDir, AppTitle: cfg.AppTitle},
		cfg.ReportFormat, share.New(cfg, log), log)

	return &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		reports: reports,
		close: func() error {
			_ = log.Sync()
			return sqlDB.Close()
		},
	}, nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "fabrica",
		Short:         "Libro de la fábrica: productos, producción, ventas y gastos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("style", "", "Render tables with glamour using this style (dark, light, notty)")

	root.AddCommand(
		newProductsCmd(a),
		newProductionCmd(a),
		newSalesCmd(a),
		newExpensesCmd(a),
		newBalanceCmd(a),
		newMovementsCmd(a),
		newSummaryCmd(a),
		newReportCmd(a),
		newSeedCmd(a),
	)
	return root
}

// Execute opens the ledger, runs the command line and releases the database
// afterwards.
func Execute(ctx context.Context, args []string) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.close() }()

	root := newRootCmd(a)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// printTable writes rows as a Markdown table, rendered through glamour when
// --style is set.
func printTable(cmd *cobra.Command, header []string, rows [][]string) error {
	var buf bytes.Buffer
	m := md.NewMarkdown(&buf)
	m.Table(md.TableSet{Header: header, Rows: rows})
	return printMarkdown(cmd, m.String())
}

func printMarkdown(cmd *cobra.Command, text string) error {
	style, _ := cmd.Flags().GetString("style")
	return writeMarkdown(cmd.OutOrStdout(), text, style)
}

func writeMarkdown(w io.Writer, text, style string) error {
	if style != "" {
		out, err := glamour.Render(text, style)
		if err != nil {
			return fmt.Errorf("render preview: %w", err)
		}
		text = out
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
