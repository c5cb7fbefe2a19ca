package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testDocument() Document {
	doc := Build(scenarioSummary(), decimal.NewFromInt(5000))
	doc.GeneratedAt = time.Date(2024, time.March, 31, 18, 5, 9, 0, time.Local)
	return doc
}

func testOutput(t *testing.T) Output {
	return Output{Dir: filepath.Join(t.TempDir(), "reports"), AppTitle: "GESTIÓN DE FÁBRICA"}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Reporte_Fabrica_2024_03_180509.pdf", FileName(testDocument(), "pdf"))
}

func TestPDFRenderer(t *testing.T) {
	out := testOutput(t)
	path, err := PDFRenderer{Output: out}.Render(testDocument())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out.Dir, "Reporte_Fabrica_2024_03_180509.pdf"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "%PDF-"))
}

func TestXLSXRenderer(t *testing.T) {
	path, err := XLSXRenderer{Output: testOutput(t)}.Render(testDocument())
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(xlsxSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "RESUMEN MENSUAL - Marzo 2024", title)

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	var found bool
	for _, r := range rows {
		if len(r) == 2 && r[0] == "TOTAL DE VENTAS" {
			found = true
			assert.Equal(t, "Gs. 8.000", r[1])
		}
	}
	assert.True(t, found, "sales row missing")
}

func TestMarkdownRenderer(t *testing.T) {
	path, err := MarkdownRenderer{Output: testOutput(t)}.Render(testDocument())
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, "# GESTIÓN DE FÁBRICA")
	assert.Contains(t, s, "## RESUMEN MENSUAL - Marzo 2024")
	assert.Contains(t, s, "## RESUMEN FINANCIERO")
	assert.Contains(t, s, "TOTAL DE VENTAS")
	assert.Contains(t, s, "Gs. 8.000")
	assert.Contains(t, s, "31/03/2024 18:05")
}

func TestHTMLRenderer(t *testing.T) {
	path, err := HTMLRenderer{Output: testOutput(t)}.Render(testDocument())
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, "<title>RESUMEN MENSUAL - Marzo 2024</title>")
	assert.Contains(t, s, "<table>")
	assert.Contains(t, s, "SALDO TOTAL")
}

func TestRender_UnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	out := Output{Dir: filepath.Join(blocker, "reports")}

	for _, format := range Formats {
		r, err := NewRenderer(format, out)
		require.NoError(t, err)
		_, err = r.Render(testDocument())
		assert.ErrorIs(t, err, ErrRenderFailure, format)
	}

	_, err := NewRenderer("docx", out)
	assert.Error(t, err)
}
