package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer produces an A4 portrait document with a fixed header and a
// page-numbered footer.
type PDFRenderer struct {
	Output
}

func (r PDFRenderer) Render(doc Document) (string, error) {
	path, err := r.target(doc, "pdf")
	if err != nil {
		return "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator(r.title(doc), true)

	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(0, 10, tr(r.title(doc)), "", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(108, 117, 125)
		pdf.CellFormat(0, 5, tr("Reporte Generado: "+doc.GeneratedAt.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")

		pdf.Ln(5)
		pdf.SetDrawColor(0, 123, 255)
		pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	chapter := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 123, 255)
		pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	chapter(doc.Title)
	for _, sec := range doc.Sections {
		chapter(sec.Title)
		for _, row := range sec.Rows {
			c := row.Tone.Color()
			pdf.SetFillColor(c.R, c.G, c.B)
			pdf.SetTextColor(255, 255, 255)
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(90, 8, tr("  "+row.Label), "", 0, "L", true, 0, "")

			pdf.SetFillColor(240, 240, 240)
			pdf.SetTextColor(33, 37, 41)
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(90, 8, tr(row.Value+"  "), "", 1, "R", true, 0, "")
			pdf.Ln(3)
		}
		pdf.Ln(5)
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	for _, note := range doc.Notes {
		pdf.CellFormat(0, 5, tr(note), "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrRenderFailure, err)
	}
	return path, nil
}
