package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Resumen"

// XLSXRenderer writes the document as a single printable worksheet.
type XLSXRenderer struct {
	Output
}

func (r XLSXRenderer) Render(doc Document) (string, error) {
	path, err := r.target(doc, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := r.fill(f, doc); err != nil {
		return "", fmt.Errorf("%w: xlsx: %v", ErrRenderFailure, err)
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("%w: xlsx: %v", ErrRenderFailure, err)
	}
	return path, nil
}

func (r XLSXRenderer) fill(f *excelize.File, doc Document) error {
	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheet, "A", "A", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheet, "B", "B", 28); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "212529"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: "007BFF"},
	})
	if err != nil {
		return err
	}
	valueStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F0F0F0"}},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return err
	}
	noteStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 8, Color: "808080"},
	})
	if err != nil {
		return err
	}

	labelStyles := map[Tone]int{}
	labelStyle := func(t Tone) (int, error) {
		if id, ok := labelStyles[t]; ok {
			return id, nil
		}
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{t.Color().Hex()}},
			Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		})
		labelStyles[t] = id
		return id, err
	}

	row := 1
	put := func(col, value string, style int) error {
		cell := fmt.Sprintf("%s%d", col, row)
		if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
			return err
		}
		return f.SetCellStyle(xlsxSheet, cell, cell, style)
	}
	merged := func(value string, style int) error {
		a, b := fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row)
		if err := f.MergeCell(xlsxSheet, a, b); err != nil {
			return err
		}
		return put("A", value, style)
	}

	if err := merged(doc.Title, titleStyle); err != nil {
		return err
	}
	row++
	if err := merged("Reporte Generado: "+doc.GeneratedAt.Format("02/01/2006 15:04"), noteStyle); err != nil {
		return err
	}
	row += 2

	for _, sec := range doc.Sections {
		if err := put("A", sec.Title, sectionStyle); err != nil {
			return err
		}
		row++
		for _, rw := range sec.Rows {
			style, err := labelStyle(rw.Tone)
			if err != nil {
				return err
			}
			if err := put("A", rw.Label, style); err != nil {
				return err
			}
			if err := put("B", rw.Value, valueStyle); err != nil {
				return err
			}
			row++
		}
		row++
	}

	for _, note := range doc.Notes {
		if err := merged(note, noteStyle); err != nil {
			return err
		}
		row++
	}

	return f.SetHeaderFooter(xlsxSheet, &excelize.HeaderFooterOptions{
		OddHeader: "&C&B" + r.title(doc),
		OddFooter: "&CPágina &P",
	})
}
