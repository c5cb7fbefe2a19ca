package report

import (
	"bytes"
	"fmt"
	"os"

	md "github.com/nao1215/markdown"
)

// Markdown renders doc as a Markdown string. The CLI preview and the HTML
// renderer are built on it.
func Markdown(doc Document, appTitle string) string {
	var buf bytes.Buffer
	m := md.NewMarkdown(&buf)

	if appTitle != "" {
		m.H1(appTitle)
		m.PlainText("Reporte Generado: " + doc.GeneratedAt.Format("02/01/2006 15:04"))
		m.H2(doc.Title)
	} else {
		m.H1(doc.Title)
	}

	for _, sec := range doc.Sections {
		m.H2(sec.Title)
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Concepto", "Valor"},
			Rows:      [][]string{},
		}
		for _, row := range sec.Rows {
			table.Rows = append(table.Rows, []string{row.Label, row.Value})
		}
		m.Table(table)
	}

	for _, note := range doc.Notes {
		m.PlainText(note)
	}
	return m.String()
}

type MarkdownRenderer struct {
	Output
}

func (r MarkdownRenderer) Render(doc Document) (string, error) {
	path, err := r.target(doc, "md")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(Markdown(doc, r.title(doc))), 0o644); err != nil {
		return "", fmt.Errorf("%w: markdown: %v", ErrRenderFailure, err)
	}
	return path, nil
}
