package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Renderer writes a document to disk and returns the file path.
type Renderer interface {
	Render(doc Document) (string, error)
}

// Output is where rendered documents go and how their pages are headed.
type Output struct {
	Dir      string
	AppTitle string
}

// FileName is Reporte_Fabrica_{YYYY}_{MM}_{HHMMSS}.{ext}.
func FileName(doc Document, ext string) string {
	return fmt.Sprintf("Reporte_Fabrica_%04d_%02d_%s.%s",
		doc.Period.Year, int(doc.Period.Month), doc.GeneratedAt.Format("150405"), ext)
}

func (o Output) target(doc Document, ext string) (string, error) {
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrRenderFailure, o.Dir, err)
	}
	return filepath.Join(o.Dir, FileName(doc, ext)), nil
}

func (o Output) title(doc Document) string {
	if doc.AppTitle != "" {
		return doc.AppTitle
	}
	return o.AppTitle
}

// Formats lists the supported document formats.
var Formats = []string{"pdf", "xlsx", "md", "html"}

func NewRenderer(format string, out Output) (Renderer, error) {
	switch format {
	case "pdf":
		return PDFRenderer{Output: out}, nil
	case "xlsx":
		return XLSXRenderer{Output: out}, nil
	case "md":
		return MarkdownRenderer{Output: out}, nil
	case "html":
		return HTMLRenderer{Output: out}, nil
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}
