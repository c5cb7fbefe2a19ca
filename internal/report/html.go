package report

import (
	"bytes"
	"fmt"
	"html"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var htmlMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTMLRenderer converts the Markdown rendering into a standalone page.
type HTMLRenderer struct {
	Output
}

func (r HTMLRenderer) Render(doc Document) (string, error) {
	path, err := r.target(doc, "html")
	if err != nil {
		return "", err
	}

	page, err := HTML(doc, r.title(doc))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return "", fmt.Errorf("%w: html: %v", ErrRenderFailure, err)
	}
	return path, nil
}

func HTML(doc Document, appTitle string) ([]byte, error) {
	var body bytes.Buffer
	if err := htmlMarkdown.Convert([]byte(Markdown(doc, appTitle)), &body); err != nil {
		return nil, fmt.Errorf("%w: html: %v", ErrRenderFailure, err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html lang=\"es\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n",
		html.EscapeString(doc.Title))
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
