// Package html derives a standalone, print-styled HTML document from
// rendered markdown. It is the shipped implementation of the
// secondary-format deriver used at finalization.
package html

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Deriver implements ports.BinaryDeriver via goldmark. Conversion is a
// pure function of the input text, so derived bytes are reproducible.
type Deriver struct {
	md goldmark.Markdown
}

// NewDeriver creates a markdown-to-HTML deriver with GFM extensions.
func NewDeriver() *Deriver {
	return &Deriver{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Extension returns ".html".
func (d *Deriver) Extension() string { return ".html" }

// DeriveBinary converts rendered markdown into a complete HTML document.
func (d *Deriver) DeriveBinary(ctx context.Context, renderedText string) ([]byte, error) {
	var body bytes.Buffer
	if err := d.md.Convert([]byte(renderedText), &body); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}

	var doc bytes.Buffer
	doc.WriteString(documentHead)
	doc.Write(body.Bytes())
	doc.WriteString(documentTail)
	return doc.Bytes(), nil
}

// Print styling for educational documents: A4 page, serif body, ruled h1.
const documentHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
    @page {
        size: A4;
        margin: 2cm;
    }
    body {
        font-family: 'Georgia', 'Times New Roman', serif;
        font-size: 11pt;
        line-height: 1.6;
        color: #333;
    }
    h1 {
        font-size: 20pt;
        color: #1a1a1a;
        border-bottom: 2px solid #333;
        padding-bottom: 10px;
        margin-bottom: 20px;
    }
    h2 {
        font-size: 16pt;
        color: #2a2a2a;
        margin-top: 20px;
        margin-bottom: 10px;
    }
    h3 {
        font-size: 13pt;
        color: #3a3a3a;
    }
    strong {
        font-weight: bold;
    }
    ul, ol {
        margin-left: 20px;
    }
    code {
        background-color: #f4f4f4;
        padding: 2px 4px;
        font-family: 'Courier New', monospace;
    }
    pre {
        background-color: #f4f4f4;
        padding: 10px;
        border-left: 3px solid #ccc;
    }
</style>
</head>
<body>
`

const documentTail = `</body>
</html>
`
