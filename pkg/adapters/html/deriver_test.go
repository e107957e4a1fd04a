package html

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriver_Extension(t *testing.T) {
	assert.Equal(t, ".html", NewDeriver().Extension())
}

func TestDeriveBinary_CompleteDocument(t *testing.T) {
	d := NewDeriver()

	out, err := d.DeriveBinary(context.Background(), "# CS101 - Intro\n\n**Instructor:** Dr. A\n")
	require.NoError(t, err)

	html := string(out)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.True(t, strings.HasSuffix(html, "</html>\n"))
	assert.Contains(t, html, "<h1>CS101 - Intro</h1>")
	assert.Contains(t, html, "<strong>Instructor:</strong>")
	assert.Contains(t, html, "size: A4")
}

func TestDeriveBinary_GFMTables(t *testing.T) {
	d := NewDeriver()

	out, err := d.DeriveBinary(context.Background(), "| Week | Topic |\n|------|-------|\n| 1 | Basics |\n")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<table>")
}

func TestDeriveBinary_Deterministic(t *testing.T) {
	d := NewDeriver()
	input := "# Title\n\nSome *emphasis* and a [link](https://example.com).\n"

	first, err := d.DeriveBinary(context.Background(), input)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := d.DeriveBinary(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
