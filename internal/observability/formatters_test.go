package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/factcheck-agent/internal/types"
)

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(&types.FactCheckResult{
		Verdict:      "false",
		Explanation:  "No evidence supports this.",
		ArticleTitle: "Wall Myths",
		Sources: []types.Source{
			{URL: "https://nasa.gov", Snippet: "NASA analysis"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "FACT CHECK RESULT")
	assert.Contains(t, out, "Verdict: False")
	assert.Contains(t, out, "Article: Wall Myths")
	assert.Contains(t, out, "NASA analysis")
	assert.Contains(t, out, "https://nasa.gov")
}

func TestPrintResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintResult_ManySourcesTruncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sources := make([]types.Source, 8)
	for i := range sources {
		sources[i] = types.Source{Snippet: "Reference"}
	}
	p.PrintResult(&types.FactCheckResult{Verdict: "True", Explanation: "ok", Sources: sources})

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintExtractedArticle(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtractedArticle(&types.ExtractedArticle{
		Title:   "Headline",
		Content: strings.Repeat("text ", 100),
	})

	out := buf.String()
	assert.Contains(t, out, "EXTRACTED ARTICLE")
	assert.Contains(t, out, "Title:   Headline")
	assert.Contains(t, out, "500 chars")
}
