// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/factcheck-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtractedArticle outputs a summary of the extracted article.
func (p *Printer) PrintExtractedArticle(article *types.ExtractedArticle) {
	if article == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:   %s\n", article.Title))
	sb.WriteString(fmt.Sprintf("Length:  %d chars\n\n", len(article.Content)))

	preview := article.Content
	if len(preview) > 200 {
		preview = preview[:197] + "..."
	}
	sb.WriteString(preview)

	p.printBox("EXTRACTED ARTICLE", sb.String())
}

// PrintResult outputs a human-readable summary of the fact-check result.
func (p *Printer) PrintResult(result *types.FactCheckResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Verdict: %s\n", types.FormatVerdict(result.Verdict)))
	if result.ArticleTitle != "" {
		sb.WriteString(fmt.Sprintf("Article: %s\n", result.ArticleTitle))
	}
	sb.WriteString("\n")
	sb.WriteString(result.Explanation)
	sb.WriteString("\n")

	if len(result.Sources) > 0 {
		sb.WriteString("\nSources:\n")
		count := min(len(result.Sources), maxItemsToShow)
		for i := 0; i < count; i++ {
			source := result.Sources[i]
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, source.Snippet))
			if source.URL != "" {
				sb.WriteString(fmt.Sprintf("     %s\n", source.URL))
			}
		}
		if len(result.Sources) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Sources)-maxItemsToShow))
		}
	}

	p.printBox("FACT CHECK RESULT", strings.TrimSuffix(sb.String(), "\n"))
}
