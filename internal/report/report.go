// Package report renders a fact-check result as a downloadable PDF report.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/jonathan/factcheck-agent/internal/types"
)

// Data holds everything printed in a report.
type Data struct {
	Claim        string
	Verdict      string
	Explanation  string
	Sources      []types.Source
	ArticleTitle string
}

// Generate renders the report and returns the PDF bytes.
func Generate(data *Data) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("report data is nil")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 12, "FactCheckAI Report", "", 0, "L", false, 0, "")
	pdf.Ln(18)

	if data.ArticleTitle != "" {
		pdf.SetFont("Arial", "I", 11)
		pdf.MultiCell(0, 7, sanitize("Article: "+data.ArticleTitle), "", "L", false)
		pdf.Ln(4)
	}

	writeSection(pdf, "Claim:", data.Claim)

	pdf.SetFont("Arial", "B", 12)
	verdict := types.FormatVerdict(data.Verdict)
	if verdict == "Unknown" && data.Verdict != "" {
		// keep the provider wording when the display formatter cannot map it
		verdict = data.Verdict
	}
	pdf.CellFormat(0, 8, sanitize("Verdict: "+verdict), "", 0, "L", false, 0, "")
	pdf.Ln(14)

	writeSection(pdf, "Explanation:", data.Explanation)

	if len(data.Sources) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Sources:", "", 0, "L", false, 0, "")
		pdf.Ln(10)

		pdf.SetFont("Arial", "", 11)
		for i, source := range data.Sources {
			pdf.MultiCell(0, 7, sanitize(fmt.Sprintf("%d. %s", i+1, source.Snippet)), "", "L", false)
			if source.URL != "" {
				pdf.SetX(25)
				pdf.SetTextColor(59, 130, 246)
				pdf.MultiCell(0, 6, sanitize(source.URL), "", "L", false)
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.Ln(3)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSection prints a bold label followed by wrapped body text.
func writeSection(pdf *gofpdf.Fpdf, label, body string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, label, "", 0, "L", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 7, sanitize(body), "", "L", false)
	pdf.Ln(8)
}

// sanitize converts UTF-8 punctuation to ASCII equivalents to avoid
// encoding issues in the PDF core fonts.
func sanitize(text string) string {
	if text == "" {
		return text
	}

	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		switch r {
		case '–':
			result.WriteString("-")
		case '—':
			result.WriteString("--")
		case '‘', '’':
			result.WriteString("'")
		case '“', '”':
			result.WriteString("\"")
		case '…':
			result.WriteString("...")
		case ' ':
			result.WriteString(" ")
		case '​', '‌', '‍', '\uFEFF':
			continue
		default:
			if r < 128 {
				result.WriteRune(r)
			} else if unicode.IsSpace(r) {
				result.WriteString(" ")
			} else {
				result.WriteString("?")
			}
		}
	}
	return result.String()
}
