// Package extract provides article fetching and HTML-to-text extraction.
// It turns an arbitrary article URL into a bounded plain-text excerpt
// suitable for handing to a fact-check provider.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/factcheck-agent/internal/types"
)

// DefaultTimeout is the default budget for the page fetch.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is a browser-like identification header. Many news sites
// serve stripped-down or blocked pages to non-browser agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// MinContentLength is the minimum extracted text length for a page to count
// as a readable article. Anything shorter is treated as extraction failure.
const MinContentLength = 100

// MaxContentLength is the clamp applied before content is sent upstream.
const MaxContentLength = 8000

// TruncationMarker is appended when content is clamped.
const TruncationMarker = "..."

// DefaultTitle is used when a page exposes no usable title.
const DefaultTitle = "Article"

// Error represents an error during article extraction.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures extraction behavior.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool // render with a headless browser for JavaScript-only pages
}

// DefaultOptions returns sensible defaults for article extraction.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// noiseSelector matches elements that never carry article text.
const noiseSelector = "script, style, nav, header, footer, aside, .ad, .advertisement, .social-share"

// contentSelectors are tried in priority order; the first match wins.
// No scoring or ranking happens across candidates.
var contentSelectors = []string{
	"article",
	".article-content",
	".post-content",
	".entry-content",
	".content",
	"main",
	".main-content",
	"[role=\"main\"]",
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// Article fetches urlStr and derives a bounded plain-text excerpt and title.
// It fails when the fetch fails, times out, or the derived content is shorter
// than MinContentLength after all fallbacks.
func Article(ctx context.Context, urlStr string, opts *Options) (*types.ExtractedArticle, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if !types.IsValidURL(urlStr) {
		return nil, &Error{URL: urlStr, Message: "invalid URL"}
	}

	var html string
	var err error
	if opts.UseBrowser {
		html, err = renderWithBrowser(ctx, urlStr, opts.Timeout)
	} else {
		html, err = fetchHTML(ctx, urlStr, opts)
	}
	if err != nil {
		return nil, err
	}

	article, err := FromHTML(html)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "could not extract sufficient content", Cause: err}
	}
	return article, nil
}

// fetchHTML performs a single GET with a browser-like UA and bounded timeout.
// No retries.
func fetchHTML(ctx context.Context, urlStr string, opts *Options) (string, error) {
	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	return string(body), nil
}

// FromHTML derives title and content from raw HTML.
func FromHTML(html string) (*types.ExtractedArticle, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		title = DefaultTitle
	}

	content := findContent(doc)
	if len(content) < MinContentLength {
		return nil, fmt.Errorf("extracted content too short (%d chars)", len(content))
	}
	content = Clamp(content, MaxContentLength)

	return &types.ExtractedArticle{Title: title, Content: content}, nil
}

// findContent walks the prioritized selector list, then falls back to
// paragraph text, then to collapsed body text.
func findContent(doc *goquery.Document) string {
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			if text := strings.TrimSpace(selection.First().Text()); text != "" {
				return text
			}
		}
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		paragraphs = append(paragraphs, s.Text())
	})
	if text := strings.TrimSpace(strings.Join(paragraphs, " ")); text != "" {
		return text
	}

	return strings.TrimSpace(whitespaceRE.ReplaceAllString(doc.Find("body").Text(), " "))
}

// Clamp truncates text to max characters, appending the truncation marker
// when anything was cut.
func Clamp(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + TruncationMarker
}
