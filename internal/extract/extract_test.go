package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articlePage(body string) string {
	return `<html><head><title>Test Article</title></head><body>
		<nav>Home | About | Contact</nav>
		<header>Site Header</header>
		<article>` + body + `</article>
		<aside>Related links</aside>
		<footer>Copyright</footer>
	</body></html>`
}

func TestArticle_Success(t *testing.T) {
	content := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articlePage(content)))
	}))
	defer server.Close()

	article, err := Article(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "Test Article", article.Title)
	assert.Equal(t, strings.TrimSpace(content), article.Content)
}

func TestArticle_SendsBrowserUserAgent(t *testing.T) {
	var gotUA string
	content := strings.Repeat("word ", 50)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(articlePage(content)))
	}))
	defer server.Close()

	_, err := Article(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestArticle_InvalidURL(t *testing.T) {
	_, err := Article(context.Background(), "not-a-url", nil)
	require.Error(t, err)

	var exErr *Error
	assert.ErrorAs(t, err, &exErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestArticle_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Article(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestArticle_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(articlePage("too late")))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.Timeout = 50 * time.Millisecond
	_, err := Article(context.Background(), server.URL, opts)
	require.Error(t, err)

	var exErr *Error
	assert.ErrorAs(t, err, &exErr)
}

func TestArticle_ShortContentFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(articlePage("Too short.")))
	}))
	defer server.Close()

	_, err := Article(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not extract sufficient content")
}

func TestFromHTML_RemovesNoiseElements(t *testing.T) {
	content := strings.Repeat("Meaningful article sentence here. ", 10)
	article, err := FromHTML(articlePage(content))
	require.NoError(t, err)
	assert.NotContains(t, article.Content, "Home | About")
	assert.NotContains(t, article.Content, "Site Header")
	assert.NotContains(t, article.Content, "Copyright")
	assert.NotContains(t, article.Content, "Related links")
}

func TestFromHTML_StripsAdContainers(t *testing.T) {
	filler := strings.Repeat("Real reporting text goes on and on. ", 10)
	html := `<html><body><div class="content">
		<div class="advertisement">Buy now!</div>
		<div class="social-share">Share this</div>
		` + filler + `</div></body></html>`

	article, err := FromHTML(html)
	require.NoError(t, err)
	assert.NotContains(t, article.Content, "Buy now!")
	assert.NotContains(t, article.Content, "Share this")
}

func TestFromHTML_TitleFallsBackToH1(t *testing.T) {
	filler := strings.Repeat("body text ", 30)
	html := `<html><body><h1>Headline Only</h1><article>` + filler + `</article></body></html>`

	article, err := FromHTML(html)
	require.NoError(t, err)
	assert.Equal(t, "Headline Only", article.Title)
}

func TestFromHTML_TitleDefault(t *testing.T) {
	filler := strings.Repeat("body text ", 30)
	html := `<html><body><article>` + filler + `</article></body></html>`

	article, err := FromHTML(html)
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, article.Title)
}

func TestFromHTML_SelectorPriority(t *testing.T) {
	filler := strings.Repeat("article body sentence. ", 10)
	other := strings.Repeat("main region sentence. ", 10)
	html := `<html><body>
		<main>` + other + `</main>
		<article>` + filler + `</article>
	</body></html>`

	// article outranks main regardless of document order
	article, err := FromHTML(html)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(filler), article.Content)
}

func TestFromHTML_ParagraphFallback(t *testing.T) {
	p1 := strings.Repeat("first paragraph text. ", 5)
	p2 := strings.Repeat("second paragraph text. ", 5)
	html := `<html><body><div><p>` + p1 + `</p><p>` + p2 + `</p></div></body></html>`

	article, err := FromHTML(html)
	require.NoError(t, err)
	assert.Contains(t, article.Content, "first paragraph text.")
	assert.Contains(t, article.Content, "second paragraph text.")
}

func TestFromHTML_BodyFallbackCollapsesWhitespace(t *testing.T) {
	words := strings.Repeat("word\n\n\t  more ", 20)
	html := `<html><body><div>` + words + `</div></body></html>`

	article, err := FromHTML(html)
	require.NoError(t, err)
	assert.NotContains(t, article.Content, "\n")
	assert.NotContains(t, article.Content, "  ")
}

func TestFromHTML_ClampsLongContent(t *testing.T) {
	long := strings.Repeat("a", MaxContentLength+500)
	html := `<html><body><article>` + long + `</article></body></html>`

	first, err := FromHTML(html)
	require.NoError(t, err)
	assert.Len(t, first.Content, MaxContentLength+len(TruncationMarker))
	assert.True(t, strings.HasSuffix(first.Content, TruncationMarker))
	assert.Equal(t, long[:MaxContentLength], strings.TrimSuffix(first.Content, TruncationMarker))

	// stable across repeated runs
	second, err := FromHTML(html)
	require.NoError(t, err)
	assert.Equal(t, first.Content, second.Content)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, "short", Clamp("short", 100))
	assert.Equal(t, "abcde"+TruncationMarker, Clamp("abcdefgh", 5))
}
