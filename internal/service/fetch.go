package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

const (
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	shortContentLen  = 100
)

var whitespaceRe = regexp.MustCompile(`[ \t\r\f\v]+`)
var blankLinesRe = regexp.MustCompile(`\n{3,}`)

// PageFetcher loads a job posting URL and returns its readable text.
// HTML is cleaned with goquery; PDF postings are converted to plain text.
type PageFetcher struct {
	client   *http.Client
	maxBytes int64
}

func NewPageFetcher(timeout time.Duration, maxBytes int64) *PageFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = 2 << 20
	}
	return &PageFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Load fetches rawURL. Very short results are returned but logged, since they
// are usually block or error pages.
func (f *PageFetcher) Load(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	// Set a browser-like user agent so job sites don't block us
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("URL returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("reading URL content: %w", err)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))

	var text string
	switch {
	case strings.Contains(contentType, "application/pdf") || bytes.HasPrefix(body, []byte("%PDF-")):
		text, err = pdfText(body)
		if err != nil {
			return "", fmt.Errorf("reading PDF posting: %w", err)
		}
	case strings.Contains(contentType, "html") || looksLikeHTML(body):
		text = htmlText(body)
	default:
		text = collapseWhitespace(string(body))
	}

	if len(text) < shortContentLen {
		log.Warn().Str("url", rawURL).Int("contentLength", len(text)).Msg("Very short page content, might be an error page")
	}
	return text, nil
}

// htmlText strips page chrome and returns block-level text, one block per line
func htmlText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return collapseWhitespace(string(body))
	}

	doc.Find("script, style, noscript, iframe, svg, nav, header, footer, aside, form").Remove()
	doc.Find("[role=navigation], [role=banner], [role=contentinfo], .cookie, .cookies, .popup, .ads").Remove()

	var blocks []string
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		blocks = append(blocks, title)
	}
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, dt, dd, td").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, collapseWhitespace(text))
		}
	})
	if len(blocks) > 1 {
		return strings.Join(blocks, "\n")
	}

	return collapseWhitespace(doc.Find("body").Text())
}

func pdfText(body []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return collapseWhitespace(string(b)), nil
}

func looksLikeHTML(body []byte) bool {
	head := bytes.ToLower(body[:min(len(body), 512)])
	return bytes.Contains(head, []byte("<html")) || bytes.Contains(head, []byte("<!doctype html"))
}

func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
	}
	s = strings.Join(lines, "\n")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
