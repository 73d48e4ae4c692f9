package qualitygate

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultLinkTimeout bounds a single probe request.
	DefaultLinkTimeout = 10 * time.Second
	DefaultLinkRetries = 2
	// DefaultParallelism caps concurrent probes.
	DefaultParallelism = 4
	DefaultUserAgent   = "Mozilla/5.0 (compatible; AnswerEvaluatorBot/1.0)"

	// maxSniffBytes limits how much of a GET body is read for soft-404
	// detection.
	maxSniffBytes = 512 * 1024
)

// bareURLPattern matches http(s) URLs in prose and in markdown link
// targets. It stops at whitespace and at characters that close a
// markdown construct.
var bareURLPattern = regexp.MustCompile(`https?://[^\s<>"'\)\]]+`)

// softNotFoundMarkers are title fragments that mark a 200 response as a
// disguised error page.
var softNotFoundMarkers = []string{"page not found", "404", "not found"}

type CheckerConfig struct {
	Timeout time.Duration
	// Retries is the number of extra attempts after a failed probe.
	// Negative disables retries.
	Retries     int
	Parallelism int
	UserAgent   string
	// AllowPrivate skips the private-address guard, for local previews.
	AllowPrivate bool
}

func (c CheckerConfig) withDefaults() CheckerConfig {
	if c.Timeout <= 0 {
		c.Timeout = DefaultLinkTimeout
	}
	if c.Retries == 0 {
		c.Retries = DefaultLinkRetries
	} else if c.Retries < 0 {
		c.Retries = 0
	}
	if c.Parallelism <= 0 {
		c.Parallelism = DefaultParallelism
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}

// LinkChecker probes article links for liveness.
type LinkChecker struct {
	client *http.Client
	config CheckerConfig
}

func NewLinkChecker(config CheckerConfig) *LinkChecker {
	config = config.withDefaults()
	return &LinkChecker{
		client: &http.Client{Timeout: config.Timeout},
		config: config,
	}
}

// ExtractURLs pulls every distinct http(s) URL out of a draft body,
// preserving first-seen order. Trailing sentence punctuation is trimmed
// so "see https://example.com." yields a clean URL.
func ExtractURLs(body string) []string {
	matches := bareURLPattern.FindAllString(body, -1)
	seen := make(map[string]struct{}, len(matches))
	urls := make([]string, 0, len(matches))
	for _, match := range matches {
		match = strings.TrimRight(match, ".,;:!?")
		if match == "" {
			continue
		}
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		urls = append(urls, match)
	}
	return urls
}

// ValidateURL rejects URLs the checker must never fetch: non-HTTP
// schemes, loopback, private and link-local ranges, and well-known
// internal hostnames. Hostnames are not resolved, so the guard covers
// literal addresses only.
func ValidateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return fmt.Errorf("missing host")
	}
	if host == "localhost" || strings.HasSuffix(host, ".localhost") ||
		strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".internal") {
		return fmt.Errorf("blocked host %q", host)
	}

	if ip := net.ParseIP(host); ip != nil {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
			ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return fmt.Errorf("blocked address %q", host)
		}
		// Azure metadata endpoint sits outside the ranges above
		if ip.Equal(net.ParseIP("168.63.129.16")) {
			return fmt.Errorf("blocked address %q", host)
		}
	}

	return nil
}

// Check probes every URL concurrently and returns one result per input
// URL, in input order.
func (c *LinkChecker) Check(ctx context.Context, urls []string) []LinkResult {
	results := make([]LinkResult, len(urls))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Parallelism)
	for i, raw := range urls {
		g.Go(func() error {
			results[i] = c.checkOne(gCtx, raw)
			return nil
		})
	}
	// Probe errors land in the per-link results, never here.
	_ = g.Wait()

	return results
}

func (c *LinkChecker) checkOne(ctx context.Context, raw string) LinkResult {
	if !c.config.AllowPrivate {
		if err := ValidateURL(raw); err != nil {
			return LinkResult{URL: raw, Alive: false, Detail: err.Error()}
		}
	}

	var last LinkResult
	for attempt := 0; attempt <= c.config.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				last.Detail = ctx.Err().Error()
				return last
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		last = c.probe(ctx, raw)
		if last.Alive {
			return last
		}
	}
	return last
}

// probe tries a cheap HEAD first. HTML responses still need a GET so the
// body can be sniffed for a disguised error page; non-HTML resources are
// settled by the HEAD alone.
func (c *LinkChecker) probe(ctx context.Context, raw string) LinkResult {
	result := LinkResult{URL: raw}

	resp, err := c.do(ctx, http.MethodHead, raw)
	if err == nil {
		resp.Body.Close()
		result.StatusCode = resp.StatusCode
		if resp.StatusCode >= 200 && resp.StatusCode < 400 && !isHTML(resp.Header) {
			result.Alive = true
			return result
		}
	}

	resp, err = c.do(ctx, http.MethodGet, raw)
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		result.Detail = fmt.Sprintf("status %d", resp.StatusCode)
		return result
	}

	if title, bad := sniffSoftNotFound(resp); bad {
		result.Detail = fmt.Sprintf("soft 404, page title %q", title)
		return result
	}

	result.Alive = true
	return result
}

func (c *LinkChecker) do(ctx context.Context, method, raw string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func isHTML(header http.Header) bool {
	return strings.Contains(header.Get("Content-Type"), "text/html")
}

// sniffSoftNotFound parses an HTML response's <title> and reports
// whether it looks like an error page served with a 200.
func sniffSoftNotFound(resp *http.Response) (string, bool) {
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxSniffBytes))
	if err != nil {
		return "", false
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	lowered := strings.ToLower(title)
	for _, marker := range softNotFoundMarkers {
		if strings.Contains(lowered, marker) {
			return title, true
		}
	}
	return "", false
}
