package tools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"regexp"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"localaichat/internal/domain"
)

// Compile-time check to ensure Webpage implements domain.Tool
var _ domain.Tool = (*Webpage)(nil)

const (
	defaultMaxChars     = 4000
	defaultFetchTimeout = 15 * time.Second
	maxPageBytes        = 2 << 20
	maxRedirects        = 5
)

var (
	// ErrBlockedAddress indicates a page resolving to a loopback, private or link-local address
	ErrBlockedAddress = errors.New("address is not public")
	// ErrHostNotAllowed indicates a page outside the configured host allowlist
	ErrHostNotAllowed = errors.New("host is not allowed")

	// carrier-grade NAT, not covered by netip.Addr.IsPrivate
	sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

	urlPattern    = regexp.MustCompile(`https?://[^\s<>"')\]]+`)
	spacesPattern = regexp.MustCompile(`[ \t\r\f\v]+`)
	linesPattern  = regexp.MustCompile(`\n\s*\n+`)
)

// Webpage struct - Tool fetching the first URL mentioned in a prompt
type Webpage struct {
	httpClient   *http.Client
	maxChars     int
	allowedHosts map[string]bool
}

// NewWebpage func - Creates a webpage tool. maxChars <= 0 uses the default.
// A nil httpClient uses a client that only dials public addresses.
// A non-empty allowedHosts restricts fetching to those host names.
func NewWebpage(httpClient *http.Client, maxChars int, allowedHosts ...string) *Webpage {
	if httpClient == nil {
		httpClient = newPublicClient()
	}
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	w := &Webpage{httpClient: httpClient, maxChars: maxChars}
	if len(allowedHosts) > 0 {
		w.allowedHosts = make(map[string]bool, len(allowedHosts))
		for _, host := range allowedHosts {
			w.allowedHosts[strings.ToLower(host)] = true
		}
		client := *httpClient
		client.CheckRedirect = w.checkRedirect
		w.httpClient = &client
	}
	return w
}

// newPublicClient returns a client whose dialer refuses non-public addresses.
// The check runs on the resolved address, so redirects and DNS answers are covered.
func newPublicClient() *http.Client {
	dialer := &net.Dialer{
		Timeout: 10 * time.Second,
		Control: refuseNonPublic,
	}
	return &http.Client{
		Timeout: defaultFetchTimeout,
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func refuseNonPublic(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	if !isPublic(addr) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, addr)
	}
	return nil
}

func isPublic(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsGlobalUnicast() &&
		!addr.IsPrivate() &&
		!sharedAddressSpace.Contains(addr)
}

func (w *Webpage) allowed(u *url.URL) bool {
	return w.allowedHosts == nil || w.allowedHosts[strings.ToLower(u.Hostname())]
}

func (w *Webpage) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if !w.allowed(req.URL) {
		return fmt.Errorf("%w: %s", ErrHostNotAllowed, req.URL.Hostname())
	}
	return nil
}

func (w *Webpage) Name() string { return "webpage" }

func (w *Webpage) Description() string {
	return "Read the content of a web page whose URL appears in the message"
}

// Call fetches the first URL in prompt and returns its readable text
func (w *Webpage) Call(ctx context.Context, prompt string) (any, error) {
	pageURL := urlPattern.FindString(prompt)
	if pageURL == "" {
		return "No URL was found in the message.", nil
	}
	pageURL = strings.TrimRight(pageURL, ".,;:!?")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create page request: %w", err)
	}
	if !w.allowed(req.URL) {
		return nil, fmt.Errorf("%w: %s", ErrHostNotAllowed, req.URL.Hostname())
	}
	req.Header.Set("Accept", "text/html")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		logrus.Errorf("Failed to fetch %s: %v", pageURL, err)
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("failed to fetch page: status %d", resp.StatusCode)
	}

	title, text, err := extractText(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, err
	}

	return map[string]any{
		domain.ToolContextKey: truncate(text, w.maxChars),
		"url":                 pageURL,
		"title":               title,
	}, nil
}

// extractText returns the page title and its visible text
func extractText(r io.Reader) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse page: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	doc.Find("script,style,noscript,svg,iframe,head").Remove()

	var blocks []string
	doc.Find("h1,h2,h3,h4,p,li,pre,td,blockquote").Each(func(i int, s *goquery.Selection) {
		if text := compact(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return title, compact(doc.Find("body").Text()), nil
	}
	return title, strings.Join(blocks, "\n"), nil
}

func compact(text string) string {
	text = spacesPattern.ReplaceAllString(text, " ")
	text = linesPattern.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

func truncate(text string, maxChars int) string {
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxChars])
}
