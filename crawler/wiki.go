package crawler

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/time/rate"
)

// Static and compile-time check to ensure WikiSource implements the
// PageSource interface.
var _ PageSource = (*WikiSource)(nil)

const (
	defaultBaseURL      = "https://en.wikipedia.org"
	defaultFetchTimeout = 15 * time.Second
	defaultRequestRate  = 2.0
)

var (
	repeatedSpaceRegex = regexp.MustCompile(`\s+`)
	bracketedNoteRegex = regexp.MustCompile(`\[.*?\]`)
)

// excludedLinkPrefixes lists the wiki namespaces whose pages carry no
// article content and are never crawled.
var excludedLinkPrefixes = []string{
	"File:", "Help:", "Portal:", "Special:", "Wikipedia:", "Category:",
	"Template:", "Talk:",
}

// WikiSourceConfig encapsulates the settings for a WikiSource.
type WikiSourceConfig struct {
	// BaseURL of the wiki installation. If not specified, the English
	// Wikipedia is used.
	BaseURL string

	// Client used for page requests. If not specified, a client with a
	// 15 second timeout is used instead.
	Client *http.Client

	// RequestsPerSecond throttles outgoing fetches. If not specified, a
	// default value of 2 is used.
	RequestsPerSecond float64
}

// WikiSource fetches wiki articles over HTTP and parses them into Page
// values: the article body text with navigation chrome stripped out, plus
// the set of main-namespace articles it links to.
type WikiSource struct {
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter
	policyPool sync.Pool
}

// NewWikiSource returns a WikiSource using the provided config options.
func NewWikiSource(cfg WikiSourceConfig) *WikiSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: defaultFetchTimeout}
	}

	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRequestRate
	}

	return &WikiSource{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  cfg.Client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		policyPool: sync.Pool{
			New: func() interface{} {
				return bluemonday.StrictPolicy()
			},
		},
	}
}

// FetchAndParse downloads the article with the specified identifier and
// extracts its title, body text and outbound article titles. Fetches are
// rate limited; waiting respects context cancellation.
func (s *WikiSource) FetchAndParse(
	ctx context.Context, identifier string,
) (*Page, error) {

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	pageURL := s.baseURL + "/wiki/" + url.PathEscape(pathForm(identifier))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("wiki source: %w", err)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wiki source: fetch %q: %w", identifier, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"wiki source: fetch %q: unexpected status %d", identifier, res.StatusCode,
		)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("wiki source: parse %q: %w", identifier, err)
	}

	title := strings.TrimSpace(doc.Find("h1#firstHeading").First().Text())
	if title == "" {
		title = canonicalTitle(identifier)
	}

	content := doc.Find("div.mw-parser-output").First()

	// Drop the navigation chrome that would otherwise pollute the index:
	// hatnotes, infoboxes, the table of contents, maintenance boxes,
	// inline citation markers and style blocks.
	content.Find(
		"div.hatnote, table.infobox, div#toc, div.toc, table.ambox, " +
			"div.shortdescription, sup.reference, style, script",
	).Remove()

	links := s.extractLinks(content)

	text, err := s.extractText(content)
	if err != nil {
		return nil, fmt.Errorf("wiki source: parse %q: %w", identifier, err)
	}

	return &Page{
		Title:         title,
		Text:          text,
		OutboundLinks: links,
	}, nil
}

// extractText strips the remaining markup from the article body: sanitize to
// bare text, then collapse the whitespace left behind by removed tags.
func (s *WikiSource) extractText(content *goquery.Selection) (string, error) {
	rawHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return "", err
	}

	policy := s.policyPool.Get().(*bluemonday.Policy)
	clean := policy.Sanitize(rawHTML)
	s.policyPool.Put(policy)

	clean = html.UnescapeString(clean)
	clean = bracketedNoteRegex.ReplaceAllString(clean, " ")
	clean = repeatedSpaceRegex.ReplaceAllString(clean, " ")

	return strings.TrimSpace(clean), nil
}

// extractLinks collects the canonical titles of the main-namespace articles
// referenced by the body. Namespaced pages, sub-pages and fragments are
// filtered out; duplicates collapse to one entry.
func (s *WikiSource) extractLinks(content *goquery.Selection) []string {
	var (
		links []string
		seen  = make(map[string]struct{})
	)

	content.Find(`a[href^="/wiki/"]`).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}

		name := strings.TrimPrefix(href, "/wiki/")

		// Shorten links that include a '#' fragment.
		if i := strings.IndexByte(name, '#'); i != -1 {
			name = name[:i]
		}

		if name == "" || strings.Contains(name, "/") {
			return
		}

		for _, prefix := range excludedLinkPrefixes {
			if strings.HasPrefix(name, prefix) {
				return
			}
		}

		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}

		title := canonicalTitle(name)
		if _, dup := seen[title]; dup {
			return
		}

		seen[title] = struct{}{}
		links = append(links, title)
	})

	return links
}

// canonicalTitle converts a /wiki/ path segment into the canonical article
// title form used as a document identifier.
func canonicalTitle(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// pathForm converts a canonical title back into its /wiki/ path segment.
func pathForm(title string) string {
	return strings.ReplaceAll(title, " ", "_")
}
