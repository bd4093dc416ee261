package fetchers

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"brandintel/internal/models"

	"github.com/markusmobius/go-trafilatura"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const (
	maxPageBodySize = 5 * 1024 * 1024 // 5MB per page
	maxSitemapSize  = 2 * 1024 * 1024
)

// WebsiteFetcher ingests a brand's own website. It prefers the sitemap when
// one resolves; otherwise it performs a breadth-limited same-origin crawl
// bounded by maxDepth and maxPages, with a politeness delay between fetches.
type WebsiteFetcher struct {
	client    *WebClient
	robots    *RobotsChecker
	pageCache *cache.Cache
	maxPages  int
	maxDepth  int
}

// NewWebsiteFetcher creates a website fetcher with the given crawl caps
func NewWebsiteFetcher(maxPages, maxDepth int) *WebsiteFetcher {
	return &WebsiteFetcher{
		client:    NewWebClient(),
		robots:    NewRobotsChecker(crawlerUserAgent),
		pageCache: cache.New(1*time.Hour, 10*time.Minute),
		maxPages:  maxPages,
		maxDepth:  maxDepth,
	}
}

func (f *WebsiteFetcher) SourceType() string {
	return models.SourceTypeWebsite
}

// Fetch walks the site and returns one page-type ContentItem per page.
// Websites carry no credential; the argument exists to satisfy the fetcher
// contract and is ignored.
func (f *WebsiteFetcher) Fetch(ctx context.Context, source models.BrandSource, _ string, limit int) ([]models.ContentItem, error) {
	root, err := normalizeRootURL(source.HandleOrURL)
	if err != nil {
		return nil, fmt.Errorf("invalid website URL %q: %w", source.HandleOrURL, err)
	}

	maxPages := f.maxPages
	if limit > 0 && limit < maxPages {
		maxPages = limit
	}

	allowed, crawlDelay, err := f.robots.CanFetch(ctx, root.String())
	if err == nil && !allowed {
		return nil, fmt.Errorf("crawling blocked by robots.txt for %s", root.Host)
	}
	limiter := rate.NewLimiter(rate.Every(crawlDelay), 1)

	pageURLs := f.sitemapURLs(ctx, root, maxPages)
	if len(pageURLs) > 0 {
		logrus.Infof("Using sitemap for %s (%d URLs)", root.Host, len(pageURLs))
		return f.fetchPages(ctx, source.OwnerID, root, pageURLs, limiter)
	}

	logrus.Infof("No sitemap for %s, falling back to bounded crawl (depth %d, max %d pages)",
		root.Host, f.maxDepth, maxPages)
	return f.crawl(ctx, source.OwnerID, root, maxPages, limiter)
}

// sitemapURLs resolves /sitemap.xml and returns its same-origin URLs, capped
func (f *WebsiteFetcher) sitemapURLs(ctx context.Context, root *url.URL, maxPages int) []string {
	sitemapURL := root.Scheme + "://" + root.Host + "/sitemap.xml"

	resp, err := f.client.Get(ctx, sitemapURL)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSitemapSize))
	if err != nil {
		return nil
	}

	var sitemap struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	if err := xml.Unmarshal(body, &sitemap); err != nil {
		return nil
	}

	urls := make([]string, 0, len(sitemap.URLs))
	for _, entry := range sitemap.URLs {
		loc := strings.TrimSpace(entry.Loc)
		parsed, err := url.Parse(loc)
		if err != nil || parsed.Host != root.Host {
			continue
		}
		urls = append(urls, loc)
		if len(urls) >= maxPages {
			break
		}
	}
	return urls
}

// fetchPages retrieves a fixed URL list, one item per successful page
func (f *WebsiteFetcher) fetchPages(ctx context.Context, ownerID string, root *url.URL, pageURLs []string, limiter *rate.Limiter) ([]models.ContentItem, error) {
	items := make([]models.ContentItem, 0, len(pageURLs))
	for _, pageURL := range pageURLs {
		if err := limiter.Wait(ctx); err != nil {
			return items, err
		}

		item, _, err := f.fetchPage(ctx, ownerID, pageURL)
		if err != nil {
			// A single unreachable or unparseable page never fails the batch
			logrus.Warnf("Skipping page %s: %v", pageURL, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// crawl performs a breadth-first same-origin crawl from the homepage
func (f *WebsiteFetcher) crawl(ctx context.Context, ownerID string, root *url.URL, maxPages int, limiter *rate.Limiter) ([]models.ContentItem, error) {
	type queued struct {
		url   string
		depth int
	}

	visited := map[string]bool{}
	queue := []queued{{url: root.String(), depth: 0}}
	items := make([]models.ContentItem, 0, maxPages)

	for len(queue) > 0 && len(items) < maxPages {
		next := queue[0]
		queue = queue[1:]

		canonical := canonicalPageURL(next.url)
		if visited[canonical] {
			continue
		}
		visited[canonical] = true

		if err := limiter.Wait(ctx); err != nil {
			return items, err
		}

		item, links, err := f.fetchPage(ctx, ownerID, next.url)
		if err != nil {
			logrus.Warnf("Skipping page %s: %v", next.url, err)
			continue
		}
		items = append(items, item)

		if next.depth >= f.maxDepth {
			continue
		}
		for _, link := range links {
			parsed, err := url.Parse(link)
			if err != nil {
				continue
			}
			resolved := root.ResolveReference(parsed)
			if resolved.Host != root.Host || (resolved.Scheme != "http" && resolved.Scheme != "https") {
				continue
			}
			resolved.Fragment = ""
			if !visited[canonicalPageURL(resolved.String())] {
				queue = append(queue, queued{url: resolved.String(), depth: next.depth + 1})
			}
		}
	}

	return items, nil
}

// fetchPage downloads one page, extracts its main text and outbound links
func (f *WebsiteFetcher) fetchPage(ctx context.Context, ownerID, pageURL string) (models.ContentItem, []string, error) {
	if cached, found := f.pageCache.Get(pageURL); found {
		page := cached.(cachedPage)
		return f.buildItem(ownerID, pageURL, page), page.links, nil
	}

	// Every page gets its own robots.txt check, sitemap entries included;
	// the ruleset is cached per domain
	if allowed, _, err := f.robots.CanFetch(ctx, pageURL); err == nil && !allowed {
		return models.ContentItem{}, nil, fmt.Errorf("disallowed by robots.txt: %s", pageURL)
	}

	resp, err := f.client.Get(ctx, pageURL)
	if err != nil {
		return models.ContentItem{}, nil, &TransientFetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ContentItem{}, nil, classifyStatus(f.SourceType(), resp.StatusCode, "")
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml") && contentType != "" {
		return models.ContentItem{}, nil, fmt.Errorf("unsupported content type: %s", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBodySize))
	if err != nil {
		return models.ContentItem{}, nil, fmt.Errorf("failed to read page body: %w", err)
	}

	page := extractPage(pageURL, body)
	f.pageCache.Set(pageURL, page, cache.DefaultExpiration)

	return f.buildItem(ownerID, pageURL, page), page.links, nil
}

type cachedPage struct {
	title     string
	text      string
	published time.Time
	links     []string
}

// extractPage strips script/style/navigation/footer markup and pulls out the
// main text block, falling back to the full body text when no main-content
// container is found.
func extractPage(pageURL string, body []byte) cachedPage {
	page := cachedPage{links: extractLinks(body)}

	parsedURL, _ := url.Parse(pageURL)
	result, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
		OriginalURL: parsedURL,
	})
	if err == nil && result != nil && result.ContentText != "" {
		page.title = result.Metadata.Title
		page.text = result.ContentText
		page.published = result.Metadata.Date
		return page
	}

	// Fallback: take every text node in the document body
	page.text = fallbackBodyText(body)
	return page
}

// fallbackBodyText collects visible text, skipping script and style blocks
func fallbackBodyText(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	var sb strings.Builder
	skipDepth := 0

	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style", "noscript", "nav", "header", "footer":
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style", "noscript", "nav", "header", "footer":
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case html.TextToken:
			if skipDepth == 0 {
				sb.Write(tokenizer.Text())
				sb.WriteByte(' ')
			}
		}
	}
}

// extractLinks returns every <a href> value in the document
func extractLinks(body []byte) []string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	var links []string

	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			return links
		}
		if tokenType != html.StartTagToken && tokenType != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := tokenizer.TagName()
		if string(name) != "a" || !hasAttr {
			continue
		}
		for {
			key, value, more := tokenizer.TagAttr()
			if string(key) == "href" {
				links = append(links, string(value))
			}
			if !more {
				break
			}
		}
	}
}

func (f *WebsiteFetcher) buildItem(ownerID, pageURL string, page cachedPage) models.ContentItem {
	text := page.title
	if page.text != "" {
		if text != "" {
			text += "\n\n"
		}
		text += page.text
	}

	timestamp := page.published
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	return models.ContentItem{
		OwnerID:     ownerID,
		SourceType:  f.SourceType(),
		ContentType: models.ContentTypePage,
		// Pages have no vendor id; the URL is the identity
		URL:       pageURL,
		Text:      text,
		Timestamp: timestamp,
		Metrics:   models.EngagementMetrics{},
		RawPayload: map[string]interface{}{
			"url":   pageURL,
			"title": page.title,
		},
		CreatedAt: time.Now().UTC(),
	}
}

// normalizeRootURL parses the configured site address, defaulting to https
func normalizeRootURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty URL")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, err
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("missing host")
	}
	return parsed, nil
}

// canonicalPageURL strips fragments and trailing slashes for visited checks
func canonicalPageURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	parsed.Fragment = ""
	canonical := parsed.String()
	return strings.TrimRight(canonical, "/")
}
