package fetchers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"brandintel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage(title, body string, links ...string) string {
	var sb strings.Builder
	sb.WriteString("<html><head><title>" + title + "</title></head><body>")
	sb.WriteString("<nav>Site navigation that should not be extracted</nav>")
	sb.WriteString("<p>" + body + "</p>")
	for _, link := range links {
		sb.WriteString(fmt.Sprintf(`<a href=%q>link</a>`, link))
	}
	sb.WriteString("<script>var tracking = 'noise';</script>")
	sb.WriteString("</body></html>")
	return sb.String()
}

func TestWebsiteFetcherCrawlFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, testPage("Acme Home", "Welcome to Acme, builders of fine anvils", "/about", "/pricing", "https://elsewhere.example.com/external"))
		case "/about":
			fmt.Fprint(w, testPage("About", "Acme was founded to make anvils great", "/team"))
		case "/pricing":
			fmt.Fprint(w, testPage("Pricing", "Anvils start at ten dollars"))
		case "/team":
			fmt.Fprint(w, testPage("Team", "Three people and a dog"))
		default:
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher := NewWebsiteFetcher(3, 2)
	source := models.BrandSource{OwnerID: "brand-1", SourceType: models.SourceTypeWebsite, HandleOrURL: server.URL}

	items, err := fetcher.Fetch(context.Background(), source, "", 0)
	require.NoError(t, err)

	// Page cap holds even though the site has four reachable pages
	require.Len(t, items, 3)

	home := items[0]
	assert.Equal(t, models.ContentTypePage, home.ContentType)
	assert.Empty(t, home.ExternalID)
	assert.Equal(t, server.URL, home.URL)
	assert.Contains(t, home.Text, "Welcome to Acme")
	assert.NotContains(t, home.Text, "tracking")

	for _, item := range items {
		assert.Equal(t, "brand-1", item.OwnerID)
		assert.True(t, strings.HasPrefix(item.URL, server.URL))
	}
}

func TestWebsiteFetcherCrawlRespectsDepth(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, testPage("Home", "root page", "/level1"))
		case "/level1":
			fmt.Fprint(w, testPage("Level 1", "one hop from home", "/level2"))
		case "/level2":
			fmt.Fprint(w, testPage("Level 2", "two hops from home", "/level3"))
		case "/level3":
			fmt.Fprint(w, testPage("Level 3", "should never be reached"))
		default:
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher := NewWebsiteFetcher(10, 1)
	source := models.BrandSource{OwnerID: "brand-1", HandleOrURL: server.URL}

	items, err := fetcher.Fetch(context.Background(), source, "", 0)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Contains(t, items[1].Text, "one hop")
}

func TestWebsiteFetcherPrefersSitemap(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sitemap.xml":
			w.Header().Set("Content-Type", "application/xml")
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%s/docs</loc></url>
  <url><loc>%s/blog</loc></url>
  <url><loc>https://other-host.example.com/ignored</loc></url>
</urlset>`, server.URL, server.URL)
		case "/docs":
			fmt.Fprint(w, testPage("Docs", "Product documentation lives here", "/hidden"))
		case "/blog":
			fmt.Fprint(w, testPage("Blog", "Latest product announcements"))
		case "/hidden":
			fmt.Fprint(w, testPage("Hidden", "Linked but not in the sitemap"))
		default:
			http.NotFound(w, r)
		}
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	fetcher := NewWebsiteFetcher(10, 2)
	source := models.BrandSource{OwnerID: "brand-1", HandleOrURL: server.URL}

	items, err := fetcher.Fetch(context.Background(), source, "", 0)
	require.NoError(t, err)

	// Sitemap wins: exactly its same-origin URLs, no link-following
	require.Len(t, items, 2)
	urls := []string{items[0].URL, items[1].URL}
	assert.Contains(t, urls, server.URL+"/docs")
	assert.Contains(t, urls, server.URL+"/blog")
	assert.NotContains(t, urls, server.URL+"/hidden")
}

func TestWebsiteFetcherHonorsRobotsPerPage(t *testing.T) {
	var privateHits int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
		case "/":
			fmt.Fprint(w, testPage("Home", "public landing page", "/private", "/open"))
		case "/open":
			fmt.Fprint(w, testPage("Open", "anyone may read this"))
		case "/private":
			privateHits++
			fmt.Fprint(w, testPage("Private", "robots should keep this out"))
		default:
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher := NewWebsiteFetcher(10, 2)
	source := models.BrandSource{OwnerID: "brand-1", HandleOrURL: server.URL}

	items, err := fetcher.Fetch(context.Background(), source, "", 0)
	require.NoError(t, err)

	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotEqual(t, server.URL+"/private", item.URL)
	}
	assert.Zero(t, privateHits, "disallowed page must not be requested")
}

func TestNormalizeRootURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare domain defaults to https", input: "acme.example.com", want: "https://acme.example.com"},
		{name: "explicit scheme preserved", input: "http://acme.example.com/about", want: "http://acme.example.com/about"},
		{name: "empty input rejected", input: "  ", wantErr: true},
		{name: "scheme with no host rejected", input: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := normalizeRootURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed.String())
		})
	}
}

func TestCanonicalPageURL(t *testing.T) {
	assert.Equal(t, canonicalPageURL("https://a.example.com/page/"), canonicalPageURL("https://a.example.com/page"))
	assert.Equal(t, canonicalPageURL("https://a.example.com/page#section"), canonicalPageURL("https://a.example.com/page"))
}
