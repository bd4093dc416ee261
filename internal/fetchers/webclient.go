package fetchers

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

const crawlerUserAgent = "BrandIntel-Bot/1.0 (+https://brandintel.example.com/bot)"

// WebClient wraps an HTTP client with settings tuned for crawling
type WebClient struct {
	httpClient *http.Client
	userAgent  string
}

// NewWebClient creates a new HTTP client for the website fetcher
func NewWebClient() *WebClient {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20, // default is 2, far too low for a crawl
		MaxConnsPerHost:     50,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableCompression:  false,

		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &WebClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects (max 10)")
				}
				return nil
			},
		},
		userAgent: crawlerUserAgent,
	}
}

// Get performs an HTTP GET request with proper headers
func (c *WebClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	return c.httpClient.Do(req)
}
