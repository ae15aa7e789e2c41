package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// LogoCache resolves logo URLs to data URIs and keeps them in memory with a
// TTL. It is an explicit dependency of the renderer's owner, never a
// package-level variable, so tests run in isolation.
type LogoCache struct {
	client *http.Client
	ttl    time.Duration

	mu      sync.RWMutex
	entries map[string]logoEntry
}

type logoEntry struct {
	dataURI   string
	expiresAt time.Time
}

func NewLogoCache(client *http.Client, ttl time.Duration) *LogoCache {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &LogoCache{
		client:  client,
		ttl:     ttl,
		entries: make(map[string]logoEntry),
	}
}

// Resolve fetches the logo at url as a data URI, serving from cache while
// fresh. Failures return an empty string: a missing logo never blocks a
// document build.
func (c *LogoCache) Resolve(ctx context.Context, url string) string {
	if url == "" {
		return ""
	}

	c.mu.RLock()
	entry, ok := c.entries[url]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.dataURI
	}

	uri, err := c.fetch(ctx, url)
	if err != nil {
		return ""
	}

	c.mu.Lock()
	c.entries[url] = logoEntry{dataURI: uri, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return uri
}

func (c *LogoCache) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("logo fetch returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(body), nil
}
