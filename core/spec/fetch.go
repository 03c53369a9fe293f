package spec

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stubgen/stubgen/core/logger"
)

var fetchClient = &http.Client{Timeout: 30 * time.Second}

// Fetch downloads an OpenAPI spec, using the cache if available. Pass a nil
// cache (or refresh=true) to force a download.
func Fetch(ctx context.Context, url string, cache *Cache, refresh bool) ([]byte, error) {
	if cache != nil && !refresh {
		if data := cache.Get(url); data != nil {
			logger.Debug("Using cached spec for %s", url)
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/x-yaml, text/yaml")

	resp, err := fetchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching spec from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching spec from %s: HTTP %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading spec: %w", err)
	}

	if cache != nil {
		if err := cache.Put(url, data); err != nil {
			// Non-fatal, just log
			logger.Warn("Failed to cache spec: %v", err)
		}
	}

	return data, nil
}
