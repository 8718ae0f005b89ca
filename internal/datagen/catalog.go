package datagen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// catalogProduct is the slice of the public catalog payload we care about:
// an identifier and a title. Prices and IDs from the catalog are never used.
type catalogProduct struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// FetchCatalogNames makes a single timeout-bounded GET against a public
// product catalog and returns its titles. There is no retry: any failure is
// the caller's cue to fall back to locally generated names.
func FetchCatalogNames(ctx context.Context, url string, timeout time.Duration) ([]string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	var items []catalogProduct
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	var names []string
	for _, item := range items {
		if item.Title != "" {
			names = append(names, item.Title)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("catalog response contained no usable titles")
	}
	return names, nil
}

// FallbackNames produces locally generated base names when the catalog is
// unreachable. Deterministic for a seeded context.
func (gc *Context) FallbackNames(count int) []string {
	if count <= 0 {
		count = 20
	}
	names := make([]string, count)
	for i := range names {
		names[i] = gc.faker.ProductName()
	}
	return names
}
