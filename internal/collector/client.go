// Package collector fetches hand transcripts and table listings from the
// hand archive and drives them through decode, enrichment, and storage.
//
// The archive is a plain static file server, so fetching is throttled with a
// token bucket limiter and every per-hand failure is isolated: one bad hand
// never blocks or corrupts the rest of a batch.
package collector

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/railbird/wrgpt-data/internal/config"
)

// client is the shared rate-limited HTTP client for all archive endpoints.
type client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

func newClient(baseURL string, requestsPerMinute int, logger *slog.Logger) *client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// get performs a rate-limited GET and returns the response body.
func (c *client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("archive returned %d for %s", resp.StatusCode, url)
	}
	return body, nil
}

// tableFamily resolves the archive tree and first archived hand number for a
// table id. Tables that migrated between trees start partway in.
func tableFamily(tableID string) config.TableFamily {
	if tableID != "" {
		if fam, ok := config.TableFamilies[tableID[0]]; ok {
			return fam
		}
	}
	return config.DefaultTableFamily
}

// handURL builds the transcript URL for one hand.
func (c *client) handURL(tableID string, handNumber int) string {
	fam := tableFamily(tableID)
	return fmt.Sprintf("%s%s/hands/%s_%d.txt", c.baseURL, fam.PathPrefix, tableID, handNumber)
}

// fetchHand retrieves a single hand transcript.
func (c *client) fetchHand(ctx context.Context, tableID string, handNumber int) (string, error) {
	body, err := c.get(ctx, c.handURL(tableID, handNumber))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
