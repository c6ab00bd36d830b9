// Package roster resolves the ordered list of active (non-eliminated)
// players from the tournament standings page.
package roster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Active-player status markers. Eliminated players carry a
// "Table - Hand - Prize" column instead.
var activeStatuses = map[string]bool{
	"in":     true,
	"folded": true,
	"AWOL":   true,
	"Gone":   true,
}

// Client fetches and parses the standings page.
type Client struct {
	httpClient *http.Client
	url        string
}

// New creates a roster client for the given standings URL.
func New(url string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		url:        url,
	}
}

// FetchActive returns active player names in standings order. Any failure
// surfaces as a descriptive error with no partially-applied state.
func (c *Client) FetchActive(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create standings request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch standings from %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("standings page returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read standings page: %w", err)
	}

	players, err := ParseStandings(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse standings page: %w", err)
	}
	return players, nil
}

// ParseStandings extracts active players from standings HTML. Active rows
// have a numeric rank in the first column and a recognized status in the
// sixth; everything else is ignored.
func ParseStandings(page string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var players []string
	for _, row := range findAll(doc, "tr") {
		cols := findAll(row, "td")
		if len(cols) < 6 {
			continue
		}
		rank := strings.TrimSpace(nodeText(cols[0]))
		if !isDigits(rank) {
			continue
		}
		status := strings.TrimSpace(nodeText(cols[5]))
		if !activeStatuses[status] {
			continue
		}
		if name := strings.TrimSpace(nodeText(cols[1])); name != "" {
			players = append(players, name)
		}
	}

	if len(players) == 0 {
		return nil, fmt.Errorf("no active players found")
	}
	return players, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAll(c, tag)...)
	}
	return out
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
