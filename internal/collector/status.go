package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// TableStatus is one row of the table-by-table status listing.
type TableStatus struct {
	TableID     string
	CurrentHand int
	Status      string
}

// FetchTableStatuses downloads and parses the status listing, returning every
// table that is not broken. Rows with a non-numeric hand number or too few
// columns are skipped.
func (c *Collector) FetchTableStatuses(ctx context.Context) ([]TableStatus, error) {
	body, err := c.client.get(ctx, c.statusURL)
	if err != nil {
		return nil, fmt.Errorf("fetch status page: %w", err)
	}
	tables, err := parseStatusPage(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse status page: %w", err)
	}
	c.logger.Info("found active tables", "count", len(tables))
	return tables, nil
}

// parseStatusPage walks the first <table> of the listing. Column layout:
// table id, current hand number, (unused), status.
func parseStatusPage(page string) ([]TableStatus, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	table := findFirst(doc, "table")
	if table == nil {
		return nil, fmt.Errorf("no table element found")
	}

	var tables []TableStatus
	rows := findAll(table, "tr")
	for i, row := range rows {
		if i == 0 {
			continue // header row
		}
		cols := findAll(row, "td")
		if len(cols) < 4 {
			continue
		}

		tableID := strings.TrimSpace(nodeText(cols[0]))
		handNum, err := strconv.Atoi(strings.TrimSpace(nodeText(cols[1])))
		if err != nil {
			continue
		}
		status := strings.TrimSpace(nodeText(cols[3]))

		if status == "Broken" {
			continue
		}
		tables = append(tables, TableStatus{
			TableID:     tableID,
			CurrentHand: handNum,
			Status:      status,
		})
	}
	return tables, nil
}

// findFirst returns the first element with the given tag, depth-first.
func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findAll collects every element with the given tag, depth-first.
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

// nodeText concatenates all text beneath a node.
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
