package collector

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/railbird/wrgpt-data/internal/config"
	"github.com/railbird/wrgpt-data/internal/hand"
)

// HandStore is the slice of the archive the collector writes through.
// *store.Store satisfies it.
type HandStore interface {
	IsProcessed(ctx context.Context, tableID string, handNumber int) (bool, error)
	SaveHand(ctx context.Context, rec *hand.Record) error
}

// Collector drives the fetch → decode → enrich → store pipeline.
type Collector struct {
	client    *client
	store     HandStore
	parser    *hand.Parser
	statusURL string
	logger    *slog.Logger
}

// New creates a Collector backed by the given store.
func New(cfg *config.Config, st HandStore, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		client:    newClient(cfg.HandsBaseURL, cfg.FetchRequestsPerMinute, logger),
		store:     st,
		parser:    hand.NewParser(logger),
		statusURL: cfg.StatusPageURL,
		logger:    logger,
	}
}

// CollectTable gathers every unprocessed hand for one table up to its current
// hand number. Finished tables include their final hand; tables still in play
// exclude the current hand, which is incomplete.
func (c *Collector) CollectTable(ctx context.Context, ts TableStatus) Result {
	result := Result{TablesProcessed: 1}

	fam := tableFamily(ts.TableID)
	endHand := ts.CurrentHand
	if s := strings.TrimSpace(ts.Status); s == "Finished" || s == "Unk" {
		endHand++
	}

	c.logger.Info("collecting table",
		"table", ts.TableID, "status", ts.Status,
		"from", fam.StartHand, "to", endHand-1)

	for handNum := fam.StartHand; handNum < endHand; handNum++ {
		if ctx.Err() != nil {
			result.AddErrorf("table %s: %v", ts.TableID, ctx.Err())
			return result
		}
		c.collectHand(ctx, ts.TableID, handNum, &result)
	}
	return result
}

// collectHand processes one hand, isolating its failures in the result.
// The idempotency ledger is consulted before any fetch or decode work.
func (c *Collector) collectHand(ctx context.Context, tableID string, handNum int, result *Result) {
	processed, err := c.store.IsProcessed(ctx, tableID, handNum)
	if err != nil {
		result.HandsFailed++
		result.AddErrorf("check %s hand %d: %v", tableID, handNum, err)
		return
	}
	if processed {
		result.HandsSkipped++
		return
	}

	text, err := c.client.fetchHand(ctx, tableID, handNum)
	if err != nil {
		c.logger.Warn("could not fetch hand", "table", tableID, "hand", handNum, "error", err)
		result.HandsMissing++
		return
	}

	rec, err := c.parser.Parse(text)
	if err != nil {
		result.HandsFailed++
		result.AddErrorf("parse %s hand %d: %v", tableID, handNum, err)
		return
	}
	hand.Enrich(rec)

	if err := c.store.SaveHand(ctx, rec); err != nil {
		result.HandsFailed++
		result.AddErrorf("store %s hand %d: %v", tableID, handNum, err)
		return
	}
	result.HandsStored++
}

// CollectAll fetches the status listing and collects every active table
// using a bounded worker pool. The fetch limiter is shared across workers,
// so concurrency never exceeds the archive's request budget.
func (c *Collector) CollectAll(ctx context.Context, workers int) Result {
	start := time.Now()
	var result Result

	tables, err := c.FetchTableStatuses(ctx)
	if err != nil {
		result.AddErrorf("status page: %v", err)
		return result
	}
	if len(tables) == 0 {
		c.logger.Info("no active tables to collect")
		return result
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(tables) {
		workers = len(tables)
	}

	ch := make(chan TableStatus, len(tables))
	for _, ts := range tables {
		ch <- ts
	}
	close(ch)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ts := range ch {
				tableResult := c.CollectTable(ctx, ts)
				mu.Lock()
				result.Add(tableResult)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	c.logger.Info("collection complete",
		"duration", time.Since(start).Round(time.Second),
		"summary", result.Summary())
	return result
}
