// Package store persists enriched hand records and reads the corpus back for
// the statistics engine. Each hand commits atomically: seats, actions,
// derived fields, and the idempotency ledger row succeed or fail together,
// so readers never observe a partially written hand.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/railbird/wrgpt-data/internal/hand"
)

// Conn is the database surface the store needs. *db.Pool satisfies it; tests
// substitute a fake so the ledger gating is checkable without Postgres.
type Conn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store is the append-only hand archive over Postgres.
type Store struct {
	pool   Conn
	logger *slog.Logger
}

// New creates a Store.
func New(pool Conn, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, logger: logger}
}

// IsProcessed reports whether a hand identifier is already in the ledger.
// Ingestion consults this before any fetch or decode work, so at-least-once
// delivery from the collector is safe.
func (s *Store) IsProcessed(ctx context.Context, tableID string, handNumber int) (bool, error) {
	var one int
	err := s.pool.QueryRow(ctx, "is_hand_processed", tableID, handNumber).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check processed hand: %w", err)
	}
	return true, nil
}

// SaveHand writes one enriched record in a single transaction. Re-saving an
// already-stored hand identifier is a no-op, so storing identical text twice
// leaves the corpus in the same state as storing it once.
func (s *Store) SaveHand(ctx context.Context, rec *hand.Record) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The ledger row gates the whole write: a conflict means another pass
	// already committed this hand.
	tag, err := tx.Exec(ctx, "mark_hand_processed", rec.TableID, rec.HandNumber)
	if err != nil {
		return fmt.Errorf("mark hand %s processed: %w", rec.ID(), err)
	}
	if tag.RowsAffected() == 0 {
		s.logger.Debug("hand already stored", "hand", rec.ID())
		return nil
	}

	// Players appear in both the seat table and the action log; actions can
	// name players the seat table missed (and vice versa).
	names := make(map[string]bool)
	for _, seat := range rec.Seats {
		names[seat.Player] = true
	}
	for _, a := range rec.Actions {
		names[a.Player] = true
	}

	now := time.Now().UTC()
	playerIDs := make(map[string]int64, len(names))
	for name := range names {
		var id int64
		if err := tx.QueryRow(ctx, "upsert_player", name, now).Scan(&id); err != nil {
			return fmt.Errorf("upsert player %q: %w", name, err)
		}
		playerIDs[name] = id
	}

	var datePlayed *time.Time
	if !rec.Date.IsZero() {
		datePlayed = &rec.Date
	}
	_, err = tx.Exec(ctx, "insert_hand",
		rec.ID(), rec.TableID, datePlayed,
		rec.SmallBlind, rec.BigBlind, rec.ButtonSeat,
		rec.TotalSeats, nilEmpty(rec.Board), rec.TotalPot,
		nilEmpty(rec.Winner), rec.UncalledAmount,
	)
	if err != nil {
		return fmt.Errorf("insert hand %s: %w", rec.ID(), err)
	}

	for _, seat := range rec.Seats {
		_, err = tx.Exec(ctx, "insert_hand_player",
			rec.ID(), playerIDs[seat.Player], seat.Number,
			seat.Stack, seat.NetResult, nilEmpty(seat.CardsShown), seat.OnVacation,
		)
		if err != nil {
			return fmt.Errorf("insert hand player %q: %w", seat.Player, err)
		}
	}

	for _, a := range rec.Actions {
		_, err = tx.Exec(ctx, "insert_action",
			rec.ID(), playerIDs[a.Player], a.Street.String(), string(a.Type),
			a.Amount, a.AllIn, a.Sequence,
		)
		if err != nil {
			return fmt.Errorf("insert action %d: %w", a.Sequence, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit hand %s: %w", rec.ID(), err)
	}
	s.logger.Info("stored hand", "hand", rec.ID(),
		"seats", len(rec.Seats), "actions", len(rec.Actions))
	return nil
}

// ListPlayers returns every player name on record, ordered.
func (s *Store) ListPlayers(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, "list_players")
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan player name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// nilEmpty maps "" to NULL for optional text columns.
func nilEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
