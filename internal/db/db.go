// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/railbird/wrgpt-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers the statements the store and API use
// on every request path. Prepared statements eliminate parse overhead on the
// per-hand ingestion hot loop.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Idempotency ledger
		"is_hand_processed": "SELECT 1 FROM processed_hands WHERE table_id = $1 AND hand_number = $2",
		"mark_hand_processed": `INSERT INTO processed_hands (table_id, hand_number)
			VALUES ($1, $2) ON CONFLICT (table_id, hand_number) DO NOTHING`,

		// Ingestion
		"upsert_player": `INSERT INTO players (name, last_seen)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET last_seen = EXCLUDED.last_seen
			RETURNING id`,
		"insert_hand": `INSERT INTO hands (
				id, table_id, date_played, small_blind, big_blind, button_seat,
				total_seats, board_cards, total_pot, winner, uncalled_amount
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		"insert_hand_player": `INSERT INTO hand_players (
				hand_id, player_id, seat, starting_stack, net_result, cards_shown, on_vacation
			) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		"insert_action": `INSERT INTO actions (
				hand_id, player_id, street, action_type, amount, is_all_in, sequence_number
			) VALUES ($1,$2,$3,$4,$5,$6,$7)`,

		// Corpus reads
		"select_hands": `SELECT id, table_id, date_played, small_blind, big_blind,
				button_seat, total_seats, board_cards, total_pot, winner, uncalled_amount
			FROM hands ORDER BY id`,
		"select_hand_players": `SELECT hp.hand_id, p.name, hp.seat, hp.starting_stack,
				hp.net_result, hp.cards_shown, hp.on_vacation
			FROM hand_players hp JOIN players p ON p.id = hp.player_id
			ORDER BY hp.hand_id, hp.seat`,
		"select_actions": `SELECT a.hand_id, p.name, a.street, a.action_type,
				a.amount, a.is_all_in, a.sequence_number
			FROM actions a JOIN players p ON p.id = a.player_id
			ORDER BY a.hand_id, a.sequence_number`,

		// Player listing
		"list_players": "SELECT name FROM players ORDER BY name",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
