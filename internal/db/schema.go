package db

import (
	"context"
	"fmt"
)

// schemaSQL creates every table and index the tracker uses. All statements
// are idempotent so initdb can run against an existing database.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS players (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	name TEXT UNIQUE NOT NULL,
	last_seen TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS hands (
	id TEXT PRIMARY KEY,
	table_id TEXT NOT NULL,
	date_played TIMESTAMPTZ,
	small_blind INTEGER,
	big_blind INTEGER,
	button_seat INTEGER,
	total_seats INTEGER NOT NULL,
	board_cards TEXT,
	total_pot INTEGER NOT NULL DEFAULT 0,
	winner TEXT,
	uncalled_amount INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS hand_players (
	hand_id TEXT NOT NULL REFERENCES hands(id),
	player_id BIGINT NOT NULL REFERENCES players(id),
	seat INTEGER NOT NULL,
	starting_stack INTEGER NOT NULL DEFAULT 0,
	net_result INTEGER,
	cards_shown TEXT,
	on_vacation BOOLEAN NOT NULL DEFAULT FALSE,
	PRIMARY KEY (hand_id, player_id)
);

CREATE TABLE IF NOT EXISTS actions (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	hand_id TEXT NOT NULL REFERENCES hands(id),
	player_id BIGINT NOT NULL REFERENCES players(id),
	street TEXT NOT NULL CHECK (street IN ('preflop','flop','turn','river')),
	action_type TEXT NOT NULL CHECK (action_type IN
		('fold','check','bet','raise','call','blind','vacation_fold')),
	amount INTEGER,
	is_all_in BOOLEAN NOT NULL DEFAULT FALSE,
	sequence_number INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS processed_hands (
	table_id TEXT NOT NULL,
	hand_number INTEGER NOT NULL,
	processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (table_id, hand_number)
);

CREATE INDEX IF NOT EXISTS idx_hands_table ON hands(table_id);
CREATE INDEX IF NOT EXISTS idx_actions_hand ON actions(hand_id);
CREATE INDEX IF NOT EXISTS idx_actions_player ON actions(player_id);
CREATE INDEX IF NOT EXISTS idx_hand_players_player ON hand_players(player_id);
`

// InitSchema creates the tracker schema if it does not exist.
func InitSchema(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}
