package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railbird/wrgpt-data/internal/hand"
)

// fakeConn and fakeTx stand in for Postgres so the single-transaction write
// path and the ledger gating can be asserted directly.
type fakeConn struct {
	tx *fakeTx
}

func (c *fakeConn) Begin(ctx context.Context) (pgx.Tx, error) {
	return c.tx, nil
}

func (c *fakeConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return idRow{}
}

func (c *fakeConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

type fakeTx struct {
	// ledgerRows is what the mark_hand_processed insert reports: 1 for a
	// fresh hand, 0 when the ledger already holds the identifier.
	ledgerRows int64

	execs      []string
	nextID     int64
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, sql)
	if sql == "mark_hand_processed" {
		return pgconn.NewCommandTag(fmt.Sprintf("INSERT 0 %d", t.ledgerRows)), nil
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	t.execs = append(t.execs, sql)
	t.nextID++
	return idRow{id: t.nextID}
}

func (t *fakeTx) Commit(ctx context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(ctx context.Context) error { t.rolledBack = true; return nil }

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *fakeTx) Conn() *pgx.Conn                           { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects            { return pgx.LargeObjects{} }

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

type idRow struct {
	id int64
}

func (r idRow) Scan(dest ...any) error {
	if len(dest) > 0 {
		if p, ok := dest[0].(*int64); ok {
			*p = r.id
		}
	}
	return nil
}

func testRecord() *hand.Record {
	sb, bb, btn := 50, 100, 3
	amt := 100
	return &hand.Record{
		TableID:    "b1",
		HandNumber: 42,
		TotalSeats: 3,
		SmallBlind: &sb,
		BigBlind:   &bb,
		ButtonSeat: &btn,
		TotalPot:   150,
		Winner:     "Ben",
		Seats: []hand.Seat{
			{Number: 1, Player: "Ann", Stack: 5000},
			{Number: 2, Player: "Ben", Stack: 8000},
		},
		Actions: []hand.Action{
			{Player: "Ann", Street: hand.Preflop, Type: hand.ActionBlind, Amount: &amt, Sequence: 1},
			{Player: "Ben", Street: hand.Preflop, Type: hand.ActionCheck, Sequence: 2},
		},
	}
}

func countExecs(execs []string, name string) int {
	n := 0
	for _, e := range execs {
		if e == name {
			n++
		}
	}
	return n
}

func TestSaveHandWritesOnce(t *testing.T) {
	tx := &fakeTx{ledgerRows: 1}
	st := New(&fakeConn{tx: tx}, nil)

	err := st.SaveHand(context.Background(), testRecord())
	require.NoError(t, err)

	assert.True(t, tx.committed)
	assert.Equal(t, 1, countExecs(tx.execs, "mark_hand_processed"))
	assert.Equal(t, 1, countExecs(tx.execs, "insert_hand"))
	assert.Equal(t, 2, countExecs(tx.execs, "upsert_player"))
	assert.Equal(t, 2, countExecs(tx.execs, "insert_hand_player"))
	assert.Equal(t, 2, countExecs(tx.execs, "insert_action"))
}

func TestSaveHandAlreadyStored(t *testing.T) {
	tx := &fakeTx{ledgerRows: 0}
	st := New(&fakeConn{tx: tx}, nil)

	err := st.SaveHand(context.Background(), testRecord())
	require.NoError(t, err)

	// The conflicting ledger insert short-circuits the write: nothing else
	// runs and the transaction never commits.
	assert.Equal(t, []string{"mark_hand_processed"}, tx.execs)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}
