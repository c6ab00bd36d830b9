package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railbird/wrgpt-data/internal/cache"
	"github.com/railbird/wrgpt-data/internal/config"
	"github.com/railbird/wrgpt-data/internal/hand"
	"github.com/railbird/wrgpt-data/internal/stats"
)

type stubSource struct {
	hands   []hand.Record
	players []string
	err     error
}

func (s *stubSource) LoadHands(ctx context.Context) ([]hand.Record, error) {
	return s.hands, s.err
}

func (s *stubSource) ListPlayers(ctx context.Context) ([]string, error) {
	return s.players, s.err
}

func intp(n int) *int { return &n }

func fixtureHand() hand.Record {
	return hand.Record{
		TableID:    "b7",
		HandNumber: 10,
		TotalSeats: 3,
		Seats: []hand.Seat{
			{Number: 1, Player: "Alice"},
			{Number: 2, Player: "Bob"},
			{Number: 3, Player: "Carol"},
		},
		Actions: []hand.Action{
			{Player: "Alice", Street: hand.Preflop, Type: hand.ActionBlind, Amount: intp(100), Sequence: 1},
			{Player: "Bob", Street: hand.Preflop, Type: hand.ActionBlind, Amount: intp(200), Sequence: 2},
			{Player: "Carol", Street: hand.Preflop, Type: hand.ActionRaise, Amount: intp(400), Sequence: 3},
			{Player: "Alice", Street: hand.Preflop, Type: hand.ActionFold, Sequence: 4},
			{Player: "Bob", Street: hand.Preflop, Type: hand.ActionFold, Sequence: 5},
		},
		Winner: "Carol",
	}
}

func newTestHandler(src HandSource) *Handler {
	return New(nil, src, cache.New(true), &config.Config{})
}

func TestGetPlayers(t *testing.T) {
	h := newTestHandler(&stubSource{players: []string{"Alice", "Bob"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/players", nil)
	rr := httptest.NewRecorder()
	h.GetPlayers(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "MISS", rr.Header().Get("X-Cache"))
	assert.NotEmpty(t, rr.Header().Get("ETag"))

	var body struct {
		Players []string `json:"players"`
		Count   int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, []string{"Alice", "Bob"}, body.Players)
	assert.Equal(t, 2, body.Count)

	// Second request is a cache hit.
	rr = httptest.NewRecorder()
	h.GetPlayers(rr, req)
	assert.Equal(t, "HIT", rr.Header().Get("X-Cache"))
}

func TestGetPlayersError(t *testing.T) {
	h := newTestHandler(&stubSource{err: errors.New("connection refused")})

	rr := httptest.NewRecorder()
	h.GetPlayers(rr, httptest.NewRequest(http.MethodGet, "/api/v1/players", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestGetStats(t *testing.T) {
	h := newTestHandler(&stubSource{hands: []hand.Record{fixtureHand()}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats?players=Carol,Alice", nil)
	rr := httptest.NewRecorder()
	h.GetStats(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]stats.PlayerStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Contains(t, body, "Carol")
	assert.Equal(t, 1, body["Carol"].TotalHands)
	assert.Equal(t, 1, body["Carol"].VPIPHands)
	assert.Equal(t, 0, body["Alice"].VPIPHands)
}

func TestGetStatsMissingPlayers(t *testing.T) {
	h := newTestHandler(&stubSource{})

	rr := httptest.NewRecorder()
	h.GetStats(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetStatsETagRevalidation(t *testing.T) {
	h := newTestHandler(&stubSource{hands: []hand.Record{fixtureHand()}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats?players=Carol", nil)
	rr := httptest.NewRecorder()
	h.GetStats(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/stats?players=Carol", nil)
	req.Header.Set("If-None-Match", etag)
	rr = httptest.NewRecorder()
	h.GetStats(rr, req)
	assert.Equal(t, http.StatusNotModified, rr.Code)
}

func TestGetAverageStats(t *testing.T) {
	h := newTestHandler(&stubSource{
		hands:   []hand.Record{fixtureHand()},
		players: []string{"Alice", "Bob", "Carol"},
	})

	rr := httptest.NewRecorder()
	h.GetAverageStats(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stats/average?top=2", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Average          stats.PlayerStats   `json:"average"`
		QualifiedPlayers int                 `json:"qualified_players"`
		TopVPIP          []stats.PlayerStats `json:"top_vpip"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, stats.AverageName, body.Average.Name)
	assert.Equal(t, 3, body.QualifiedPlayers)
	require.Len(t, body.TopVPIP, 2)
	assert.Equal(t, "Carol", body.TopVPIP[0].Name)
}

func TestGetAverageStatsNoPlayers(t *testing.T) {
	h := newTestHandler(&stubSource{})

	rr := httptest.NewRecorder()
	h.GetAverageStats(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stats/average", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
