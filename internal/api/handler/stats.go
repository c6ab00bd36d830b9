package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/railbird/wrgpt-data/internal/api/respond"
	"github.com/railbird/wrgpt-data/internal/cache"
	"github.com/railbird/wrgpt-data/internal/stats"
)

// GetPlayers returns every player seen in the stored corpus.
// @Summary List known players
// @Description Returns all player names seen in stored hands, sorted alphabetically.
// @Tags players
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/v1/players [get]
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "players"
	ttl := cache.TTLPlayers

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	names, err := h.corpus.ListPlayers(r.Context())
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to load player list")
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"players": names,
		"count":   len(names),
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// GetStats computes positional statistics for the requested players.
// @Summary Player statistics
// @Description Computes VPIP, 3-bet, RFI, isolation, steal, and showdown statistics for the given players over every stored hand.
// @Tags stats
// @Produce json
// @Param players query string true "Comma-separated player names"
// @Success 200 {object} map[string]stats.PlayerStats
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/v1/stats [get]
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	players := splitPlayers(r.URL.Query().Get("players"))
	if len(players) == 0 {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_PLAYERS", "players query parameter is required")
		return
	}

	sorted := append([]string(nil), players...)
	sort.Strings(sorted)
	cacheKey := "stats:" + strings.Join(sorted, ",")
	ttl := cache.TTLStats

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	corpus, err := h.corpus.LoadHands(r.Context())
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to load hand corpus")
		return
	}

	result, err := stats.Calculate(corpus, players)
	if err != nil {
		if errors.Is(err, stats.ErrNoPlayers) {
			respond.WriteError(w, http.StatusBadRequest, "MISSING_PLAYERS", "players query parameter is required")
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "STATS_FAILED", "Failed to compute statistics")
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// GetAverageStats computes the field-wide average statistics line.
// @Summary Average player statistics
// @Description Computes the mean statistics line over every player with stored hands. Pass top=N to also include the N highest-VPIP players.
// @Tags stats
// @Produce json
// @Param top query int false "Include the N players with the highest VPIP"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/v1/stats/average [get]
func (h *Handler) GetAverageStats(w http.ResponseWriter, r *http.Request) {
	top, _ := strconv.Atoi(r.URL.Query().Get("top"))

	cacheKey := "stats:average:" + strconv.Itoa(top)
	ttl := cache.TTLStats

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	names, err := h.corpus.ListPlayers(r.Context())
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to load player list")
		return
	}
	if len(names) == 0 {
		respond.WriteError(w, http.StatusNotFound, "NO_PLAYERS", "No players stored yet")
		return
	}

	corpus, err := h.corpus.LoadHands(r.Context())
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to load hand corpus")
		return
	}

	all, err := stats.Calculate(corpus, names)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "STATS_FAILED", "Failed to compute statistics")
		return
	}

	avg, qualified, err := stats.Average(all)
	if err != nil {
		if errors.Is(err, stats.ErrNoQualifiedPlayers) {
			respond.WriteError(w, http.StatusNotFound, "NO_PLAYERS", "No players with hand history")
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "STATS_FAILED", "Failed to compute statistics")
		return
	}

	payload := map[string]interface{}{
		"average":           avg,
		"qualified_players": qualified,
	}
	if top > 0 {
		payload["top_vpip"] = stats.TopByVPIP(all, top)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// splitPlayers parses a comma-separated player list, dropping empty entries.
func splitPlayers(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}
