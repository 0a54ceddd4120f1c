package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/flor3z/game-tools/internal/index"
	"github.com/flor3z/game-tools/internal/wow"
)

// SummonerIndex is the identity index behind the LoL tool routes
type SummonerIndex interface {
	Log(ctx context.Context, id index.Identity) (*index.LogResult, error)
	Suggest(ctx context.Context, query string, limit int) ([]index.Entry, error)
}

// CharacterStatsFetcher fetches World of Warcraft character stats
type CharacterStatsFetcher interface {
	GetCharacterStats(ctx context.Context, q wow.CharacterQuery) (*wow.CharacterStats, error)
}

// Handlers holds the route handlers and their collaborators
type Handlers struct {
	index SummonerIndex
	stats CharacterStatsFetcher
}

// NewHandlers creates the route handlers
func NewHandlers(idx SummonerIndex, stats CharacterStatsFetcher) *Handlers {
	return &Handlers{index: idx, stats: stats}
}

// handleSummonerLog accepts an identity record and forwards it to the
// index. Any failure, including malformed JSON, is a 400.
func (h *Handlers) handleSummonerLog(w http.ResponseWriter, r *http.Request) {
	var id index.Identity
	if err := json.NewDecoder(r.Body).Decode(&id); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":    false,
			"error": "invalid JSON body: " + err.Error(),
		})
		return
	}

	result, err := h.index.Log(r.Context(), index.Normalize(id))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
		*index.LogResult
	}{true, result})
}

// handleSummonerSuggest serves name suggestions. The limit parameter
// falls back to the default on unparseable or non-positive input and is
// capped at the maximum.
func (h *Handlers) handleSummonerSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = strconv.Itoa(index.DefaultLimit)
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = index.DefaultLimit
	}
	if limit > index.MaxLimit {
		limit = index.MaxLimit
	}

	results, err := h.index.Suggest(r.Context(), query, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}
	if results == nil {
		results = []index.Entry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"results": results,
	})
}

// handleWowCharacterStats validates the query and proxies the Blizzard
// stats fetch. Successful responses are CDN-cacheable.
func (h *Handlers) handleWowCharacterStats(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	region := params.Get("region")
	if region == "" {
		region = "us"
	}
	if !wow.ValidRegion(region) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid region"})
		return
	}

	realmSlug := params.Get("realmSlug")
	name := params.Get("name")
	if realmSlug == "" || name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing realmSlug or name"})
		return
	}

	stats, err := h.stats.GetCharacterStats(r.Context(), wow.CharacterQuery{
		Region:    region,
		RealmSlug: realmSlug,
		Name:      name,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Failed to fetch character stats",
			"details": err.Error(),
		})
		return
	}

	w.Header().Set("Cache-Control", "s-maxage=600, stale-while-revalidate=60")
	writeJSON(w, http.StatusOK, stats)
}

// handleHealthz reports liveness
func (h *Handlers) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
