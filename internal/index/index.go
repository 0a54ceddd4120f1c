// Package index implements the summoner identity index: it normalizes
// incoming identity records, resolves missing fields through the Riot
// account API, and serves name suggestions from local storage.
package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/flor3z/game-tools/internal/riot"
	"github.com/flor3z/game-tools/internal/storage"
)

const (
	// DefaultLimit is used when a suggest caller passes no usable limit
	DefaultLimit = 8
	// MaxLimit caps suggest result counts
	MaxLimit = 20
)

// Identity is the record accepted by the log operation. All fields are
// optional at this boundary; a record needs a PUUID or a full
// GameName/TagLine pair to be indexed.
type Identity struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
	Platform string `json:"platform"`
	Cluster  string `json:"cluster"`
}

// Normalize trims every field to a plain string
func Normalize(raw Identity) Identity {
	return Identity{
		PUUID:    strings.TrimSpace(raw.PUUID),
		GameName: strings.TrimSpace(raw.GameName),
		TagLine:  strings.TrimSpace(raw.TagLine),
		Platform: strings.TrimSpace(raw.Platform),
		Cluster:  strings.TrimSpace(raw.Cluster),
	}
}

// LogResult reports what the index did with a logged identity
type LogResult struct {
	Indexed  bool   `json:"indexed"`
	Resolved bool   `json:"resolved"`
	PUUID    string `json:"puuid,omitempty"`
	RiotID   string `json:"riotId,omitempty"`

	// Filled when the record names a platform and the summoner
	// lookup succeeds there
	SummonerLevel int `json:"summonerLevel,omitempty"`
	ProfileIconID int `json:"profileIconId,omitempty"`
}

// Entry is one suggest/lookup result
type Entry struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
	Platform string `json:"platform,omitempty"`
	Cluster  string `json:"cluster,omitempty"`
}

// AccountResolver resolves Riot accounts and summoner profiles.
// Satisfied by *riot.Client.
type AccountResolver interface {
	GetAccountByRiotID(ctx context.Context, cluster, gameName, tagLine string) (*riot.Account, error)
	GetAccountByPUUID(ctx context.Context, cluster, puuid string) (*riot.Account, error)
	GetSummonerByPUUID(ctx context.Context, platform, puuid string) (*riot.Summoner, error)
}

// Index is the summoner identity index service
type Index struct {
	repo     *storage.Repository
	resolver AccountResolver
}

// New creates an Index. resolver may be nil, in which case records are
// stored as given without Riot lookups.
func New(repo *storage.Repository, resolver AccountResolver) *Index {
	return &Index{repo: repo, resolver: resolver}
}

// Log normalizes an identity, fills missing fields through the Riot
// account API where possible, and upserts the record. Records without a
// usable key are accepted but reported as not indexed.
func (ix *Index) Log(ctx context.Context, raw Identity) (*LogResult, error) {
	id := Normalize(raw)
	resolved := false

	if id.PUUID == "" && id.GameName != "" && id.TagLine != "" && ix.resolver != nil {
		account, err := ix.resolver.GetAccountByRiotID(ctx, id.Cluster, id.GameName, id.TagLine)
		if err != nil {
			if errors.Is(err, riot.ErrNotFound) {
				return &LogResult{Indexed: false}, nil
			}
			return nil, fmt.Errorf("failed to resolve riot id: %w", err)
		}
		id.PUUID = account.PUUID
		id.GameName = account.GameName
		id.TagLine = account.TagLine
		resolved = true
	}

	if id.PUUID == "" {
		// Nothing to key the record on
		return &LogResult{Indexed: false}, nil
	}

	if id.GameName == "" && ix.resolver != nil {
		// Best effort: backfill the display name from the PUUID
		account, err := ix.resolver.GetAccountByPUUID(ctx, id.Cluster, id.PUUID)
		if err == nil {
			id.GameName = account.GameName
			id.TagLine = account.TagLine
			resolved = true
		} else if !errors.Is(err, riot.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve puuid: %w", err)
		}
	}

	s := &storage.Summoner{
		PUUID:    id.PUUID,
		GameName: id.GameName,
		TagLine:  id.TagLine,
		Platform: id.Platform,
		Cluster:  id.Cluster,
	}
	if err := ix.repo.UpsertSummoner(s); err != nil {
		return nil, fmt.Errorf("failed to store summoner: %w", err)
	}

	result := &LogResult{
		Indexed:  true,
		Resolved: resolved,
		PUUID:    s.PUUID,
		RiotID:   s.RiotID(),
	}

	if id.Platform != "" && ix.resolver != nil {
		// Best effort enrichment from the platform summoner endpoint
		summoner, err := ix.resolver.GetSummonerByPUUID(ctx, id.Platform, id.PUUID)
		if err != nil {
			slog.Debug("Summoner profile lookup failed", "puuid", id.PUUID, "platform", id.Platform, "error", err)
		} else {
			result.SummonerLevel = summoner.SummonerLevel
			result.ProfileIconID = summoner.ProfileIconID
		}
	}

	return result, nil
}

// Suggest returns up to limit entries matching the query prefix,
// most recently seen first
func (ix *Index) Suggest(ctx context.Context, query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	summoners, err := ix.repo.SuggestSummoners(strings.TrimSpace(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query summoners: %w", err)
	}

	entries := make([]Entry, 0, len(summoners))
	for _, s := range summoners {
		entries = append(entries, Entry{
			PUUID:    s.PUUID,
			GameName: s.GameName,
			TagLine:  s.TagLine,
			Platform: s.Platform,
			Cluster:  s.Cluster,
		})
	}
	return entries, nil
}

// Lookup fetches one indexed entry by PUUID
func (ix *Index) Lookup(ctx context.Context, puuid string) (*Entry, error) {
	s, err := ix.repo.GetSummonerByPUUID(strings.TrimSpace(puuid))
	if err != nil {
		return nil, err
	}
	return &Entry{
		PUUID:    s.PUUID,
		GameName: s.GameName,
		TagLine:  s.TagLine,
		Platform: s.Platform,
		Cluster:  s.Cluster,
	}, nil
}
