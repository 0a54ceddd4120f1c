// Package refresher keeps indexed summoner names current. Riot IDs are
// mutable, so stored display names drift until re-resolved by PUUID.
package refresher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/flor3z/game-tools/internal/index"
	"github.com/flor3z/game-tools/internal/riot"
	"github.com/flor3z/game-tools/internal/storage"
)

const (
	// maxAge is how old an entry may get before it is re-resolved
	maxAge = 24 * time.Hour
	// batchSize bounds how many entries one tick refreshes
	batchSize = 50
)

// Refresher periodically re-resolves stale summoner identities
type Refresher struct {
	repo     *storage.Repository
	resolver index.AccountResolver
	interval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new Refresher
func New(repo *storage.Repository, resolver index.AccountResolver, intervalSeconds int) *Refresher {
	return &Refresher{
		repo:     repo,
		resolver: resolver,
		interval: time.Duration(intervalSeconds) * time.Second,
		stopChan: make(chan struct{}),
	}
}

// Start begins the refresh loop
func (rf *Refresher) Start(ctx context.Context) {
	slog.Info("Starting identity refresher", "interval", rf.interval)

	rf.wg.Add(1)
	defer rf.wg.Done()

	ticker := time.NewTicker(rf.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Refresher stopped (context cancelled)")
			return
		case <-rf.stopChan:
			slog.Info("Refresher stopped")
			return
		case <-ticker.C:
			rf.refresh(ctx)
		}
	}
}

// Stop signals the refresher to stop
func (rf *Refresher) Stop() {
	close(rf.stopChan)
	rf.wg.Wait()
}

// refresh re-resolves one batch of stale entries
func (rf *Refresher) refresh(ctx context.Context) {
	cutoff := time.Now().Add(-maxAge)
	stale, err := rf.repo.GetStaleSummoners(cutoff, batchSize)
	if err != nil {
		slog.Error("Failed to get stale summoners", "error", err)
		return
	}

	if len(stale) == 0 {
		slog.Debug("No stale summoners")
		return
	}

	slog.Debug("Refreshing summoners", "count", len(stale))

	for _, s := range stale {
		select {
		case <-ctx.Done():
			return
		default:
			rf.refreshSummoner(ctx, s)
		}
	}
}

// refreshSummoner re-resolves a single entry by PUUID
func (rf *Refresher) refreshSummoner(ctx context.Context, s *storage.Summoner) {
	account, err := rf.resolver.GetAccountByPUUID(ctx, s.Cluster, s.PUUID)
	if err != nil {
		if errors.Is(err, riot.ErrNotFound) {
			slog.Warn("Summoner no longer resolvable", "puuid", s.PUUID)
			return
		}
		slog.Error("Failed to refresh summoner", "puuid", s.PUUID, "error", err)
		return
	}

	if account.GameName != s.GameName || account.TagLine != s.TagLine {
		slog.Info("Summoner renamed",
			"puuid", s.PUUID,
			"from", s.RiotID(),
			"to", account.GameName+"#"+account.TagLine)
	}

	if err := rf.repo.UpdateSummonerIdentity(s.ID, account.GameName, account.TagLine); err != nil {
		slog.Error("Failed to update summoner identity", "puuid", s.PUUID, "error", err)
	}
}
