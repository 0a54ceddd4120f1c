package index

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/flor3z/game-tools/internal/riot"
	"github.com/flor3z/game-tools/internal/storage"
)

type fakeResolver struct {
	byRiotID   func(cluster, gameName, tagLine string) (*riot.Account, error)
	byPUUID    func(cluster, puuid string) (*riot.Account, error)
	bySummoner func(platform, puuid string) (*riot.Summoner, error)
}

func (f *fakeResolver) GetAccountByRiotID(_ context.Context, cluster, gameName, tagLine string) (*riot.Account, error) {
	if f.byRiotID == nil {
		return nil, riot.ErrNotFound
	}
	return f.byRiotID(cluster, gameName, tagLine)
}

func (f *fakeResolver) GetAccountByPUUID(_ context.Context, cluster, puuid string) (*riot.Account, error) {
	if f.byPUUID == nil {
		return nil, riot.ErrNotFound
	}
	return f.byPUUID(cluster, puuid)
}

func (f *fakeResolver) GetSummonerByPUUID(_ context.Context, platform, puuid string) (*riot.Summoner, error) {
	if f.bySummoner == nil {
		return nil, riot.ErrNotFound
	}
	return f.bySummoner(platform, puuid)
}

func newTestIndex(t *testing.T, resolver AccountResolver) *Index {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return New(repo, resolver)
}

func TestNormalizeTrimsEveryField(t *testing.T) {
	t.Parallel()

	got := Normalize(Identity{
		PUUID:    "  p1  ",
		GameName: " Faker",
		TagLine:  "KR1 ",
		Platform: "\tkr\n",
		Cluster:  " asia ",
	})
	want := Identity{PUUID: "p1", GameName: "Faker", TagLine: "KR1", Platform: "kr", Cluster: "asia"}
	if got != want {
		t.Fatalf("Normalize() = %+v, want %+v", got, want)
	}
}

func TestLogWithPUUIDIndexesRecord(t *testing.T) {
	t.Parallel()

	ix := newTestIndex(t, nil)

	result, err := ix.Log(context.Background(), Identity{
		PUUID:    "puuid-1",
		GameName: "Faker",
		TagLine:  "KR1",
		Platform: "kr",
		Cluster:  "asia",
	})
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if !result.Indexed {
		t.Fatal("Indexed = false, want true")
	}
	if result.RiotID != "Faker#KR1" {
		t.Fatalf("RiotID = %q, want %q", result.RiotID, "Faker#KR1")
	}

	entry, err := ix.Lookup(context.Background(), "puuid-1")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if entry.GameName != "Faker" || entry.Platform != "kr" {
		t.Fatalf("entry = %+v", entry)
	}
}

func TestLogResolvesMissingPUUID(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		byRiotID: func(cluster, gameName, tagLine string) (*riot.Account, error) {
			if cluster != "asia" {
				t.Fatalf("cluster = %q, want asia", cluster)
			}
			return &riot.Account{PUUID: "resolved-1", GameName: gameName, TagLine: tagLine}, nil
		},
	}
	ix := newTestIndex(t, resolver)

	result, err := ix.Log(context.Background(), Identity{GameName: "Faker", TagLine: "KR1", Cluster: "asia"})
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if !result.Indexed || !result.Resolved {
		t.Fatalf("result = %+v, want indexed and resolved", result)
	}
	if result.PUUID != "resolved-1" {
		t.Fatalf("PUUID = %q, want resolved-1", result.PUUID)
	}
}

func TestLogUnresolvableNameIsNotIndexed(t *testing.T) {
	t.Parallel()

	ix := newTestIndex(t, &fakeResolver{})

	result, err := ix.Log(context.Background(), Identity{GameName: "Ghost", TagLine: "NA1"})
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if result.Indexed {
		t.Fatal("Indexed = true, want false")
	}
}

func TestLogEmptyIdentityIsAcceptedButNotIndexed(t *testing.T) {
	t.Parallel()

	ix := newTestIndex(t, nil)

	result, err := ix.Log(context.Background(), Identity{})
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if result.Indexed {
		t.Fatal("Indexed = true, want false")
	}
}

func TestLogBackfillsNameFromPUUID(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		byPUUID: func(_, puuid string) (*riot.Account, error) {
			return &riot.Account{PUUID: puuid, GameName: "Chovy", TagLine: "KR1"}, nil
		},
	}
	ix := newTestIndex(t, resolver)

	result, err := ix.Log(context.Background(), Identity{PUUID: "puuid-2"})
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if !result.Indexed || !result.Resolved {
		t.Fatalf("result = %+v, want indexed and resolved", result)
	}
	if result.RiotID != "Chovy#KR1" {
		t.Fatalf("RiotID = %q, want Chovy#KR1", result.RiotID)
	}
}

func TestLogEnrichesFromPlatformSummoner(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{
		bySummoner: func(platform, puuid string) (*riot.Summoner, error) {
			if platform != "kr" {
				t.Fatalf("platform = %q, want kr", platform)
			}
			return &riot.Summoner{PUUID: puuid, SummonerLevel: 742, ProfileIconID: 29}, nil
		},
	}
	ix := newTestIndex(t, resolver)

	result, err := ix.Log(context.Background(), Identity{
		PUUID:    "puuid-3",
		GameName: "Faker",
		TagLine:  "KR1",
		Platform: "kr",
	})
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if result.SummonerLevel != 742 || result.ProfileIconID != 29 {
		t.Fatalf("enrichment = level %d icon %d", result.SummonerLevel, result.ProfileIconID)
	}
}

func TestSuggestMatchesPrefix(t *testing.T) {
	t.Parallel()

	ix := newTestIndex(t, nil)
	ctx := context.Background()

	for _, id := range []Identity{
		{PUUID: "p1", GameName: "Faker", TagLine: "KR1"},
		{PUUID: "p2", GameName: "Fate", TagLine: "NA1"},
		{PUUID: "p3", GameName: "Chovy", TagLine: "KR1"},
	} {
		if _, err := ix.Log(ctx, id); err != nil {
			t.Fatalf("Log(%+v) error = %v", id, err)
		}
	}

	entries, err := ix.Suggest(ctx, "fa", 10)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}
	for _, e := range entries {
		if e.GameName != "Faker" && e.GameName != "Fate" {
			t.Fatalf("unexpected entry %+v", e)
		}
	}
}

func TestSuggestBoundsLimit(t *testing.T) {
	t.Parallel()

	ix := newTestIndex(t, nil)
	ctx := context.Background()

	if _, err := ix.Log(ctx, Identity{PUUID: "p1", GameName: "Faker", TagLine: "KR1"}); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	// Non-positive and oversized limits must not error out
	for _, limit := range []int{-1, 0, 50} {
		if _, err := ix.Suggest(ctx, "", limit); err != nil {
			t.Fatalf("Suggest(limit=%d) error = %v", limit, err)
		}
	}
}
