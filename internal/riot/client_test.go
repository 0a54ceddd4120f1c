package riot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetAccountByRiotID(t *testing.T) {
	t.Parallel()

	var gotPath, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Riot-Token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"puuid":"p1","gameName":"Faker","tagLine":"KR1"}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	account, err := client.GetAccountByRiotID(context.Background(), ClusterAsia, "Faker", "KR1")
	if err != nil {
		t.Fatalf("GetAccountByRiotID() error = %v", err)
	}

	if gotPath != "/riot/account/v1/accounts/by-riot-id/Faker/KR1" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotToken != "test-key" {
		t.Fatalf("token header = %q, want test-key", gotToken)
	}
	if account.PUUID != "p1" || account.GameName != "Faker" || account.TagLine != "KR1" {
		t.Fatalf("account = %+v", account)
	}
}

func TestGetAccountByRiotIDEscapesNames(t *testing.T) {
	t.Parallel()

	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		w.Write([]byte(`{"puuid":"p1","gameName":"Hide on bush","tagLine":"KR1"}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("k", srv.URL)
	if _, err := client.GetAccountByRiotID(context.Background(), ClusterAsia, "Hide on bush", "KR1"); err != nil {
		t.Fatalf("GetAccountByRiotID() error = %v", err)
	}
	if gotURI != "/riot/account/v1/accounts/by-riot-id/Hide%20on%20bush/KR1" {
		t.Fatalf("uri = %q", gotURI)
	}
}

func TestGetAccountByPUUIDNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":{"status_code":404}}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("k", srv.URL)
	_, err := client.GetAccountByPUUID(context.Background(), ClusterAmericas, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestGetSummonerByPUUID(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"puuid":"p1","profileIconId":123,"summonerLevel":500,"revisionDate":1700000000000}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("k", srv.URL)
	summoner, err := client.GetSummonerByPUUID(context.Background(), "kr", "p1")
	if err != nil {
		t.Fatalf("GetSummonerByPUUID() error = %v", err)
	}
	if gotPath != "/lol/summoner/v4/summoners/by-puuid/p1" {
		t.Fatalf("path = %q", gotPath)
	}
	if summoner.SummonerLevel != 500 || summoner.ProfileIconID != 123 {
		t.Fatalf("summoner = %+v", summoner)
	}
}

func TestGetAccountUpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("k", srv.URL)
	if _, err := client.GetAccountByRiotID(context.Background(), ClusterEurope, "A", "B"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestValidCluster(t *testing.T) {
	t.Parallel()

	for _, cluster := range []string{ClusterAmericas, ClusterAsia, ClusterEurope, ClusterSEA} {
		if !ValidCluster(cluster) {
			t.Fatalf("ValidCluster(%q) = false", cluster)
		}
	}
	for _, cluster := range []string{"", "kr", "na1", "moon"} {
		if ValidCluster(cluster) {
			t.Fatalf("ValidCluster(%q) = true", cluster)
		}
	}
}
