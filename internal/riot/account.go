package riot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrNotFound is returned when the API reports no record for the lookup
var ErrNotFound = errors.New("riot: not found")

// Account represents a Riot account from the Account-V1 API
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// GetAccountByRiotID retrieves account information by Riot ID.
// cluster selects the regional routing host (americas/asia/europe/sea).
func (c *Client) GetAccountByRiotID(ctx context.Context, cluster, gameName, tagLine string) (*Account, error) {
	if !ValidCluster(cluster) {
		cluster = DefaultCluster
	}

	// URL encode the parameters
	encodedGameName := url.PathEscape(gameName)
	encodedTagLine := url.PathEscape(tagLine)

	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.baseURL(cluster), encodedGameName, encodedTagLine)

	var account Account
	if err := c.get(ctx, endpoint, &account); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get account by Riot ID: %w", err)
	}

	return &account, nil
}

// GetAccountByPUUID retrieves account information by PUUID
func (c *Client) GetAccountByPUUID(ctx context.Context, cluster, puuid string) (*Account, error) {
	if !ValidCluster(cluster) {
		cluster = DefaultCluster
	}

	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-puuid/%s",
		c.baseURL(cluster), url.PathEscape(puuid))

	var account Account
	if err := c.get(ctx, endpoint, &account); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get account by PUUID: %w", err)
	}

	return &account, nil
}
