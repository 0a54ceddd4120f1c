package riot

import (
	"context"
	"fmt"
	"net/url"
)

// Summoner is the return of the platform Summoner-V4 endpoint
type Summoner struct {
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int    `json:"summonerLevel"`
	RevisionDate  int64  `json:"revisionDate"`
}

// GetSummonerByPUUID retrieves summoner data on a platform host
// (e.g. na1, euw1, kr) by PUUID
func (c *Client) GetSummonerByPUUID(ctx context.Context, platform, puuid string) (*Summoner, error) {
	endpoint := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s",
		c.baseURL(platform), url.PathEscape(puuid))

	var summoner Summoner
	if err := c.get(ctx, endpoint, &summoner); err != nil {
		return nil, fmt.Errorf("failed to get summoner by PUUID: %w", err)
	}

	return &summoner, nil
}
