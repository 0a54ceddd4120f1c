package wow

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// CharacterQuery identifies a character to look up
type CharacterQuery struct {
	Region    string
	RealmSlug string
	Name      string
}

// CharacterStats is the merged stats document returned to callers
type CharacterStats struct {
	Name      string `json:"name"`
	Realm     string `json:"realm"`
	Region    string `json:"region"`
	Level     int    `json:"level"`
	Faction   string `json:"faction"`
	Class     string `json:"class"`
	ItemLevel int    `json:"itemLevel"`

	Health           int64   `json:"health"`
	Power            int64   `json:"power"`
	PowerType        string  `json:"powerType"`
	Strength         int     `json:"strength"`
	Agility          int     `json:"agility"`
	Intellect        int     `json:"intellect"`
	Stamina          int     `json:"stamina"`
	CritPct          float64 `json:"critPct"`
	HastePct         float64 `json:"hastePct"`
	MasteryPct       float64 `json:"masteryPct"`
	VersatilityBonus float64 `json:"versatilityBonus"`
}

// characterProfile is the subset of /profile/wow/character we consume
type characterProfile struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Realm struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"realm"`
	Faction struct {
		Name string `json:"name"`
	} `json:"faction"`
	CharacterClass struct {
		Name string `json:"name"`
	} `json:"character_class"`
	EquippedItemLevel int `json:"equipped_item_level"`
}

// characterStatistics is the subset of the statistics endpoint we consume
type characterStatistics struct {
	Health    int64 `json:"health"`
	Power     int64 `json:"power"`
	PowerType struct {
		Name string `json:"name"`
	} `json:"power_type"`
	Strength struct {
		Effective int `json:"effective"`
	} `json:"strength"`
	Agility struct {
		Effective int `json:"effective"`
	} `json:"agility"`
	Intellect struct {
		Effective int `json:"effective"`
	} `json:"intellect"`
	Stamina struct {
		Effective int `json:"effective"`
	} `json:"stamina"`
	MeleeCrit struct {
		Value float64 `json:"value"`
	} `json:"melee_crit"`
	MeleeHaste struct {
		Value float64 `json:"value"`
	} `json:"melee_haste"`
	Mastery struct {
		Value float64 `json:"value"`
	} `json:"mastery"`
	VersatilityDamageDoneBonus float64 `json:"versatility_damage_done_bonus"`
}

// GetCharacterStats fetches the character profile and statistics and
// merges them into a single document. Character names are lowercased as
// required by the profile API URLs.
func (c *Client) GetCharacterStats(ctx context.Context, q CharacterQuery) (*CharacterStats, error) {
	if !ValidRegion(q.Region) {
		return nil, fmt.Errorf("unsupported region: %s", q.Region)
	}

	realm := url.PathEscape(strings.ToLower(q.RealmSlug))
	name := url.PathEscape(strings.ToLower(q.Name))
	basePath := fmt.Sprintf("/profile/wow/character/%s/%s", realm, name)

	var profile characterProfile
	if err := c.get(ctx, q.Region, basePath, &profile); err != nil {
		return nil, fmt.Errorf("failed to get character profile: %w", err)
	}

	var stats characterStatistics
	if err := c.get(ctx, q.Region, basePath+"/statistics", &stats); err != nil {
		return nil, fmt.Errorf("failed to get character statistics: %w", err)
	}

	return &CharacterStats{
		Name:      profile.Name,
		Realm:     profile.Realm.Name,
		Region:    q.Region,
		Level:     profile.Level,
		Faction:   profile.Faction.Name,
		Class:     profile.CharacterClass.Name,
		ItemLevel: profile.EquippedItemLevel,

		Health:           stats.Health,
		Power:            stats.Power,
		PowerType:        stats.PowerType.Name,
		Strength:         stats.Strength.Effective,
		Agility:          stats.Agility.Effective,
		Intellect:        stats.Intellect.Effective,
		Stamina:          stats.Stamina.Effective,
		CritPct:          stats.MeleeCrit.Value,
		HastePct:         stats.MeleeHaste.Value,
		MasteryPct:       stats.Mastery.Value,
		VersatilityBonus: stats.VersatilityDamageDoneBonus,
	}, nil
}
