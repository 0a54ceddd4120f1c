package storage

import "time"

// Summoner is one indexed League of Legends identity
type Summoner struct {
	ID        int64
	PUUID     string
	GameName  string
	TagLine   string
	Platform  string // platform host, e.g. na1, euw1, kr
	Cluster   string // regional routing, e.g. americas, asia, europe
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RiotID returns the display form GameName#TagLine
func (s *Summoner) RiotID() string {
	if s.GameName == "" && s.TagLine == "" {
		return ""
	}
	return s.GameName + "#" + s.TagLine
}
