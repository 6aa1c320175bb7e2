package domain

import (
	"time"
)

type Summoner struct {
	Puuid       string
	GameName    string
	TagLine     string
	Region      string
	LastFetchAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RiotID returns the display identity, e.g. "ScanVisor#EUW".
func (s Summoner) RiotID() string {
	return s.GameName + "#" + s.TagLine
}

type Match struct {
	MatchID      string
	QueueID      int
	GameCreation time.Time
	GameDuration time.Duration
	GameVersion  string
	MapID        int
	RawJSON      []byte
	CreatedAt    time.Time
}

// SummonerMatch links a tracked summoner to a match ID from their history.
// Fetched is false while the match body has not been retrieved yet.
type SummonerMatch struct {
	Puuid   string
	MatchID string
	QueueID int
	Fetched bool
}

type Participant struct {
	MatchID                     string
	Puuid                       string
	ChampionName                string
	ChampionID                  int
	TeamID                      int
	TeamPosition                string
	Win                         bool
	Kills                       int
	Deaths                      int
	Assists                     int
	GoldEarned                  int
	TotalMinionsKilled          int
	TotalDamageDealtToChampions int
	TotalDamageTaken            int
	VisionScore                 int
	CreatedAt                   time.Time
}

// Game is one flattened row of the aggregate table: match metadata joined with
// the tracked summoner's participant line.
type Game struct {
	MatchID                     string
	Puuid                       string
	SummonerFolder              string
	QueueID                     int
	GameCreation                time.Time
	GameDuration                time.Duration
	GameVersion                 string
	MapID                       int
	ChampionName                string
	ChampionID                  int
	TeamID                      int
	TeamPosition                string
	Win                         bool
	Kills                       int
	Deaths                      int
	Assists                     int
	GoldEarned                  int
	TotalMinionsKilled          int
	TotalDamageDealtToChampions int
	TotalDamageTaken            int
	VisionScore                 int
}

// Run records one collection pass over the account list.
type Run struct {
	ID             string // nanoid
	StartedAt      time.Time
	FinishedAt     time.Time
	UsersProcessed int
	MatchesFetched int
	FetchErrors    int
}
