package riot

// Match is the subset of a match-v5 body this tool reads. The full body is
// persisted verbatim, so fields left out here are not lost.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	GameCreation     int64         `json:"gameCreation"`
	GameDuration     int64         `json:"gameDuration"`
	GameEndTimestamp int64         `json:"gameEndTimestamp"`
	GameMode         string        `json:"gameMode"`
	GameVersion      string        `json:"gameVersion"`
	MapID            int           `json:"mapId"`
	QueueID          int           `json:"queueId"`
	Participants     []Participant `json:"participants"`
	Teams            []Team        `json:"teams"`
}

type Participant struct {
	Puuid                       string `json:"puuid"`
	RiotIDGameName              string `json:"riotIdGameName"`
	RiotIDTagline               string `json:"riotIdTagline"`
	ChampionName                string `json:"championName"`
	ChampionID                  int    `json:"championId"`
	TeamID                      int    `json:"teamId"`
	TeamPosition                string `json:"teamPosition"`
	Win                         bool   `json:"win"`
	Kills                       int    `json:"kills"`
	Deaths                      int    `json:"deaths"`
	Assists                     int    `json:"assists"`
	GoldEarned                  int    `json:"goldEarned"`
	TotalMinionsKilled          int    `json:"totalMinionsKilled"`
	TotalDamageDealtToChampions int    `json:"totalDamageDealtToChampions"`
	TotalDamageTaken            int    `json:"totalDamageTaken"`
	VisionScore                 int    `json:"visionScore"`
}

type Team struct {
	TeamID int  `json:"teamId"`
	Win    bool `json:"win"`
}

// ParticipantFor returns the participant line for a PUUID, or nil when the
// player is not in the match.
func (m *Match) ParticipantFor(puuid string) *Participant {
	for i := range m.Info.Participants {
		if m.Info.Participants[i].Puuid == puuid {
			return &m.Info.Participants[i]
		}
	}
	return nil
}
