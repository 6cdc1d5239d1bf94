package models

import (
	"encoding/json"
	"strings"
)

type NCAAScoreboardResponse struct {
	Games []NCAAGameWrapper `json:"games"`
}

func (r *NCAAScoreboardResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Games []json.RawMessage `json:"games"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Games = decodeEach[NCAAGameWrapper](raw.Games, "ncaa game")
	return nil
}

type NCAAGameWrapper struct {
	Game NCAAGame `json:"game"`
}

type NCAAGame struct {
	GameID        FlexID     `json:"gameID"`
	GameState     string     `json:"gameState"`
	CurrentPeriod FlexString `json:"currentPeriod"`
	ContestClock  FlexString `json:"contestClock"`
	URL           string     `json:"url"`
	Home          NCAATeam   `json:"home"`
	Away          NCAATeam   `json:"away"`
}

type NCAATeam struct {
	Score       FlexInt          `json:"score"`
	Names       NCAANames        `json:"names"`
	Description string           `json:"description"`
	Rank        FlexInt          `json:"rank"`
	Conferences []NCAAConference `json:"conferences"`
}

type NCAANames struct {
	Char6 string `json:"char6"`
	Short string `json:"short"`
	SEO   string `json:"seo"`
	Full  string `json:"full"`
}

type NCAAConference struct {
	ConferenceName string `json:"conferenceName"`
	ConferenceSeo  string `json:"conferenceSeo"`
}

type NCAABoxscoreResponse struct {
	Teams        []NCAABoxscoreTeam `json:"teams"`
	TeamBoxscore []NCAATeamBoxscore `json:"teamBoxscore"`
}

func (r *NCAABoxscoreResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Teams        []json.RawMessage `json:"teams"`
		TeamBoxscore []json.RawMessage `json:"teamBoxscore"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Teams = decodeEach[NCAABoxscoreTeam](raw.Teams, "ncaa team")
	r.TeamBoxscore = decodeEach[NCAATeamBoxscore](raw.TeamBoxscore, "ncaa team boxscore")
	return nil
}

type NCAABoxscoreTeam struct {
	TeamID    FlexID `json:"teamId"`
	IsHome    bool   `json:"isHome"`
	NameShort string `json:"nameShort"`
	Char6     string `json:"char6"`
}

type NCAATeamBoxscore struct {
	TeamID      FlexID            `json:"teamId"`
	PlayerStats []NCAAPlayerStats `json:"playerStats"`
}

func (t *NCAATeamBoxscore) UnmarshalJSON(data []byte) error {
	var raw struct {
		TeamID      FlexID            `json:"teamId"`
		PlayerStats []json.RawMessage `json:"playerStats"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.TeamID = raw.TeamID
	t.PlayerStats = decodeEach[NCAAPlayerStats](raw.PlayerStats, "ncaa player")
	return nil
}

type NCAAPlayerStats struct {
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Points        FlexString `json:"points"`
	TotalRebounds FlexString `json:"totalRebounds"`
	Assists       FlexString `json:"assists"`
	Steals        FlexString `json:"steals"`
	BlockedShots  FlexString `json:"blockedShots"`
}

func (p NCAAPlayerStats) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// FlexID decodes an identifier sent either as a JSON string or number.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "null" {
		s = ""
	}
	*f = FlexID(s)
	return nil
}
