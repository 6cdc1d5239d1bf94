package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

type ScoreboardResponse struct {
	Events []Event `json:"events"`
}

func (r *ScoreboardResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Events []json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Events = decodeEach[Event](raw.Events, "event")
	return nil
}

type Event struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Competitions []Competition `json:"competitions"`
	Status       EventStatus   `json:"status"`
}

type Competition struct {
	ID          string       `json:"id"`
	Competitors []Competitor `json:"competitors"`
	Status      EventStatus  `json:"status"`
}

type Competitor struct {
	ID          string             `json:"id"`
	HomeAway    string             `json:"homeAway"`
	Score       FlexInt            `json:"score"`
	Team        CompetitorTeam     `json:"team"`
	Records     []CompetitorRecord `json:"records"`
	CuratedRank *CuratedRank       `json:"curatedRank"`
	Leaders     []LeaderCategory   `json:"leaders"`
}

type CompetitorTeam struct {
	ID               string `json:"id"`
	Abbreviation     string `json:"abbreviation"`
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
}

type CompetitorRecord struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

type CuratedRank struct {
	Current FlexInt `json:"current"`
}

type EventStatus struct {
	DisplayClock string     `json:"displayClock"`
	Period       FlexInt    `json:"period"`
	Type         StatusType `json:"type"`
}

type StatusType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
	Detail      string `json:"detail"`
	ShortDetail string `json:"shortDetail"`
}

// LeaderCategory is the coarse leader block embedded in scoreboard competitors.
type LeaderCategory struct {
	Name        string        `json:"name"`
	DisplayName string        `json:"displayName"`
	Leaders     []LeaderValue `json:"leaders"`
}

type LeaderValue struct {
	DisplayValue string  `json:"displayValue"`
	Value        FlexInt `json:"value"`
	Athlete      Athlete `json:"athlete"`
}

type Athlete struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	ShortName   string `json:"shortName"`
	FullName    string `json:"fullName"`
}

type SummaryResponse struct {
	Boxscore Boxscore `json:"boxscore"`
}

type Boxscore struct {
	Players []BoxscoreTeam `json:"players"`
}

func (b *Boxscore) UnmarshalJSON(data []byte) error {
	var raw struct {
		Players []json.RawMessage `json:"players"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Players = decodeEach[BoxscoreTeam](raw.Players, "boxscore team")
	return nil
}

type BoxscoreTeam struct {
	Team       CompetitorTeam `json:"team"`
	Statistics []StatGroup    `json:"statistics"`
}

type StatGroup struct {
	Name     string        `json:"name"`
	Keys     []string      `json:"keys"`
	Labels   []string      `json:"labels"`
	Names    []string      `json:"names"`
	Athletes []AthleteLine `json:"athletes"`
}

func (g *StatGroup) UnmarshalJSON(data []byte) error {
	type plain StatGroup
	var raw struct {
		plain
		Athletes []json.RawMessage `json:"athletes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*g = StatGroup(raw.plain)
	g.Athletes = decodeEach[AthleteLine](raw.Athletes, "athlete")
	return nil
}

type AthleteLine struct {
	Athlete    Athlete  `json:"athlete"`
	Stats      []FlexString `json:"stats"`
	DidNotPlay bool         `json:"didNotPlay"`
}

// FlexInt decodes a JSON number or numeric string. Anything else decodes to 0.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(max(n, 0))
		return nil
	}
	var v float64
	if err := json.Unmarshal([]byte(s), &v); err != nil || v < 0 {
		*f = 0
		return nil
	}
	*f = FlexInt(v)
	return nil
}
