package espn

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/omarshaarawi/liveleaders/internal/models"
	"github.com/omarshaarawi/liveleaders/internal/stats"
)

// Column positions used when a stat group carries no labels.
const (
	colPoints   = 1
	colRebounds = 5
	colAssists  = 6
	colSteals   = 8
	colBlocks   = 9

	colYards      = 1
	colTouchdowns = 3
)

var touchdownsRe = regexp.MustCompile(`(\d+)\s*TD`)

func boxscoreLeaders(sport models.Sport, team *models.BoxscoreTeam, expanded bool) models.Leaders {
	if team == nil || len(team.Statistics) == 0 {
		return nil
	}
	switch sport {
	case models.Basketball:
		return basketballLeaders(team.Statistics[0], expanded)
	case models.Football:
		return footballLeaders(team.Statistics)
	}
	return nil
}

func basketballLeaders(group models.StatGroup, expanded bool) models.Leaders {
	athletes := make([]models.AthleteLine, 0, len(group.Athletes))
	for _, a := range group.Athletes {
		if a.DidNotPlay {
			continue
		}
		athletes = append(athletes, a)
	}

	n := stats.LeaderCount(expanded)
	rank := func(col int) []models.LeaderEntry {
		return stats.TopN(athletes, statAt(col), athleteName, n)
	}

	l := models.BasketballLeaders{
		PTS: rank(columnIndex(group, colPoints, "PTS", "points")),
		REB: rank(columnIndex(group, colRebounds, "REB", "rebounds")),
		AST: rank(columnIndex(group, colAssists, "AST", "assists")),
	}
	if expanded {
		l.STL = rank(columnIndex(group, colSteals, "STL", "steals"))
		l.BLK = rank(columnIndex(group, colBlocks, "BLK", "blocks"))
	}

	if !models.HasLeaders(l) {
		return nil
	}
	return l
}

func footballLeaders(groups []models.StatGroup) models.Leaders {
	l := models.FootballLeaders{
		QB: groupLeader(groups, "passing"),
		WR: groupLeader(groups, "receiving"),
		RB: groupLeader(groups, "rushing"),
	}
	if !models.HasLeaders(l) {
		return nil
	}
	return l
}

// groupLeader takes the first athlete of the named group, which upstream
// already orders as the category leader.
func groupLeader(groups []models.StatGroup, name string) []models.LeaderEntry {
	var group *models.StatGroup
	for i := range groups {
		if groups[i].Name == name {
			group = &groups[i]
			break
		}
	}
	if group == nil || len(group.Athletes) == 0 {
		return nil
	}

	athlete := group.Athletes[0]
	yards, ok := cellAt(athlete.Stats, columnIndex(*group, colYards, "YDS", name+"Yards"))
	if !ok || yards <= 0 {
		return nil
	}
	tds, ok := cellAt(athlete.Stats, columnIndex(*group, colTouchdowns, "TD", name+"Touchdowns"))
	if !ok {
		tds = 0
	}

	return []models.LeaderEntry{footballEntry(athleteName(athlete), yards, tds)}
}

func footballEntry(name string, yards, tds int) models.LeaderEntry {
	return models.LeaderEntry{
		Name:    name,
		Value:   yards,
		Display: fmt.Sprintf("%d YDS, %d TD", yards, tds),
	}
}

var scoreboardCategories = map[models.Sport]map[string]string{
	models.Basketball: {
		"points":   "PTS",
		"rebounds": "REB",
		"assists":  "AST",
		"steals":   "STL",
		"blocks":   "BLK",
	},
	models.Football: {
		"passingYards":   "QB",
		"receivingYards": "WR",
		"rushingYards":   "RB",
	},
}

// scoreboardLeaders builds leaders from the coarse block embedded in the
// scoreboard. It is only used when the boxscore cannot be fetched.
func scoreboardLeaders(sport models.Sport, categories []models.LeaderCategory, expanded bool) models.Leaders {
	codes := scoreboardCategories[sport]
	byCode := make(map[string][]models.LeaderValue)
	for _, cat := range categories {
		if code, ok := codes[cat.Name]; ok {
			byCode[code] = cat.Leaders
		}
	}

	leaderValue := func(v models.LeaderValue) int { return int(v.Value) }
	leaderName := func(v models.LeaderValue) string { return athleteDisplayName(v.Athlete) }

	switch sport {
	case models.Basketball:
		n := stats.LeaderCount(expanded)
		l := models.BasketballLeaders{
			PTS: stats.TopN(byCode["PTS"], leaderValue, leaderName, n),
			REB: stats.TopN(byCode["REB"], leaderValue, leaderName, n),
			AST: stats.TopN(byCode["AST"], leaderValue, leaderName, n),
		}
		if expanded {
			l.STL = stats.TopN(byCode["STL"], leaderValue, leaderName, n)
			l.BLK = stats.TopN(byCode["BLK"], leaderValue, leaderName, n)
		}
		if models.HasLeaders(l) {
			return l
		}
	case models.Football:
		first := func(code string) []models.LeaderEntry {
			values := byCode[code]
			if len(values) == 0 || values[0].Value <= 0 {
				return nil
			}
			v := values[0]
			return []models.LeaderEntry{footballEntry(leaderName(v), int(v.Value), touchdownsIn(v.DisplayValue))}
		}
		l := models.FootballLeaders{QB: first("QB"), WR: first("WR"), RB: first("RB")}
		if models.HasLeaders(l) {
			return l
		}
	}
	return nil
}

func touchdownsIn(display string) int {
	m := touchdownsRe.FindStringSubmatch(display)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// columnIndex finds a stat column by label, key or name, falling back to a
// fixed position when the group carries no headers.
func columnIndex(group models.StatGroup, fallback int, candidates ...string) int {
	for _, headers := range [][]string{group.Labels, group.Keys, group.Names} {
		for i, h := range headers {
			for _, c := range candidates {
				if strings.EqualFold(h, c) {
					return i
				}
			}
		}
	}
	if len(group.Labels) > 0 || len(group.Keys) > 0 || len(group.Names) > 0 {
		return -1
	}
	return fallback
}

func cellAt(cells []models.FlexString, idx int) (int, bool) {
	if idx < 0 || idx >= len(cells) {
		return 0, false
	}
	return stats.ParseStat(cells[idx].String())
}

func statAt(idx int) func(models.AthleteLine) int {
	return func(a models.AthleteLine) int {
		n, _ := cellAt(a.Stats, idx)
		return n
	}
}

func athleteName(a models.AthleteLine) string {
	return athleteDisplayName(a.Athlete)
}

func athleteDisplayName(a models.Athlete) string {
	switch {
	case a.DisplayName != "":
		return a.DisplayName
	case a.FullName != "":
		return a.FullName
	case a.ShortName != "":
		return a.ShortName
	}
	return "Unknown"
}
