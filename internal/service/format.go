package service

import (
	"fmt"
	"strings"

	"github.com/omarshaarawi/liveleaders/internal/models"
)

var leagueEmoji = map[models.Sport]string{
	models.Basketball: "🏀",
	models.Football:   "🏈",
}

// FormatGames renders a batch as Markdown for chat replies.
func FormatGames(games []models.GameRecord) string {
	if len(games) == 0 {
		return "No live games right now."
	}

	var sb strings.Builder
	league := games[0].League
	sport := models.KnownLeagues[league].Sport
	sb.WriteString(fmt.Sprintf("%s *%s Live Leaders*\n\n", leagueEmoji[sport], strings.ToUpper(string(league))))

	for _, g := range games {
		star := ""
		if g.IsFavorite {
			star = "⭐ "
		}
		sb.WriteString(fmt.Sprintf("%s*%s* %d @ *%s* %d", star, g.Away.Abbreviation, g.AwayScore, g.Home.Abbreviation, g.HomeScore))
		if g.PeriodText != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", g.PeriodText))
		}
		sb.WriteString("\n")
		sb.WriteString(FormatLeaders(g.Away.Abbreviation, g.AwayLeaders))
		sb.WriteString(FormatLeaders(g.Home.Abbreviation, g.HomeLeaders))
		sb.WriteString("\n")
	}

	return sb.String()
}

func FormatLeaders(team string, leaders models.Leaders) string {
	if !models.HasLeaders(leaders) {
		return fmt.Sprintf("  %s: stats unavailable\n", team)
	}

	var sb strings.Builder
	for _, cat := range leaders.Categories() {
		parts := make([]string, len(cat.Entries))
		for i, e := range cat.Entries {
			parts[i] = fmt.Sprintf("%s %s", e.Name, entryValue(e))
		}
		sb.WriteString(fmt.Sprintf("  %s %s: %s\n", team, cat.Code, strings.Join(parts, ", ")))
	}
	return sb.String()
}

func FormatLeaderMatch(query string, match LeaderMatch, found bool) string {
	if !found {
		return fmt.Sprintf("🔍 No live leader found matching '%s'.", query)
	}
	g := match.Game
	return fmt.Sprintf("*%s* (%s) leads %s with %s\n%s %d @ %s %d %s",
		match.Entry.Name, match.Team, match.Category, entryValue(match.Entry),
		g.Away.Abbreviation, g.AwayScore, g.Home.Abbreviation, g.HomeScore, g.PeriodText)
}

func entryValue(e models.LeaderEntry) string {
	if e.Display != "" {
		return e.Display
	}
	return fmt.Sprint(e.Value)
}
