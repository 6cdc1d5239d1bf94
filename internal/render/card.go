// Package render turns game records into ticker text and scrolls it across a
// fixed-width viewport.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/omarshaarawi/liveleaders/internal/models"
	"github.com/omarshaarawi/liveleaders/internal/stats"
)

const (
	periodTextMax = 15
	placeholder   = "No live games"
)

var ErrIncompleteGame = errors.New("game has no teams")

type Renderer interface {
	RenderCard(game models.GameRecord) (string, error)
	Placeholder() string
}

type TextRenderer struct {
	NameMaxLen int
}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{NameMaxLen: stats.NameMaxLen}
}

// RenderCard formats one game as "AWY 10 @ HME 12 | 5:32 - 3rd | AWY: ... | HME: ...".
func (r *TextRenderer) RenderCard(g models.GameRecord) (string, error) {
	if g.Home.Abbreviation == "" || g.Away.Abbreviation == "" {
		return "", fmt.Errorf("%w: %s", ErrIncompleteGame, g.ID)
	}

	parts := []string{fmt.Sprintf("%s %d @ %s %d", g.Away.Abbreviation, g.AwayScore, g.Home.Abbreviation, g.HomeScore)}
	if g.PeriodText != "" {
		parts = append(parts, truncate(g.PeriodText, periodTextMax))
	}
	parts = append(parts, r.leaderLine(g.Away.Abbreviation, g.AwayLeaders))
	parts = append(parts, r.leaderLine(g.Home.Abbreviation, g.HomeLeaders))

	card := strings.Join(parts, " | ")
	if g.IsFavorite {
		card = "* " + card
	}
	return card, nil
}

func (r *TextRenderer) Placeholder() string {
	return placeholder
}

func (r *TextRenderer) leaderLine(team string, leaders models.Leaders) string {
	switch l := leaders.(type) {
	case models.BasketballLeaders:
		if line := r.basketballLine(team, l); line != "" {
			return line
		}
	case models.FootballLeaders:
		if line := r.footballLine(team, l); line != "" {
			return line
		}
	}
	return team + ": Stats N/A"
}

// basketballLine names the points leader followed by the top PTS/REB/AST values.
func (r *TextRenderer) basketballLine(team string, l models.BasketballLeaders) string {
	if len(l.PTS) == 0 {
		return ""
	}
	line := fmt.Sprintf("%s: %s %d/%d/%d", team, r.name(l.PTS[0].Name), top(l.PTS), top(l.REB), top(l.AST))
	if len(l.STL) > 0 || len(l.BLK) > 0 {
		line += fmt.Sprintf(" %dS %dB", top(l.STL), top(l.BLK))
	}
	return line
}

// footballLine shows a single leader, preferring QB, then WR, then RB.
func (r *TextRenderer) footballLine(team string, l models.FootballLeaders) string {
	for _, entries := range [][]models.LeaderEntry{l.QB, l.WR, l.RB} {
		if len(entries) == 0 {
			continue
		}
		e := entries[0]
		short := strings.ReplaceAll(strings.ReplaceAll(e.Display, " YDS", ""), " TD", "TD")
		return fmt.Sprintf("%s: %s %s", team, r.name(e.Name), short)
	}
	return ""
}

func (r *TextRenderer) name(full string) string {
	return stats.Abbreviate(full, r.NameMaxLen)
}

func top(entries []models.LeaderEntry) int {
	if len(entries) == 0 {
		return 0
	}
	return entries[0].Value
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

// Compose joins cards into one ticker line separated by gap spaces.
func Compose(cards []string, gap int) string {
	return strings.Join(cards, strings.Repeat(" ", max(gap, 1)))
}
