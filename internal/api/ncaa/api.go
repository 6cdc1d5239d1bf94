package ncaa

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/omarshaarawi/liveleaders/internal/models"
	"github.com/omarshaarawi/liveleaders/internal/stats"
)

// StateLive is the gameState value of an in-progress game.
const StateLive = "live"

var PowerConferences = map[string]bool{
	"acc":      true,
	"big-ten":  true,
	"big-12":   true,
	"sec":      true,
	"big-east": true,
	"pac-12":   true,
}

type API struct {
	client *Client
	now    func() time.Time
}

func NewAPI(client *Client) *API {
	return &API{client: client, now: time.Now}
}

func (a *API) GetScoreboard(ctx context.Context, day time.Time) (*models.NCAAScoreboardResponse, error) {
	var resp models.NCAAScoreboardResponse
	endpoint := fmt.Sprintf("/scoreboard/basketball-men/d1/%04d/%02d/%02d/all-conf", day.Year(), day.Month(), day.Day())

	if err := a.client.Get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetching ncaa scoreboard: %w", err)
	}
	return &resp, nil
}

func (a *API) GetBoxscore(ctx context.Context, gameID string) (*models.NCAABoxscoreResponse, error) {
	var resp models.NCAABoxscoreResponse
	endpoint := fmt.Sprintf("/game/%s/boxscore", gameID)

	if err := a.client.Get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetching ncaa boxscore %s: %w", gameID, err)
	}
	return &resp, nil
}

// LiveGames returns live games from today's scoreboard. Unlike the ESPN
// leagues, a non-empty favorites list filters out games without a favorite.
func (a *API) LiveGames(ctx context.Context, opts models.FetchOptions) ([]models.GameRecord, error) {
	scoreboard, err := a.GetScoreboard(ctx, a.now())
	if err != nil {
		return nil, err
	}

	favorites := models.NewTeamSet(opts.FavoriteTeams)
	var games []models.GameRecord
	for _, wrapper := range scoreboard.Games {
		if opts.MaxGames > 0 && len(games) >= opts.MaxGames {
			break
		}
		g := wrapper.Game
		gameID := string(g.GameID)
		period, clock := g.CurrentPeriod.String(), g.ContestClock.String()
		if !strings.EqualFold(g.GameState, StateLive) {
			continue
		}

		isFavorite := favorites.HasAny(g.Home.Names.Char6, g.Home.Names.Short, g.Away.Names.Char6, g.Away.Names.Short)
		if len(favorites) > 0 && !isFavorite {
			continue
		}
		if opts.PowerConferencesOnly && !inPowerConference(g.Home) && !inPowerConference(g.Away) {
			continue
		}

		record := models.GameRecord{
			ID:            gameID,
			League:        models.NCAAM,
			Home:          teamInfo(g.Home),
			Away:          teamInfo(g.Away),
			HomeScore:     int(g.Home.Score),
			AwayScore:     int(g.Away.Score),
			Period:        periodNumber(period),
			Clock:         clock,
			PeriodText:    periodText(period, clock),
			IsFavorite:    isFavorite,
			ExpandedStats: isFavorite && opts.FavoriteExpanded,
		}

		box, err := a.GetBoxscore(ctx, gameID)
		if err != nil {
			slog.Warn("NCAA boxscore unavailable", "game", gameID, "error", err)
		} else {
			record.HomeLeaders, record.AwayLeaders = boxscoreLeaders(box, record.ExpandedStats)
		}
		games = append(games, record)
	}

	return games, nil
}

func inPowerConference(t models.NCAATeam) bool {
	for _, c := range t.Conferences {
		if PowerConferences[strings.ToLower(c.ConferenceSeo)] {
			return true
		}
	}
	return false
}

func teamInfo(t models.NCAATeam) models.TeamInfo {
	abbr := t.Names.Char6
	if abbr == "" {
		abbr = t.Names.Short
	}
	return models.TeamInfo{
		Abbreviation: abbr,
		Name:         t.Names.Short,
		Record:       strings.Trim(strings.TrimSpace(t.Description), "()"),
		Rank:         int(t.Rank),
	}
}

// periodNumber reads the leading digits of values like "2nd" or "1ST HALF".
func periodNumber(period string) int {
	end := 0
	for end < len(period) && period[end] >= '0' && period[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(period[:end])
	if err != nil {
		return 0
	}
	return n
}

func periodText(period, clock string) string {
	switch {
	case period == "":
		return clock
	case clock == "":
		return period
	}
	return clock + " - " + period
}

func boxscoreLeaders(box *models.NCAABoxscoreResponse, expanded bool) (home, away models.Leaders) {
	isHome := make(map[models.FlexID]bool, len(box.Teams))
	for _, t := range box.Teams {
		isHome[t.TeamID] = t.IsHome
	}

	for i, tb := range box.TeamBoxscore {
		homeSide, ok := isHome[tb.TeamID]
		if !ok || tb.TeamID == "" {
			if i >= len(box.Teams) {
				continue
			}
			homeSide = box.Teams[i].IsHome
		}

		leaders := playerLeaders(tb.PlayerStats, expanded)
		if homeSide {
			home = leaders
		} else {
			away = leaders
		}
	}
	return home, away
}

func playerLeaders(players []models.NCAAPlayerStats, expanded bool) models.Leaders {
	n := stats.LeaderCount(expanded)
	name := func(p models.NCAAPlayerStats) string { return p.FullName() }
	rank := func(stat func(models.NCAAPlayerStats) models.FlexString) []models.LeaderEntry {
		return stats.TopN(players, func(p models.NCAAPlayerStats) int { return stats.StatOrZero(stat(p).String()) }, name, n)
	}

	l := models.BasketballLeaders{
		PTS: rank(func(p models.NCAAPlayerStats) models.FlexString { return p.Points }),
		REB: rank(func(p models.NCAAPlayerStats) models.FlexString { return p.TotalRebounds }),
		AST: rank(func(p models.NCAAPlayerStats) models.FlexString { return p.Assists }),
	}
	if expanded {
		l.STL = rank(func(p models.NCAAPlayerStats) models.FlexString { return p.Steals })
		l.BLK = rank(func(p models.NCAAPlayerStats) models.FlexString { return p.BlockedShots })
	}
	if !models.HasLeaders(l) {
		return nil
	}
	return l
}
