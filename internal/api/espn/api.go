package espn

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/omarshaarawi/liveleaders/internal/models"
)

const (
	// StateInProgress is the status.type.state value of a live event.
	StateInProgress = "in"

	CacheTTL            = 60 * time.Second
	boxscoreConcurrency = 4
)

type API struct {
	client *Client
	now    func() time.Time
}

func NewAPI(client *Client) *API {
	return &API{client: client, now: time.Now}
}

func scoreboardKey(league models.LeagueKey, day time.Time) string {
	return fmt.Sprintf("live_stats_%s_%s", league, day.Format("20060102"))
}

func boxscoreKey(league models.LeagueKey, eventID string) string {
	return fmt.Sprintf("live_stats_%s_boxscore_%s", league, eventID)
}

func (a *API) GetScoreboard(ctx context.Context, league models.LeagueDescriptor) (*models.ScoreboardResponse, error) {
	var resp models.ScoreboardResponse
	endpoint := fmt.Sprintf("/%s/%s/scoreboard", league.Sport, league.League)

	if err := a.client.Get(ctx, endpoint, nil, scoreboardKey(league.Key, a.now()), CacheTTL, &resp); err != nil {
		return nil, fmt.Errorf("fetching %s scoreboard: %w", league.Key, err)
	}
	return &resp, nil
}

func (a *API) GetSummary(ctx context.Context, league models.LeagueDescriptor, eventID string) (*models.SummaryResponse, error) {
	var resp models.SummaryResponse
	endpoint := fmt.Sprintf("/%s/%s/summary", league.Sport, league.League)
	params := map[string]string{
		"event": eventID,
	}

	if err := a.client.Get(ctx, endpoint, params, boxscoreKey(league.Key, eventID), CacheTTL, &resp); err != nil {
		return nil, fmt.Errorf("fetching %s boxscore %s: %w", league.Key, eventID, err)
	}
	return &resp, nil
}

type liveEvent struct {
	game models.GameRecord
	home models.Competitor
	away models.Competitor
}

// LiveGames returns one record per in-progress event, in scoreboard order,
// capped at opts.MaxGames. Favorites are tagged, never filtered.
func (a *API) LiveGames(ctx context.Context, league models.LeagueDescriptor, opts models.FetchOptions) ([]models.GameRecord, error) {
	scoreboard, err := a.GetScoreboard(ctx, league)
	if err != nil {
		return nil, err
	}

	favorites := models.NewTeamSet(opts.FavoriteTeams)
	var live []liveEvent
	for _, event := range scoreboard.Events {
		if opts.MaxGames > 0 && len(live) >= opts.MaxGames {
			break
		}
		if eventState(event) != StateInProgress {
			continue
		}
		le, ok := parseEvent(event, league.Key)
		if !ok {
			slog.Debug("Skipping malformed event", "league", league.Key, "event", event.ID)
			continue
		}
		le.game.IsFavorite = favorites.Has(le.home.Team.Abbreviation) || favorites.Has(le.away.Team.Abbreviation)
		le.game.ExpandedStats = le.game.IsFavorite && opts.FavoriteExpanded
		live = append(live, le)
	}

	games := make([]models.GameRecord, len(live))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(boxscoreConcurrency)
	for i, le := range live {
		i, le := i, le
		g.Go(func() error {
			games[i] = a.withLeaders(gctx, league, le)
			return nil
		})
	}
	_ = g.Wait()

	return games, nil
}

func (a *API) withLeaders(ctx context.Context, league models.LeagueDescriptor, le liveEvent) models.GameRecord {
	game := le.game
	expanded := game.ExpandedStats

	summary, err := a.GetSummary(ctx, league, game.ID)
	if err != nil || len(summary.Boxscore.Players) == 0 {
		if err != nil {
			slog.Warn("Boxscore unavailable, using scoreboard leaders", "league", league.Key, "event", game.ID, "error", err)
		}
		game.HomeLeaders = scoreboardLeaders(league.Sport, le.home.Leaders, expanded)
		game.AwayLeaders = scoreboardLeaders(league.Sport, le.away.Leaders, expanded)
		return game
	}

	home := findBoxscoreTeam(summary.Boxscore, le.home.Team)
	away := findBoxscoreTeam(summary.Boxscore, le.away.Team)
	game.HomeLeaders = boxscoreLeaders(league.Sport, home, expanded)
	game.AwayLeaders = boxscoreLeaders(league.Sport, away, expanded)
	return game
}

func eventState(event models.Event) string {
	if event.Status.Type.State != "" {
		return event.Status.Type.State
	}
	if len(event.Competitions) > 0 {
		return event.Competitions[0].Status.Type.State
	}
	return ""
}

func parseEvent(event models.Event, league models.LeagueKey) (liveEvent, bool) {
	if len(event.Competitions) == 0 {
		return liveEvent{}, false
	}
	comp := event.Competitions[0]
	if len(comp.Competitors) < 2 {
		return liveEvent{}, false
	}

	var home, away *models.Competitor
	for i := range comp.Competitors {
		switch comp.Competitors[i].HomeAway {
		case "home":
			home = &comp.Competitors[i]
		case "away":
			away = &comp.Competitors[i]
		}
	}
	if home == nil || away == nil {
		return liveEvent{}, false
	}

	status := event.Status
	if status.Type.State == "" {
		status = comp.Status
	}

	return liveEvent{
		game: models.GameRecord{
			ID:         event.ID,
			League:     league,
			Home:       teamInfo(*home, "HOME"),
			Away:       teamInfo(*away, "AWAY"),
			HomeScore:  int(home.Score),
			AwayScore:  int(away.Score),
			Period:     int(status.Period),
			Clock:      status.DisplayClock,
			PeriodText: status.Type.ShortDetail,
		},
		home: *home,
		away: *away,
	}, true
}

func teamInfo(c models.Competitor, fallback string) models.TeamInfo {
	abbr := c.Team.Abbreviation
	if abbr == "" {
		abbr = fallback
	}
	name := c.Team.ShortDisplayName
	if name == "" {
		name = c.Team.DisplayName
	}

	info := models.TeamInfo{Abbreviation: abbr, Name: name}
	for _, r := range c.Records {
		if r.Type == "total" || strings.EqualFold(r.Name, "overall") {
			info.Record = r.Summary
			break
		}
	}
	if info.Record == "" && len(c.Records) > 0 {
		info.Record = c.Records[0].Summary
	}
	// ESPN reports unranked teams as 99.
	if c.CuratedRank != nil && c.CuratedRank.Current > 0 && c.CuratedRank.Current <= 25 {
		info.Rank = int(c.CuratedRank.Current)
	}
	return info
}

func findBoxscoreTeam(box models.Boxscore, team models.CompetitorTeam) *models.BoxscoreTeam {
	for i := range box.Players {
		if team.ID != "" && box.Players[i].Team.ID == team.ID {
			return &box.Players[i]
		}
	}
	for i := range box.Players {
		if team.Abbreviation != "" && strings.EqualFold(box.Players[i].Team.Abbreviation, team.Abbreviation) {
			return &box.Players[i]
		}
	}
	return nil
}
