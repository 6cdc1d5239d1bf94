package espn

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/liveleaders/internal/cache/memory"
	"github.com/omarshaarawi/liveleaders/internal/metrics"
	"github.com/omarshaarawi/liveleaders/internal/models"
)

type fakeUpstream struct {
	mu        sync.Mutex
	responses map[string]string
	failing   map[string]bool
	hits      map[string]int
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		responses: make(map[string]string),
		failing:   make(map[string]bool),
		hits:      make(map[string]int),
	}
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Path
	if ev := r.URL.Query().Get("event"); ev != "" {
		key += "?event=" + ev
	}

	f.mu.Lock()
	f.hits[key]++
	body, ok := f.responses[key]
	failing := f.failing[key]
	f.mu.Unlock()

	if failing {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *fakeUpstream) hitCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func newTestAPI(t *testing.T, up *fakeUpstream, m metrics.Metrics) *API {
	t.Helper()
	server := httptest.NewServer(up)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, memory.NewCache(), WithMetrics(m))
	api := NewAPI(client)
	api.now = func() time.Time { return time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC) }
	return api
}

func event(id, state, homeAbbr, awayAbbr string, homeScore, awayScore int) string {
	return fmt.Sprintf(`{
		"id": %q,
		"status": {"displayClock": "5:32", "period": 3, "type": {"state": %q, "shortDetail": "5:32 - 3rd"}},
		"competitions": [{
			"competitors": [
				{"homeAway": "home", "score": "%d", "team": {"id": "h%s", "abbreviation": %q, "shortDisplayName": "%s Home"},
				 "records": [{"name": "overall", "type": "total", "summary": "20-10"}],
				 "curatedRank": {"current": 99},
				 "leaders": [{"name": "points", "leaders": [{"value": 30, "displayValue": "30", "athlete": {"displayName": "Fallback Scorer"}}]}]},
				{"homeAway": "away", "score": %d, "team": {"id": "a%s", "abbreviation": %q, "shortDisplayName": "%s Away"},
				 "curatedRank": {"current": 7}}
			]
		}]
	}`, id, state, homeScore, id, homeAbbr, homeAbbr, awayScore, id, awayAbbr, awayAbbr)
}

func scoreboard(events ...string) string {
	return `{"events": [` + strings.Join(events, ",") + `]}`
}

const nbaLabels = `["MIN","PTS","FG","3PT","FT","REB","AST","TO","STL","BLK","OREB","DREB","PF","+/-"]`

func nbaAthlete(name string, pts, reb, ast, stl, blk string) string {
	return fmt.Sprintf(`{"athlete": {"displayName": %q}, "stats": ["30",%q,"9-18","2-5","4-4",%q,%q,"2",%q,%q,"1","5","2","+8"]}`,
		name, pts, reb, ast, stl, blk)
}

func nbaBoxscore(homeID, awayID string, home, away []string) string {
	return fmt.Sprintf(`{"boxscore": {"players": [
		{"team": {"id": %q}, "statistics": [{"labels": %s, "athletes": [%s]}]},
		{"team": {"id": %q}, "statistics": [{"labels": %s, "athletes": [%s]}]}
	]}}`, homeID, nbaLabels, strings.Join(home, ","), awayID, nbaLabels, strings.Join(away, ","))
}

var nba = models.KnownLeagues[models.NBA]

func TestLiveGamesFiltersToInProgress(t *testing.T) {
	up := newFakeUpstream()
	up.responses["/basketball/nba/scoreboard"] = scoreboard(
		event("1", "pre", "LAL", "BOS", 0, 0),
		event("2", "in", "GSW", "DEN", 88, 80),
		event("3", "post", "MIA", "NYK", 101, 99),
		event("4", "in", "PHX", "DAL", 50, 61),
	)
	up.responses["/basketball/nba/summary?event=2"] = nbaBoxscore("h2", "a2",
		[]string{nbaAthlete("Stephen Curry", "31", "4", "6", "2", "0")},
		[]string{nbaAthlete("Nikola Jokic", "22", "12", "9", "1", "1")},
	)
	up.responses["/basketball/nba/summary?event=4"] = nbaBoxscore("h4", "a4", nil, nil)

	api := newTestAPI(t, up, metrics.NewMock())
	games, err := api.LiveGames(context.Background(), nba, models.FetchOptions{MaxGames: 50})
	require.NoError(t, err)
	require.Len(t, games, 2)

	g := games[0]
	assert.Equal(t, "2", g.ID)
	assert.Equal(t, models.NBA, g.League)
	assert.Equal(t, "GSW", g.Home.Abbreviation)
	assert.Equal(t, "DEN", g.Away.Abbreviation)
	assert.Equal(t, 88, g.HomeScore)
	assert.Equal(t, 80, g.AwayScore)
	assert.Equal(t, 3, g.Period)
	assert.Equal(t, "5:32", g.Clock)
	assert.Equal(t, "5:32 - 3rd", g.PeriodText)
	assert.Equal(t, "20-10", g.Home.Record)
	assert.Equal(t, 0, g.Home.Rank)
	assert.Equal(t, 7, g.Away.Rank)

	home, ok := g.HomeLeaders.(models.BasketballLeaders)
	require.True(t, ok)
	assert.Equal(t, []models.LeaderEntry{{Name: "Stephen Curry", Value: 31}}, home.PTS)
	assert.Nil(t, home.STL)

	away := g.AwayLeaders.(models.BasketballLeaders)
	assert.Equal(t, []models.LeaderEntry{{Name: "Nikola Jokic", Value: 12}}, away.REB)

	assert.Equal(t, "4", games[1].ID)
	assert.Nil(t, games[1].HomeLeaders)
	assert.Nil(t, games[1].AwayLeaders)
}

func TestLiveGamesMaxGamesKeepsUpstreamOrder(t *testing.T) {
	up := newFakeUpstream()
	var events []string
	for i := 1; i <= 10; i++ {
		events = append(events, event(fmt.Sprint(i), "in", "H", "A", i, 0))
	}
	up.responses["/basketball/nba/scoreboard"] = scoreboard(events...)

	api := newTestAPI(t, up, metrics.NewMock())
	games, err := api.LiveGames(context.Background(), nba, models.FetchOptions{MaxGames: 3})
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, "1", games[0].ID)
	assert.Equal(t, "2", games[1].ID)
	assert.Equal(t, "3", games[2].ID)
	assert.Equal(t, 0, up.hitCount("/basketball/nba/summary?event=4"))
}

func TestLiveGamesFallsBackToScoreboardLeaders(t *testing.T) {
	up := newFakeUpstream()
	up.responses["/basketball/nba/scoreboard"] = scoreboard(event("9", "in", "LAL", "BOS", 40, 42))
	up.failing["/basketball/nba/summary?event=9"] = true

	api := newTestAPI(t, up, metrics.NewMock())
	games, err := api.LiveGames(context.Background(), nba, models.FetchOptions{MaxGames: 5})
	require.NoError(t, err)
	require.Len(t, games, 1)

	home := games[0].HomeLeaders.(models.BasketballLeaders)
	assert.Equal(t, []models.LeaderEntry{{Name: "Fallback Scorer", Value: 30}}, home.PTS)
	assert.Nil(t, games[0].AwayLeaders)
}

func TestLiveGamesSkipsMalformedStats(t *testing.T) {
	up := newFakeUpstream()
	up.responses["/basketball/nba/scoreboard"] = scoreboard(event("5", "in", "LAL", "BOS", 40, 42))
	up.responses["/basketball/nba/summary?event=5"] = nbaBoxscore("h5", "a5",
		[]string{
			nbaAthlete("Bad Data", "abc", "--", "", "x", "y"),
			nbaAthlete("LeBron James", "24", "8", "7", "1", "1"),
			nbaAthlete("Anthony Davis", "24", "11", "2", "0", "3"),
			`{"athlete": {"displayName": "Bench Guy"}, "stats": [], "didNotPlay": true}`,
			`{"athlete": {"displayName": "Short Row"}, "stats": ["12"]}`,
		},
		nil,
	)

	api := newTestAPI(t, up, metrics.NewMock())
	games, err := api.LiveGames(context.Background(), nba, models.FetchOptions{MaxGames: 5})
	require.NoError(t, err)
	require.Len(t, games, 1)

	home := games[0].HomeLeaders.(models.BasketballLeaders)
	assert.Equal(t, []models.LeaderEntry{
		{Name: "LeBron James", Value: 24},
		{Name: "Anthony Davis", Value: 24},
	}, home.PTS)
	assert.Equal(t, []models.LeaderEntry{
		{Name: "Anthony Davis", Value: 11},
		{Name: "LeBron James", Value: 8},
	}, home.REB)
}

func TestLiveGamesSurvivesWronglyTypedFields(t *testing.T) {
	overtime := strings.Replace(event("11", "in", "MIA", "NYK", 99, 99), `"period": 3`, `"period": "OT"`, 1)
	up := newFakeUpstream()
	up.responses["/basketball/nba/scoreboard"] = scoreboard(
		event("10", "in", "BOS", "LAL", 60, 58),
		overtime,
		`{"id": 12, "status": "broken"}`,
	)
	up.responses["/basketball/nba/summary?event=10"] = nbaBoxscore("h10", "a10",
		[]string{nbaAthlete("Jayson Tatum", "18", "6", "3", "0", "0")},
		[]string{
			`{"athlete": {"displayName": "Austin Reaves"}, "stats": ["30", 18, "6-10", "1-2", "5-6", "2", "4", "1", "0", "0", "0", "2", "1", "+3"]}`,
			nbaAthlete("LeBron James", "20", "5", "5", "1", "1"),
			`{"athlete": "not an object", "stats": ["30","50"]}`,
		},
	)
	up.responses["/basketball/nba/summary?event=11"] = nbaBoxscore("h11", "a11", nil, nil)

	api := newTestAPI(t, up, metrics.NewMock())
	games, err := api.LiveGames(context.Background(), nba, models.FetchOptions{MaxGames: 5})
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "10", games[0].ID)
	assert.Equal(t, "11", games[1].ID)
	assert.Equal(t, 0, games[1].Period, "unreadable period falls back to zero")

	away := games[0].AwayLeaders.(models.BasketballLeaders)
	assert.Equal(t, []models.LeaderEntry{
		{Name: "LeBron James", Value: 20},
		{Name: "Austin Reaves", Value: 18},
	}, away.PTS, "numeric cells are read and the boxscore is kept")
	assert.Equal(t, []models.LeaderEntry{{Name: "LeBron James", Value: 5}}, away.REB[:1])
}

func TestLiveGamesFavoriteExpandedStats(t *testing.T) {
	up := newFakeUpstream()
	up.responses["/basketball/nba/scoreboard"] = scoreboard(
		event("6", "in", "LAL", "BOS", 40, 42),
		event("7", "in", "MIA", "NYK", 10, 12),
	)
	up.responses["/basketball/nba/summary?event=6"] = nbaBoxscore("h6", "a6",
		[]string{
			nbaAthlete("LeBron James", "24", "8", "7", "2", "1"),
			nbaAthlete("Anthony Davis", "20", "11", "2", "1", "3"),
			nbaAthlete("Austin Reaves", "12", "3", "5", "0", "0"),
		},
		nil,
	)

	api := newTestAPI(t, up, metrics.NewMock())
	games, err := api.LiveGames(context.Background(), nba, models.FetchOptions{
		MaxGames:         5,
		FavoriteTeams:    []string{"lal"},
		FavoriteExpanded: true,
	})
	require.NoError(t, err)
	require.Len(t, games, 2, "favorites tag ESPN games but never filter them")

	assert.True(t, games[0].IsFavorite)
	assert.True(t, games[0].ExpandedStats)
	assert.False(t, games[1].IsFavorite)
	assert.False(t, games[1].ExpandedStats)

	home := games[0].HomeLeaders.(models.BasketballLeaders)
	assert.Len(t, home.PTS, 3)
	assert.Equal(t, []models.LeaderEntry{
		{Name: "LeBron James", Value: 2},
		{Name: "Anthony Davis", Value: 1},
	}, home.STL)
	assert.Equal(t, []models.LeaderEntry{
		{Name: "Anthony Davis", Value: 3},
		{Name: "LeBron James", Value: 1},
	}, home.BLK)
}

func TestLiveGamesFootballLeaders(t *testing.T) {
	nfl := models.KnownLeagues[models.NFL]
	up := newFakeUpstream()
	up.responses["/football/nfl/scoreboard"] = scoreboard(event("8", "in", "KC", "BUF", 17, 14))
	up.responses["/football/nfl/summary?event=8"] = `{"boxscore": {"players": [
		{"team": {"id": "h8"}, "statistics": [
			{"name": "passing", "labels": ["C/ATT","YDS","AVG","TD","INT"], "athletes": [
				{"athlete": {"displayName": "Patrick Mahomes"}, "stats": ["18/25","245","9.8","3","0"]}]},
			{"name": "rushing", "labels": ["CAR","YDS","AVG","TD","LONG"], "athletes": [
				{"athlete": {"displayName": "Isiah Pacheco"}, "stats": ["12","--","4.0","0","11"]}]},
			{"name": "receiving", "labels": ["REC","YDS","AVG","TD","LONG"], "athletes": [
				{"athlete": {"displayName": "Travis Kelce"}, "stats": ["7","88","12.6","1","24"]}]}
		]},
		{"team": {"id": "a8"}, "statistics": [
			{"name": "passing", "athletes": [
				{"athlete": {"displayName": "Josh Allen"}, "stats": ["20/30","210","7.0","2","1"]}]}
		]}
	]}}`

	api := newTestAPI(t, up, metrics.NewMock())
	games, err := api.LiveGames(context.Background(), nfl, models.FetchOptions{MaxGames: 5})
	require.NoError(t, err)
	require.Len(t, games, 1)

	home := games[0].HomeLeaders.(models.FootballLeaders)
	assert.Equal(t, []models.LeaderEntry{{Name: "Patrick Mahomes", Value: 245, Display: "245 YDS, 3 TD"}}, home.QB)
	assert.Equal(t, []models.LeaderEntry{{Name: "Travis Kelce", Value: 88, Display: "88 YDS, 1 TD"}}, home.WR)
	assert.Nil(t, home.RB, "malformed rushing yards leave the category absent")

	away := games[0].AwayLeaders.(models.FootballLeaders)
	assert.Equal(t, "210 YDS, 2 TD", away.QB[0].Display, "unlabelled groups use fixed columns")
}

func TestLiveGamesUsesCache(t *testing.T) {
	up := newFakeUpstream()
	up.responses["/basketball/nba/scoreboard"] = scoreboard(event("2", "in", "GSW", "DEN", 88, 80))
	up.responses["/basketball/nba/summary?event=2"] = nbaBoxscore("h2", "a2", nil, nil)

	m := metrics.NewMock()
	api := newTestAPI(t, up, m)
	for i := 0; i < 3; i++ {
		_, err := api.LiveGames(context.Background(), nba, models.FetchOptions{MaxGames: 5})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, up.hitCount("/basketball/nba/scoreboard"))
	assert.Equal(t, 1, up.hitCount("/basketball/nba/summary?event=2"))
	assert.Equal(t, 4, m.CacheHits())
	assert.Equal(t, 2, m.CacheMisses())
}

func TestLiveGamesScoreboardError(t *testing.T) {
	up := newFakeUpstream()
	up.failing["/basketball/nba/scoreboard"] = true

	api := newTestAPI(t, up, metrics.NewMock())
	games, err := api.LiveGames(context.Background(), nba, models.FetchOptions{MaxGames: 5})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Empty(t, games)
}

func TestCacheKeys(t *testing.T) {
	day := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "live_stats_nba_20240309", scoreboardKey(models.NBA, day))
	assert.Equal(t, "live_stats_nfl_boxscore_401", boxscoreKey(models.NFL, "401"))
}
