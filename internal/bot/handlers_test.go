package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"

	"github.com/omarshaarawi/liveleaders/internal/models"
)

type fakeTicker struct {
	games    []models.GameRecord
	rotation []models.LeagueDescriptor
	shown    int
}

func (f *fakeTicker) Displayed() []models.GameRecord { return f.games }

func (f *fakeTicker) Rotation() []models.LeagueDescriptor { return f.rotation }

func (f *fakeTicker) DisplayedLeague() (models.LeagueDescriptor, bool) {
	if f.shown < 0 || f.shown >= len(f.rotation) {
		return models.LeagueDescriptor{}, false
	}
	return f.rotation[f.shown], true
}

type fakeFetcher struct {
	leagues []string
}

func (f *fakeFetcher) FetchLiveGames(_ context.Context, league string, _ models.FetchOptions) []models.GameRecord {
	f.leagues = append(f.leagues, league)
	return []models.GameRecord{{
		ID:     "9",
		League: models.LeagueKey(league),
		Home:   models.TeamInfo{Abbreviation: "KC"},
		Away:   models.TeamInfo{Abbreviation: "BUF"},
	}}
}

func command(text string) tgbotapi.Update {
	cmd := text
	for i, r := range text {
		if r == ' ' {
			cmd = text[:i]
			break
		}
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: 42},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(cmd)},
		},
	}}
}

func newTestHandler() (*Handler, *fakeTicker, *fakeFetcher) {
	ticker := &fakeTicker{
		games: []models.GameRecord{{
			ID:         "1",
			League:     models.NBA,
			Home:       models.TeamInfo{Abbreviation: "BOS"},
			Away:       models.TeamInfo{Abbreviation: "LAL"},
			HomeScore:  88,
			AwayScore:  80,
			PeriodText: "5:32 - 3rd",
			HomeLeaders: models.BasketballLeaders{
				PTS: []models.LeaderEntry{{Name: "Jayson Tatum", Value: 28}},
			},
		}},
		rotation: []models.LeagueDescriptor{
			{Key: models.NBA, Priority: 1, Enabled: true},
			{Key: models.NFL, Priority: 2, Enabled: true},
		},
		shown: 1,
	}
	fetcher := &fakeFetcher{}
	return NewHandler(ticker, fetcher, models.FetchOptions{MaxGames: 5}), ticker, fetcher
}

func TestHandleLive(t *testing.T) {
	h, _, _ := newTestHandler()

	msg := h.HandleCommand(context.Background(), command("/live"))
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "Markdown", msg.ParseMode)
	assert.Contains(t, msg.Text, "NBA Live Leaders")
	assert.Contains(t, msg.Text, "Jayson Tatum 28")
}

func TestHandleLiveWithoutGames(t *testing.T) {
	h, ticker, _ := newTestHandler()
	ticker.games = nil

	msg := h.HandleCommand(context.Background(), command("/live"))
	assert.Equal(t, "No live games right now.", msg.Text)
}

func TestHandleScores(t *testing.T) {
	h, _, fetcher := newTestHandler()

	msg := h.HandleCommand(context.Background(), command("/scores NFL"))
	assert.Equal(t, []string{"nfl"}, fetcher.leagues)
	assert.Contains(t, msg.Text, "BUF")

	msg = h.HandleCommand(context.Background(), command("/scores mlb"))
	assert.Contains(t, msg.Text, "Unknown league 'mlb'")

	msg = h.HandleCommand(context.Background(), command("/scores"))
	assert.Contains(t, msg.Text, "Usage: /scores")
	assert.Len(t, fetcher.leagues, 1)
}

func TestHandleLeagues(t *testing.T) {
	h, _, _ := newTestHandler()

	msg := h.HandleCommand(context.Background(), command("/leagues"))
	assert.Contains(t, msg.Text, "1. NBA (priority 1)\n")
	assert.Contains(t, msg.Text, "2. NFL (priority 2) ◀")
}

func TestHandleLeaguesWithoutGamesOnScreen(t *testing.T) {
	h, ticker, _ := newTestHandler()
	ticker.shown = -1

	msg := h.HandleCommand(context.Background(), command("/leagues"))
	assert.Contains(t, msg.Text, "2. NFL (priority 2)\n")
	assert.NotContains(t, msg.Text, "◀")
}

func TestHandleWhoLeads(t *testing.T) {
	h, _, _ := newTestHandler()

	msg := h.HandleCommand(context.Background(), command("/wholeads tatum"))
	assert.Contains(t, msg.Text, "*Jayson Tatum* (BOS) leads PTS with 28")

	msg = h.HandleCommand(context.Background(), command("/wholeads"))
	assert.Contains(t, msg.Text, "Usage: /wholeads")
}

func TestHandleUnknownCommand(t *testing.T) {
	h, _, _ := newTestHandler()

	msg := h.HandleCommand(context.Background(), command("/standings"))
	assert.Equal(t, "Unknown command. Use /help to see available commands.", msg.Text)
}
