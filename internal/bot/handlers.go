package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/liveleaders/internal/models"
	"github.com/omarshaarawi/liveleaders/internal/service"
)

// Ticker exposes what the scrolling ticker is currently showing.
type Ticker interface {
	Displayed() []models.GameRecord
	Rotation() []models.LeagueDescriptor
	DisplayedLeague() (models.LeagueDescriptor, bool)
}

type Fetcher interface {
	FetchLiveGames(ctx context.Context, league string, opts models.FetchOptions) []models.GameRecord
}

type Handler struct {
	ticker  Ticker
	fetcher Fetcher
	opts    models.FetchOptions
}

func NewHandler(ticker Ticker, fetcher Fetcher, opts models.FetchOptions) *Handler {
	return &Handler{ticker: ticker, fetcher: fetcher, opts: opts}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to LiveLeaders! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/live - Games on the ticker right now\n/scores <league> - Fetch live games for a league (nba, nfl, ncaam, ncaaf)\n/leagues - Show the league rotation\n/wholeads <player> - Find a player among the current leaders"
	case "live":
		h.handleLive(&msg)
	case "scores":
		h.handleScores(ctx, &msg, args)
	case "leagues":
		h.handleLeagues(&msg)
	case "wholeads":
		h.handleWhoLeads(&msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleLive(msg *tgbotapi.MessageConfig) {
	msg.Text = service.FormatGames(h.ticker.Displayed())
}

func (h *Handler) handleScores(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a league. Usage: /scores <nba|nfl|ncaam|ncaaf>"
		return
	}
	league, ok := models.LookupLeague(strings.ToLower(args))
	if !ok {
		msg.Text = fmt.Sprintf("Unknown league '%s'. Use one of nba, nfl, ncaam, ncaaf.", args)
		return
	}
	msg.Text = service.FormatGames(h.fetcher.FetchLiveGames(ctx, string(league.Key), h.opts))
}

func (h *Handler) handleLeagues(msg *tgbotapi.MessageConfig) {
	rotation := h.ticker.Rotation()
	if len(rotation) == 0 {
		msg.Text = "No leagues enabled."
		return
	}

	shown, onScreen := h.ticker.DisplayedLeague()
	var sb strings.Builder
	sb.WriteString("*League rotation*\n")
	for i, l := range rotation {
		marker := ""
		if onScreen && l.Key == shown.Key {
			marker = " ◀"
		}
		sb.WriteString(fmt.Sprintf("%d. %s (priority %d)%s\n", i+1, strings.ToUpper(string(l.Key)), l.Priority, marker))
	}
	msg.Text = sb.String()
}

func (h *Handler) handleWhoLeads(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /wholeads <player name>"
		return
	}
	match, found := service.FindLeader(h.ticker.Displayed(), args)
	msg.Text = service.FormatLeaderMatch(args, match, found)
}
