package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/liveleaders/internal/models"
	"github.com/omarshaarawi/liveleaders/internal/service"
)

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, handler *Handler) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return newTelegramBot(bot, chatID, handler), nil
}

func newTelegramBot(bot *tgbotapi.BotAPI, chatID int64, handler *Handler) *TelegramBot {
	return &TelegramBot{
		bot:     bot,
		handler: handler,
		chatID:  chatID,
	}
}

func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			if update.Message.IsCommand() {
				msg := t.handler.HandleCommand(ctx, update)
				if _, err := t.bot.Send(msg); err != nil {
					slog.Error("Error sending message", "error", err)
				}
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "Markdown"
	_, err := t.bot.Send(msg)
	if err != nil {
		slog.Error("Error sending message", "error", err)
	}
	return err
}

// NotifyFavorites posts favorite-team games to the configured chat. Without a
// chat ID it does nothing.
func (t *TelegramBot) NotifyFavorites(games []models.GameRecord) {
	if t.chatID == 0 || len(games) == 0 {
		return
	}
	_ = t.SendMessage(favoriteAlert(games))
}

func favoriteAlert(games []models.GameRecord) string {
	return "⭐ *Favorite team live*\n\n" + service.FormatGames(games)
}
