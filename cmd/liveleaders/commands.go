package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/omarshaarawi/liveleaders/internal/bot"
	"github.com/omarshaarawi/liveleaders/internal/metrics"
	"github.com/omarshaarawi/liveleaders/internal/models"
	"github.com/omarshaarawi/liveleaders/internal/orchestrator"
	"github.com/omarshaarawi/liveleaders/internal/render"
	"github.com/omarshaarawi/liveleaders/internal/scheduler"
	"github.com/omarshaarawi/liveleaders/internal/service"
)

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(leaguesCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scrolling ticker",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTicker(cmd.Context())
	},
}

var fetchCmd = &cobra.Command{
	Use:       "fetch <league>",
	Short:     "Fetch and print the live games of one league",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"nba", "nfl", "ncaam", "ncaaf"},
	RunE: func(cmd *cobra.Command, args []string) error {
		league, ok := models.LookupLeague(strings.ToLower(args[0]))
		if !ok {
			return fmt.Errorf("unknown league %q", args[0])
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		games := a.service.FetchLiveGames(cmd.Context(), string(league.Key), a.cfg.FetchOptions())
		fmt.Fprintln(cmd.OutOrStdout(), service.FormatGames(games))
		return nil
	},
}

var leaguesCmd = &cobra.Command{
	Use:   "leagues",
	Short: "Print the enabled leagues in rotation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		for i, l := range a.cfg.Rotation() {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (priority %d, %s)\n", i+1, l.Key, l.Priority, l.Sport)
		}
		return nil
	},
}

func runTicker(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			slog.Error("Error closing cache", "error", err)
		}
	}()

	cfg := a.cfg
	rotation := cfg.Rotation()
	slog.Info("Starting ticker", "leagues", len(rotation), "interval", cfg.Data.UpdateInterval)

	orch := orchestrator.New(a.service, render.NewTextRenderer(), a.metrics, rotation, orchestrator.Options{
		Interval:     cfg.Data.UpdateInterval,
		FetchOptions: cfg.FetchOptions(),
		Width:        cfg.Display.Width,
		ScrollSpeed:  cfg.Display.ScrollSpeed,
		ScrollDelay:  cfg.Display.ScrollDelay,
	})

	var telegramBot *bot.TelegramBot
	if cfg.TelegramBot.Token != "" {
		handler := bot.NewHandler(orch, a.service, cfg.FetchOptions())
		telegramBot, err = bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, handler)
		if err != nil {
			slog.Error("Error creating telegram bot", "error", err)
			telegramBot = nil
		} else if cfg.TelegramBot.ChatID != 0 {
			orch.SetNotifier(telegramBot)
		}
	}

	orch.Update(ctx)

	sched, err := scheduler.NewScheduler(ctx, orch, cfg.Data.UpdateCheckInterval)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	srv := newHTTPServer(cfg.Server.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	if telegramBot != nil {
		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	}

	frame := orchestrator.FrameInterval(cfg.Display.ScrollDelay, cfg.Display.TargetFPS)
	orch.RunDisplay(ctx, render.NewTerminalDisplay(os.Stdout), frame)

	fmt.Fprintln(os.Stdout)
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error stopping HTTP server", "error", err)
	}
	orch.Wait()
	return nil
}

func newHTTPServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthCheckHandler)
	mux.Handle("/metrics", metrics.NewHandler())
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
