package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/omarshaarawi/liveleaders/internal/api/espn"
	"github.com/omarshaarawi/liveleaders/internal/api/ncaa"
	"github.com/omarshaarawi/liveleaders/internal/api/sports"
	"github.com/omarshaarawi/liveleaders/internal/cache"
	"github.com/omarshaarawi/liveleaders/internal/cache/memory"
	"github.com/omarshaarawi/liveleaders/internal/cache/redis"
	"github.com/omarshaarawi/liveleaders/internal/config"
	"github.com/omarshaarawi/liveleaders/internal/logging"
	"github.com/omarshaarawi/liveleaders/internal/metrics"
	"github.com/omarshaarawi/liveleaders/internal/service"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "liveleaders",
	Short: "Scrolling ticker of live game leaders",
	Long: `liveleaders polls ESPN and the NCAA mirror for in-progress games and
scrolls the statistical leaders of each game across a fixed-width ticker.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTicker(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path of the .env file to load")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

type app struct {
	cfg     *config.Config
	metrics *metrics.Service
	service *service.LiveStatsService
	cache   cache.Cache
	close   func() error
}

// newApp loads configuration and wires the fetch stack shared by every command.
func newApp(ctx context.Context) (*app, error) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if err := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}

	respCache, closeCache, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	m := metrics.NewService()

	espnClient := espn.NewClient(cfg.Upstream.ESPNBaseURL, respCache,
		espn.WithHTTPClient(&http.Client{Timeout: cfg.Upstream.Timeout}),
		espn.WithMetrics(m),
	)
	ncaaClient := ncaa.NewClient(cfg.Upstream.NCAABaseURL)
	gamesAPI := sports.NewAPI(espn.NewAPI(espnClient), ncaa.NewAPI(ncaaClient))

	return &app{
		cfg:     cfg,
		metrics: m,
		service: service.NewLiveStatsService(gamesAPI, m),
		cache:   respCache,
		close:   closeCache,
	}, nil
}

func newCache(ctx context.Context, cfg config.Cache) (cache.Cache, func() error, error) {
	switch strings.ToLower(cfg.Backend) {
	case "redis":
		c, err := redis.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Using redis response cache", "addr", cfg.RedisAddr)
		return c, c.Close, nil
	default:
		return memory.NewCache(), func() error { return nil }, nil
	}
}
