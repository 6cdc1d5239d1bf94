package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/omarshaarawi/liveleaders/internal/models"
)

type Config struct {
	Leagues     Leagues
	Data        Data
	Display     Display
	Cache       Cache
	Upstream    Upstream
	TelegramBot TelegramBot
	Server      Server
	Log         Log
}

type Leagues struct {
	NBAEnabled    bool `envconfig:"NBA_ENABLED" default:"true"`
	NBAPriority   int  `envconfig:"NBA_PRIORITY" default:"1"`
	NFLEnabled    bool `envconfig:"NFL_ENABLED" default:"true"`
	NFLPriority   int  `envconfig:"NFL_PRIORITY" default:"2"`
	NCAAMEnabled  bool `envconfig:"NCAAM_ENABLED" default:"true"`
	NCAAMPriority int  `envconfig:"NCAAM_PRIORITY" default:"3"`
	NCAAFEnabled  bool `envconfig:"NCAAF_ENABLED" default:"true"`
	NCAAFPriority int  `envconfig:"NCAAF_PRIORITY" default:"4"`
}

type Data struct {
	MaxGamesPerLeague         int           `envconfig:"MAX_GAMES_PER_LEAGUE" default:"50"`
	UpdateInterval            time.Duration `envconfig:"UPDATE_INTERVAL" default:"60s"`
	UpdateCheckInterval       time.Duration `envconfig:"UPDATE_CHECK_INTERVAL" default:"1s"`
	PowerConferencesOnly      bool          `envconfig:"POWER_CONFERENCES_ONLY" default:"false"`
	FavoriteTeams             []string      `envconfig:"FAVORITE_TEAMS"`
	FavoriteTeamExpandedStats bool          `envconfig:"FAVORITE_TEAM_EXPANDED_STATS" default:"false"`
}

type Display struct {
	ScrollSpeed float64       `envconfig:"SCROLL_SPEED" default:"1"`
	ScrollDelay time.Duration `envconfig:"SCROLL_DELAY" default:"20ms"`
	TargetFPS   int           `envconfig:"TARGET_FPS" default:"120"`
	Width       int           `envconfig:"DISPLAY_WIDTH" default:"64"`
}

type Cache struct {
	Backend       string `envconfig:"CACHE_BACKEND" default:"memory"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

type Upstream struct {
	ESPNBaseURL string        `envconfig:"ESPN_BASE_URL" default:"https://site.api.espn.com/apis/site/v2/sports"`
	NCAABaseURL string        `envconfig:"NCAA_BASE_URL" default:"https://ncaa-api.henrygd.me"`
	Timeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type Server struct {
	Addr string `envconfig:"HTTP_ADDR" default:":8080"`
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Cache.Backend) {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Data.UpdateInterval <= 0 {
		return fmt.Errorf("update interval must be positive, got %s", c.Data.UpdateInterval)
	}
	if c.Data.MaxGamesPerLeague <= 0 {
		return fmt.Errorf("max games per league must be positive, got %d", c.Data.MaxGamesPerLeague)
	}
	return nil
}

// Rotation returns the enabled leagues ordered by priority, lowest first.
// Equal priorities keep the canonical league order.
func (c *Config) Rotation() []models.LeagueDescriptor {
	settings := map[models.LeagueKey]struct {
		enabled  bool
		priority int
	}{
		models.NBA:   {c.Leagues.NBAEnabled, c.Leagues.NBAPriority},
		models.NFL:   {c.Leagues.NFLEnabled, c.Leagues.NFLPriority},
		models.NCAAM: {c.Leagues.NCAAMEnabled, c.Leagues.NCAAMPriority},
		models.NCAAF: {c.Leagues.NCAAFEnabled, c.Leagues.NCAAFPriority},
	}

	var rotation []models.LeagueDescriptor
	for _, key := range models.LeagueOrder {
		s := settings[key]
		if !s.enabled {
			continue
		}
		d := models.KnownLeagues[key]
		d.Enabled = true
		d.Priority = s.priority
		rotation = append(rotation, d)
	}

	sort.SliceStable(rotation, func(i, j int) bool {
		return rotation[i].Priority < rotation[j].Priority
	})
	return rotation
}

func (c *Config) FetchOptions() models.FetchOptions {
	return models.FetchOptions{
		MaxGames:             c.Data.MaxGamesPerLeague,
		PowerConferencesOnly: c.Data.PowerConferencesOnly,
		FavoriteTeams:        c.Data.FavoriteTeams,
		FavoriteExpanded:     c.Data.FavoriteTeamExpandedStats,
	}
}
