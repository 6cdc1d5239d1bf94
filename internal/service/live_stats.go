package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/omarshaarawi/liveleaders/internal/api/sports"
	"github.com/omarshaarawi/liveleaders/internal/metrics"
	"github.com/omarshaarawi/liveleaders/internal/models"
)

const similarityThreshold = 0.7

type GamesAPI interface {
	LiveGames(ctx context.Context, league string, opts models.FetchOptions) ([]models.GameRecord, error)
}

type LiveStatsService struct {
	api     GamesAPI
	metrics metrics.Metrics
}

func NewLiveStatsService(api GamesAPI, m metrics.Metrics) *LiveStatsService {
	if m == nil {
		m = metrics.Nop{}
	}
	return &LiveStatsService{api: api, metrics: m}
}

// FetchLiveGames never fails: unknown leagues, upstream errors and decode
// problems are logged and reported as no live games.
func (s *LiveStatsService) FetchLiveGames(ctx context.Context, league string, opts models.FetchOptions) (games []models.GameRecord) {
	s.metrics.IncFetchAttempt(league)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered while fetching live games", "league", league, "panic", r)
			s.metrics.IncFetchFailure(league)
			games = nil
		}
	}()

	games, err := s.api.LiveGames(ctx, league, opts)
	if err != nil {
		if errors.Is(err, sports.ErrUnknownLeague) {
			slog.Warn("Unknown league", "league", league)
		} else {
			slog.Error("Error fetching live games", "league", league, "error", err)
		}
		s.metrics.IncFetchFailure(league)
		return nil
	}

	s.metrics.SetLiveGames(league, len(games))
	slog.Info("Found live games", "league", league, "count", len(games))
	return games
}

type LeaderMatch struct {
	Game     models.GameRecord
	Team     string
	Category string
	Entry    models.LeaderEntry
}

// FindLeader returns the leader entry whose name is closest to query, either
// by full name or by last name.
func FindLeader(games []models.GameRecord, query string) (LeaderMatch, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return LeaderMatch{}, false
	}

	var best LeaderMatch
	bestScore := similarityThreshold
	found := false

	consider := func(game models.GameRecord, team string, leaders models.Leaders) {
		if leaders == nil {
			return
		}
		for _, cat := range leaders.Categories() {
			for _, entry := range cat.Entries {
				score := nameSimilarity(query, entry.Name)
				if score > bestScore {
					bestScore = score
					best = LeaderMatch{Game: game, Team: team, Category: cat.Code, Entry: entry}
					found = true
				}
			}
		}
	}

	for _, g := range games {
		consider(g, g.Away.Abbreviation, g.AwayLeaders)
		consider(g, g.Home.Abbreviation, g.HomeLeaders)
	}
	return best, found
}

func nameSimilarity(query, name string) float64 {
	name = strings.ToLower(name)
	best := similarity(query, name)
	if parts := strings.Fields(name); len(parts) > 1 {
		if s := similarity(query, parts[len(parts)-1]); s > best {
			best = s
		}
	}
	return best
}

func similarity(a, b string) float64 {
	maxLen := float64(max(len(a), len(b)))
	if maxLen == 0 {
		return 0
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(distance)/maxLen
}
