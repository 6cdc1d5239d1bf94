package sports

import (
	"context"
	"errors"
	"fmt"

	"github.com/omarshaarawi/liveleaders/internal/api/espn"
	"github.com/omarshaarawi/liveleaders/internal/api/ncaa"
	"github.com/omarshaarawi/liveleaders/internal/models"
)

var ErrUnknownLeague = errors.New("unknown league")

type API struct {
	espnAPI *espn.API
	ncaaAPI *ncaa.API
}

func NewAPI(espnAPI *espn.API, ncaaAPI *ncaa.API) *API {
	return &API{espnAPI: espnAPI, ncaaAPI: ncaaAPI}
}

// LiveGames routes ncaam to the NCAA mirror and every other league to ESPN.
func (a *API) LiveGames(ctx context.Context, league string, opts models.FetchOptions) ([]models.GameRecord, error) {
	desc, ok := models.LookupLeague(league)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLeague, league)
	}
	if desc.Key == models.NCAAM {
		return a.ncaaAPI.LiveGames(ctx, opts)
	}
	return a.espnAPI.LiveGames(ctx, desc, opts)
}
