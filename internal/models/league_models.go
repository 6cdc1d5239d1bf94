package models

type LeagueKey string

const (
	NBA   LeagueKey = "nba"
	NFL   LeagueKey = "nfl"
	NCAAM LeagueKey = "ncaam"
	NCAAF LeagueKey = "ncaaf"
)

// LeagueOrder is the canonical iteration order used when building rotations.
var LeagueOrder = []LeagueKey{NBA, NFL, NCAAM, NCAAF}

type Sport string

const (
	Basketball Sport = "basketball"
	Football   Sport = "football"
)

type LeagueDescriptor struct {
	Key      LeagueKey
	Sport    Sport
	League   string
	Priority int
	Enabled  bool
}

var KnownLeagues = map[LeagueKey]LeagueDescriptor{
	NBA:   {Key: NBA, Sport: Basketball, League: "nba"},
	NFL:   {Key: NFL, Sport: Football, League: "nfl"},
	NCAAM: {Key: NCAAM, Sport: Basketball, League: "mens-college-basketball"},
	NCAAF: {Key: NCAAF, Sport: Football, League: "college-football"},
}

func LookupLeague(key string) (LeagueDescriptor, bool) {
	d, ok := KnownLeagues[LeagueKey(key)]
	return d, ok
}

type TeamInfo struct {
	Abbreviation string
	Name         string
	Record       string
	Rank         int
}

// GameRecord is one in-progress contest. Records are built once per fetch
// cycle and never mutated afterwards.
type GameRecord struct {
	ID            string
	League        LeagueKey
	Home          TeamInfo
	Away          TeamInfo
	HomeScore     int
	AwayScore     int
	Period        int
	Clock         string
	PeriodText    string
	IsFavorite    bool
	ExpandedStats bool
	HomeLeaders   Leaders
	AwayLeaders   Leaders
}

type FetchOptions struct {
	MaxGames             int
	PowerConferencesOnly bool
	FavoriteTeams        []string
	FavoriteExpanded     bool
}
