package models

type LeaderEntry struct {
	Name    string
	Value   int
	Display string
}

// Leaders is implemented by BasketballLeaders and FootballLeaders only.
// A nil slice means no player qualified for that category.
type Leaders interface {
	Sport() Sport
	Categories() []Category
	leaders()
}

type Category struct {
	Code    string
	Entries []LeaderEntry
}

type BasketballLeaders struct {
	PTS []LeaderEntry
	REB []LeaderEntry
	AST []LeaderEntry
	STL []LeaderEntry
	BLK []LeaderEntry
}

func (BasketballLeaders) Sport() Sport { return Basketball }

func (b BasketballLeaders) Categories() []Category {
	return nonEmpty(
		Category{"PTS", b.PTS},
		Category{"REB", b.REB},
		Category{"AST", b.AST},
		Category{"STL", b.STL},
		Category{"BLK", b.BLK},
	)
}

func (BasketballLeaders) leaders() {}

type FootballLeaders struct {
	QB []LeaderEntry
	WR []LeaderEntry
	RB []LeaderEntry
}

func (FootballLeaders) Sport() Sport { return Football }

func (f FootballLeaders) Categories() []Category {
	return nonEmpty(
		Category{"QB", f.QB},
		Category{"WR", f.WR},
		Category{"RB", f.RB},
	)
}

func (FootballLeaders) leaders() {}

// HasLeaders reports whether l carries at least one category.
func HasLeaders(l Leaders) bool {
	return l != nil && len(l.Categories()) > 0
}

func nonEmpty(cats ...Category) []Category {
	out := make([]Category, 0, len(cats))
	for _, c := range cats {
		if len(c.Entries) > 0 {
			out = append(out, c)
		}
	}
	return out
}
