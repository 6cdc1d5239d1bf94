package models

import "strings"

// TeamSet is a case-insensitive set of team identifiers.
type TeamSet map[string]struct{}

func NewTeamSet(teams []string) TeamSet {
	set := make(TeamSet, len(teams))
	for _, t := range teams {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		set[strings.ToUpper(t)] = struct{}{}
	}
	return set
}

func (s TeamSet) Has(team string) bool {
	if team == "" {
		return false
	}
	_, ok := s[strings.ToUpper(strings.TrimSpace(team))]
	return ok
}

// HasAny reports whether any of the given identifiers is in the set.
func (s TeamSet) HasAny(teams ...string) bool {
	for _, t := range teams {
		if s.Has(t) {
			return true
		}
	}
	return false
}
