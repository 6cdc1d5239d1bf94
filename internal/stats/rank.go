// Package stats holds the leader ranking and name helpers shared by every
// upstream schema.
package stats

import (
	"sort"
	"strconv"
	"strings"

	"github.com/omarshaarawi/liveleaders/internal/models"
)

const (
	DefaultLeaders  = 2
	ExpandedLeaders = 10
	NameMaxLen      = 8
)

// TopN ranks items by value, highest first, keeping at most n entries with a
// value above zero. Ties keep their input order. It returns nil when nothing
// qualifies so an absent category stays absent.
func TopN[T any](items []T, value func(T) int, name func(T) string, n int) []models.LeaderEntry {
	if n <= 0 {
		return nil
	}

	entries := make([]models.LeaderEntry, 0, len(items))
	for _, item := range items {
		v := value(item)
		if v <= 0 {
			continue
		}
		entries = append(entries, models.LeaderEntry{Name: name(item), Value: v})
	}
	if len(entries) == 0 {
		return nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// LeaderCount is the number of leaders kept per category.
func LeaderCount(expanded bool) int {
	if expanded {
		return ExpandedLeaders
	}
	return DefaultLeaders
}

// ParseStat reads a stat cell such as "12" or "5-10" (made-attempted, the
// made count is used). Missing or non-numeric cells report false.
func ParseStat(cell string) (int, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "--" {
		return 0, false
	}
	if i := strings.IndexAny(cell, "-/"); i > 0 {
		cell = cell[:i]
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		f, ferr := strconv.ParseFloat(cell, 64)
		if ferr != nil {
			return 0, false
		}
		n = int(f)
	}
	if n < 0 {
		n = 0
	}
	return n, true
}

// StatOrZero is ParseStat with failures mapped to zero, which never ranks.
func StatOrZero(cell string) int {
	n, _ := ParseStat(cell)
	return n
}
