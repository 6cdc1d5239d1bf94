package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/liveleaders/internal/models"
)

type player struct {
	name string
	pts  string
}

func points(p player) int { return StatOrZero(p.pts) }
func playerName(p player) string { return p.name }

func TestTopN(t *testing.T) {
	players := []player{
		{"A", "10"},
		{"B", "24"},
		{"C", "10"},
		{"D", "0"},
		{"E", "abc"},
		{"F", "12"},
	}

	tests := []struct {
		name     string
		n        int
		expected []models.LeaderEntry
	}{
		{
			name:     "top two",
			n:        2,
			expected: []models.LeaderEntry{{Name: "B", Value: 24}, {Name: "F", Value: 12}},
		},
		{
			name: "ties keep input order",
			n:    4,
			expected: []models.LeaderEntry{
				{Name: "B", Value: 24},
				{Name: "F", Value: 12},
				{Name: "A", Value: 10},
				{Name: "C", Value: 10},
			},
		},
		{
			name: "zero and malformed never qualify",
			n:    10,
			expected: []models.LeaderEntry{
				{Name: "B", Value: 24},
				{Name: "F", Value: 12},
				{Name: "A", Value: 10},
				{Name: "C", Value: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TopN(players, points, playerName, tt.n))
		})
	}
}

func TestTopNReturnsNilWhenNothingQualifies(t *testing.T) {
	players := []player{{"A", "0"}, {"B", "--"}, {"C", ""}}
	assert.Nil(t, TopN(players, points, playerName, 2))
	assert.Nil(t, TopN([]player{{"A", "5"}}, points, playerName, 0))
}

func TestTopNAllEntriesPositive(t *testing.T) {
	players := []player{{"A", "3"}, {"B", "-4"}, {"C", "1"}, {"D", "x"}}
	got := TopN(players, points, playerName, 10)
	require.Len(t, got, 2)
	for _, e := range got {
		assert.Greater(t, e.Value, 0)
	}
}

func TestParseStat(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"12", 12, true},
		{" 7 ", 7, true},
		{"5-10", 5, true},
		{"18/25", 18, true},
		{"45.5", 45, true},
		{"-3", 0, true},
		{"--", 0, false},
		{"", 0, false},
		{"DNP", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseStat(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestLeaderCount(t *testing.T) {
	assert.Equal(t, 2, LeaderCount(false))
	assert.Equal(t, 10, LeaderCount(true))
}
