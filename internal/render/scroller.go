package render

import (
	"strings"
	"time"
)

// Scroller moves a viewport across ticker content. The content is preceded
// by one viewport of blank space so it scrolls in from the right edge.
type Scroller struct {
	content []rune
	width   int
	speed   float64
	pos     float64
}

func NewScroller(width int, speed float64) *Scroller {
	if width <= 0 {
		width = 1
	}
	if speed <= 0 {
		speed = 1
	}
	return &Scroller{width: width, speed: speed}
}

func (s *Scroller) SetContent(text string) {
	s.content = []rune(strings.Repeat(" ", s.width) + text)
	s.pos = 0
}

// Advance moves the viewport by one step, returning to the start once the
// content has fully scrolled past. It reports whether it wrapped.
func (s *Scroller) Advance() bool {
	if len(s.content) == 0 {
		return false
	}
	s.pos += s.speed
	if s.pos >= float64(len(s.content)) {
		s.pos = 0
		return true
	}
	return false
}

func (s *Scroller) Offset() float64 { return s.pos }

func (s *Scroller) Width() int { return s.width }

func (s *Scroller) Len() int { return len(s.content) }

// Visible returns the width-wide window at the current offset.
func (s *Scroller) Visible() string {
	out := make([]rune, s.width)
	start := int(s.pos)
	for i := range out {
		j := start + i
		if j < len(s.content) {
			out[i] = s.content[j]
		} else {
			out[i] = ' '
		}
	}
	return string(out)
}

// CycleDuration is how long one full pass takes when stepping every delay.
func (s *Scroller) CycleDuration(delay time.Duration) time.Duration {
	if len(s.content) == 0 {
		return 0
	}
	steps := float64(len(s.content)) / s.speed
	return time.Duration(steps * float64(delay))
}
