package render

import (
	"fmt"
	"io"
)

// TerminalDisplay redraws the frame in place on a single terminal line.
type TerminalDisplay struct {
	w    io.Writer
	last string
}

func NewTerminalDisplay(w io.Writer) *TerminalDisplay {
	return &TerminalDisplay{w: w}
}

func (d *TerminalDisplay) Show(frame string) error {
	if frame == d.last {
		return nil
	}
	d.last = frame
	_, err := fmt.Fprintf(d.w, "\r[%s]", frame)
	return err
}
