package orchestrator

import (
	"context"
	"log/slog"
	"time"
)

type Display interface {
	Show(frame string) error
}

// FrameInterval picks the slower of the scroll delay and the target frame rate.
func FrameInterval(scrollDelay time.Duration, targetFPS int) time.Duration {
	frame := scrollDelay
	if targetFPS > 0 {
		if fpsFrame := time.Second / time.Duration(targetFPS); fpsFrame > frame {
			frame = fpsFrame
		}
	}
	if frame <= 0 {
		frame = 20 * time.Millisecond
	}
	return frame
}

// RunDisplay ticks the ticker every frame until ctx is done. Display errors
// are logged and do not stop the loop.
func (o *Orchestrator) RunDisplay(ctx context.Context, d Display, frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.Show(o.Tick()); err != nil {
				slog.Error("Error displaying frame", "error", err)
			}
		}
	}
}
