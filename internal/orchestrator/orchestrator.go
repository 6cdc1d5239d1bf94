// Package orchestrator owns league rotation and the fetch/render/swap cycle
// behind the scrolling ticker.
package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/omarshaarawi/liveleaders/internal/metrics"
	"github.com/omarshaarawi/liveleaders/internal/models"
	"github.com/omarshaarawi/liveleaders/internal/render"
)

type State int32

const (
	NeedsInitialFetch State = iota
	Idle
	BackgroundFetchRunning
)

func (s State) String() string {
	switch s {
	case NeedsInitialFetch:
		return "needs_initial_fetch"
	case Idle:
		return "idle"
	case BackgroundFetchRunning:
		return "background_fetch_running"
	}
	return "unknown"
}

type Fetcher interface {
	FetchLiveGames(ctx context.Context, league string, opts models.FetchOptions) []models.GameRecord
}

// Notifier hears about favorite-team games when they first reach the screen.
type Notifier interface {
	NotifyFavorites(games []models.GameRecord)
}

type Options struct {
	Interval     time.Duration
	FetchOptions models.FetchOptions
	Width        int
	ScrollSpeed  float64
	ScrollDelay  time.Duration
	CardGap      int
}

// batch is the result of one fetch cycle. league is zero when nothing was live.
type batch struct {
	league models.LeagueDescriptor
	games  []models.GameRecord
}

type Orchestrator struct {
	fetcher  Fetcher
	renderer render.Renderer
	metrics  metrics.Metrics
	rotation []models.LeagueDescriptor
	opts     Options
	now      func() time.Time

	mu        sync.Mutex
	index     int
	lastFetch time.Time
	state     State

	inFlight atomic.Bool
	pending  chan batch

	viewMu          sync.RWMutex
	displayed       []models.GameRecord
	displayedLeague models.LeagueDescriptor
	notifier        Notifier
	announced       map[string]bool
	scroller        *render.Scroller
	scrolled        float64

	wg sync.WaitGroup
}

func New(fetcher Fetcher, renderer render.Renderer, m metrics.Metrics, rotation []models.LeagueDescriptor, opts Options) *Orchestrator {
	if m == nil {
		m = metrics.Nop{}
	}
	if opts.CardGap <= 0 {
		opts.CardGap = 4
	}
	o := &Orchestrator{
		fetcher:  fetcher,
		renderer: renderer,
		metrics:  m,
		rotation: rotation,
		opts:     opts,
		now:      time.Now,
		pending:  make(chan batch, 1),
		scroller: render.NewScroller(opts.Width, opts.ScrollSpeed),
	}
	o.scroller.SetContent(renderer.Placeholder())
	return o
}

// Update runs the synchronous initial fetch on first use. Afterwards it
// starts a background fetch once the interval has elapsed and no other fetch
// is in flight. It never blocks on a background fetch.
func (o *Orchestrator) Update(ctx context.Context) {
	o.mu.Lock()
	state := o.state
	due := o.now().Sub(o.lastFetch) >= o.opts.Interval
	o.mu.Unlock()

	if state == NeedsInitialFetch {
		if !o.inFlight.CompareAndSwap(false, true) {
			return
		}
		o.setDisplayed(o.fetchGames(ctx))

		o.mu.Lock()
		o.lastFetch = o.now()
		o.state = Idle
		o.mu.Unlock()
		o.inFlight.Store(false)
		return
	}

	if !due || !o.inFlight.CompareAndSwap(false, true) {
		return
	}

	o.mu.Lock()
	o.lastFetch = o.now()
	o.state = BackgroundFetchRunning
	o.mu.Unlock()

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.offer(o.fetchGames(ctx))

		o.mu.Lock()
		o.state = Idle
		o.mu.Unlock()
		o.inFlight.Store(false)
	}()
}

// fetchGames tries the current league, then each following league once,
// stopping at the first one with live games.
func (o *Orchestrator) fetchGames(ctx context.Context) batch {
	if len(o.rotation) == 0 {
		slog.Warn("No leagues enabled")
		return batch{}
	}

	cycleID := uuid.NewString()
	o.mu.Lock()
	start := o.index
	o.mu.Unlock()

	for attempt := 0; attempt < len(o.rotation); attempt++ {
		idx := (start + attempt) % len(o.rotation)
		league := o.rotation[idx]

		o.mu.Lock()
		o.index = idx
		o.mu.Unlock()

		games := o.fetcher.FetchLiveGames(ctx, string(league.Key), o.opts.FetchOptions)
		if len(games) > 0 {
			if attempt > 0 {
				slog.Info("Rotated league", "cycle_id", cycleID, "from", o.rotation[start].Key, "to", league.Key, "games", len(games))
			}
			return batch{league: league, games: games}
		}
		if ctx.Err() != nil {
			slog.Warn("Fetch cancelled", "cycle_id", cycleID, "error", ctx.Err())
			return batch{}
		}
		if attempt+1 < len(o.rotation) {
			o.metrics.IncLeagueRotation()
		}
	}

	o.mu.Lock()
	o.index = start
	o.mu.Unlock()
	slog.Info("No live games in any enabled league", "cycle_id", cycleID)
	return batch{}
}

// offer replaces any unconsumed pending batch with b.
func (o *Orchestrator) offer(b batch) {
	select {
	case <-o.pending:
	default:
	}
	o.pending <- b
}

// Tick advances the ticker by one frame and returns the visible text.
// A pending batch is only swapped in when the scroll wraps around.
func (o *Orchestrator) Tick() string {
	o.viewMu.Lock()
	defer o.viewMu.Unlock()

	prev := o.scroller.Offset()
	wrapped := o.scroller.Advance()
	cur := o.scroller.Offset()

	if wrapped {
		select {
		case b := <-o.pending:
			o.showLocked(b)
			o.metrics.IncBatchSwap()
			slog.Debug("Swapped in pending games", "league", b.league.Key, "games", len(b.games))
		default:
			o.scrolled = 0
		}
	} else {
		o.scrolled += cur - prev
	}

	return o.scroller.Visible()
}

func (o *Orchestrator) setDisplayed(b batch) {
	o.viewMu.Lock()
	defer o.viewMu.Unlock()
	o.showLocked(b)
}

func (o *Orchestrator) showLocked(b batch) {
	o.displayed = b.games
	o.displayedLeague = b.league
	o.rebuildLocked()
	o.announceLocked()
}

// SetNotifier installs n for favorite-team announcements.
func (o *Orchestrator) SetNotifier(n Notifier) {
	o.viewMu.Lock()
	defer o.viewMu.Unlock()
	o.notifier = n
}

// announceLocked passes favorite games that were not on the previous batch
// to the notifier. The notifier runs off the display goroutine.
func (o *Orchestrator) announceLocked() {
	if o.notifier == nil {
		return
	}

	onScreen := make(map[string]bool)
	var fresh []models.GameRecord
	for _, g := range o.displayed {
		if !g.IsFavorite {
			continue
		}
		onScreen[g.ID] = true
		if !o.announced[g.ID] {
			fresh = append(fresh, g)
		}
	}
	o.announced = onScreen
	if len(fresh) == 0 {
		return
	}

	notifier := o.notifier
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		notifier.NotifyFavorites(fresh)
	}()
}

// rebuildLocked renders every displayed game. Cards that fail are left out.
func (o *Orchestrator) rebuildLocked() {
	cards := make([]string, 0, len(o.displayed))
	for _, g := range o.displayed {
		card, err := o.renderer.RenderCard(g)
		if err != nil {
			slog.Error("Error rendering game card", "game", g.ID, "error", err)
			continue
		}
		cards = append(cards, card)
	}
	if len(cards) == 0 {
		if len(o.displayed) > 0 {
			slog.Warn("Failed to render any game cards")
		}
		cards = []string{o.renderer.Placeholder()}
	}
	o.scroller.SetContent(render.Compose(cards, o.opts.CardGap))
	o.scrolled = 0
}

// Displayed returns the batch currently on screen.
func (o *Orchestrator) Displayed() []models.GameRecord {
	o.viewMu.RLock()
	defer o.viewMu.RUnlock()
	return o.displayed
}

// DisplayDuration is the time one full scroll of the current content takes.
func (o *Orchestrator) DisplayDuration() time.Duration {
	o.viewMu.RLock()
	defer o.viewMu.RUnlock()
	return o.scroller.CycleDuration(o.opts.ScrollDelay)
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// CurrentLeague returns the league the rotation currently points at. While a
// fetch runs this is the league being tried, which may differ from the
// league on screen.
func (o *Orchestrator) CurrentLeague() (models.LeagueDescriptor, bool) {
	if len(o.rotation) == 0 {
		return models.LeagueDescriptor{}, false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rotation[o.index], true
}

// DisplayedLeague returns the league of the batch on screen. It reports false
// while the placeholder is shown.
func (o *Orchestrator) DisplayedLeague() (models.LeagueDescriptor, bool) {
	o.viewMu.RLock()
	defer o.viewMu.RUnlock()
	return o.displayedLeague, o.displayedLeague.Key != ""
}

func (o *Orchestrator) Rotation() []models.LeagueDescriptor {
	return o.rotation
}

// Wait blocks until any background fetch and pending notification has finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Scrolled is the distance covered since the last wrap or rebuild.
func (o *Orchestrator) Scrolled() float64 {
	o.viewMu.RLock()
	defer o.viewMu.RUnlock()
	return o.scrolled
}
