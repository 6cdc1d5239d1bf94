package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock records calls for assertions in tests. It is safe for concurrent use.
type Mock struct {
	mu              sync.Mutex
	fetchAttempts   map[string]int
	fetchFailures   map[string]int
	liveGames       map[string]int
	cacheHits       int
	cacheMisses     int
	batchSwaps      int
	leagueRotations int
}

func NewMock() *Mock {
	return &Mock{
		fetchAttempts: make(map[string]int),
		fetchFailures: make(map[string]int),
		liveGames:     make(map[string]int),
	}
}

func (m *Mock) IncFetchAttempt(league string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchAttempts[league]++
}

func (m *Mock) IncFetchFailure(league string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchFailures[league]++
}

func (m *Mock) SetLiveGames(league string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.liveGames[league] = n
}

func (m *Mock) IncCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *Mock) IncCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses++
}

func (m *Mock) IncBatchSwap() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchSwaps++
}

func (m *Mock) IncLeagueRotation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leagueRotations++
}

func (m *Mock) FetchAttempts(league string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchAttempts[league]
}

func (m *Mock) FetchFailures(league string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchFailures[league]
}

func (m *Mock) LiveGames(league string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.liveGames[league]
}

func (m *Mock) CacheHits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheHits
}

func (m *Mock) CacheMisses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheMisses
}

func (m *Mock) BatchSwaps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batchSwaps
}

func (m *Mock) LeagueRotations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leagueRotations
}
