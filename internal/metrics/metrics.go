package metrics

// Metrics is the set of counters the fetch pipeline and orchestrator report to.
type Metrics interface {
	IncFetchAttempt(league string)
	IncFetchFailure(league string)
	SetLiveGames(league string, n int)
	IncCacheHit()
	IncCacheMiss()
	IncBatchSwap()
	IncLeagueRotation()
}

// Nop discards everything. Used when no metrics are wired.
type Nop struct{}

func (Nop) IncFetchAttempt(string) {}
func (Nop) IncFetchFailure(string) {}
func (Nop) SetLiveGames(string, int) {}
func (Nop) IncCacheHit() {}
func (Nop) IncCacheMiss() {}
func (Nop) IncBatchSwap() {}
func (Nop) IncLeagueRotation() {}
