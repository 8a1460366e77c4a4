package eventlog

// Observer receives append outcomes, e.g. to feed metrics. Implementations
// must be safe for concurrent use.
type Observer interface {
	// AppendCommitted is called once per successful append with the attempt
	// number that committed (1 or 2).
	AppendCommitted(attempts int)
	// AppendConflict is called for every lost compare-and-swap.
	AppendConflict(attempt int)
	// AppendExhausted is called when an event is dropped after losing twice.
	AppendExhausted()
	// Evicted reports how many of the oldest events a commit pushed out.
	Evicted(n int)
}

type noopObserver struct{}

func (noopObserver) AppendCommitted(int) {}
func (noopObserver) AppendConflict(int)  {}
func (noopObserver) AppendExhausted()    {}
func (noopObserver) Evicted(int)         {}
