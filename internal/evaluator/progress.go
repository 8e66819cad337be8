package evaluator

import "sync"

// reporter serialises progress callbacks from worker goroutines.
type reporter struct {
	mu sync.Mutex
	cb ProgressCallback
}

func newReporter(cb ProgressCallback) *reporter {
	return &reporter{cb: cb}
}

func (r *reporter) emit(ev ProgressEvent) {
	if r.cb == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cb(ev)
}
