// internal/app/system/listpage/sequence.go
package listpage

import (
	"net/http"
	"sync"
)

// Sequencer enforces last-write-wins for partial table refreshes. The
// network does not guarantee response ordering: a slow request for tab A can
// resolve after a fast one for tab B. Each refresh request registers on
// arrival; before a response is written the handler asks whether it is still
// the newest for its key, and a superseded response is suppressed so the
// table only ever shows the most recently requested filter.
//
// Keys scope the ordering to one list for one operator, e.g. "payments:a1".
type Sequencer struct {
	mu      sync.Mutex
	counter uint64
	latest  map[string]uint64
}

// NewSequencer builds an empty sequencer. One per list feature is plenty.
func NewSequencer() *Sequencer {
	return &Sequencer{latest: make(map[string]uint64)}
}

// Begin registers an arriving refresh request and returns its generation.
func (s *Sequencer) Begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	s.latest[key] = s.counter
	return s.counter
}

// StillLatest reports whether gen is the newest registered generation for
// key. A false answer means a newer request arrived while this one was being
// served and its response must not be applied.
func (s *Sequencer) StillLatest(key string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[key] == gen
}

// Suppress marks an HTMX response as not-to-be-swapped. The request
// completed but its result is stale; the client keeps what it has.
func Suppress(w http.ResponseWriter) {
	w.Header().Set("HX-Reswap", "none")
	w.WriteHeader(http.StatusNoContent)
}
