package market

import (
	"sync"
	"time"
)

// offlineThreshold is the number of consecutive failed fetches after which
// the API is reported offline.
const offlineThreshold = 2

// HealthStatus is a point-in-time copy of fetch outcomes.
type HealthStatus struct {
	LastSuccess         time.Time
	LastError           error
	LastErrorAt         time.Time
	ConsecutiveFailures int
}

// IsOffline returns true when the API has failed repeatedly in a row.
func (s HealthStatus) IsOffline() bool {
	return s.ConsecutiveFailures >= offlineThreshold
}

// Health records fetch outcomes for status display. It never influences what
// a fetch returns.
type Health struct {
	mu     sync.RWMutex
	status HealthStatus
}

func (h *Health) recordSuccess() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status.LastSuccess = time.Now()
	h.status.ConsecutiveFailures = 0
}

func (h *Health) recordFailure(err error) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status.LastError = err
	h.status.LastErrorAt = time.Now()
	h.status.ConsecutiveFailures++
}

// Status returns a copy of the current outcome counters.
func (h *Health) Status() HealthStatus {
	if h == nil {
		return HealthStatus{}
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}
