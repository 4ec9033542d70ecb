package batch

import "sync"

// History is an append-only store of finished job results. Implementations
// must be safe for concurrent writers.
type History interface {
	// Append records a finished result.
	Append(res *Result) error
	// Get returns a result by job ID.
	Get(jobID string) (*Result, bool, error)
	// Recent returns up to limit results, most recent first.
	Recent(limit int) ([]*Result, error)
}

// MemoryHistory is a mutex-guarded in-memory History.
type MemoryHistory struct {
	mu      sync.Mutex
	results []*Result
}

// NewMemoryHistory creates an empty MemoryHistory.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

// Append records a finished result.
func (h *MemoryHistory) Append(res *Result) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	copied := *res
	copied.Errors = append([]string(nil), res.Errors...)
	h.results = append(h.results, &copied)
	return nil
}

// Get returns a result by job ID.
func (h *MemoryHistory) Get(jobID string) (*Result, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, res := range h.results {
		if res.JobID == jobID {
			return res, true, nil
		}
	}
	return nil, false, nil
}

// Recent returns up to limit results, most recent first.
func (h *MemoryHistory) Recent(limit int) ([]*Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.results)
	if limit > n {
		limit = n
	}
	if limit < 0 {
		limit = 0
	}
	out := make([]*Result, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, h.results[i])
	}
	return out, nil
}
