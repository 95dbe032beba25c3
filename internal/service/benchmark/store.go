package benchmark

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrRunNotFound = errors.New("benchmark run not found")

// RunInfo is the listing view of a stored run.
type RunInfo struct {
	ID         string     `json:"id"`
	Experiment Experiment `json:"experiment"`
	Status     Status     `json:"status"`
	Games      int        `json:"games"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Store persists benchmark reports.
type Store interface {
	SaveRun(ctx context.Context, rep *Report) error
	GetRun(ctx context.Context, id string) (*Report, error)
	ListRuns(ctx context.Context, limit int) ([]RunInfo, error)
}

// Cache holds finished reports in front of a Store. Implementations report
// a miss as (nil, nil).
type Cache interface {
	GetReport(ctx context.Context, id string) (*Report, error)
	SetReport(ctx context.Context, rep *Report) error
}

func infoOf(rep *Report) RunInfo {
	return RunInfo{ID: rep.ID, Experiment: rep.Experiment, Status: rep.Status, Games: len(rep.Rows), CreatedAt: rep.CreatedAt}
}

// MemoryStore keeps reports in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*Report
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*Report)}
}

func (m *MemoryStore) SaveRun(ctx context.Context, rep *Report) error {
	cp := *rep
	m.mu.Lock()
	m.runs[rep.ID] = &cp
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) GetRun(ctx context.Context, id string) (*Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rep, ok := m.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	cp := *rep
	return &cp, nil
}

// ListRuns returns the newest runs first.
func (m *MemoryStore) ListRuns(ctx context.Context, limit int) ([]RunInfo, error) {
	m.mu.RLock()
	out := make([]RunInfo, 0, len(m.runs))
	for _, rep := range m.runs {
		out = append(out, infoOf(rep))
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
