package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/retireplan/spendgo/internal/domain"
)

// MemoryStore is an in-memory ScheduleStore. Values are held serialized so
// callers can never mutate a stored schedule through a retained pointer.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Save stores the schedule under the given name, replacing any previous
// value.
func (m *MemoryStore) Save(ctx context.Context, name string, schedule *domain.SpendingSchedule) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("schedule name cannot be empty")
	}
	payload, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("encode schedule %s: %w", name, err)
	}
	m.mu.Lock()
	m.data[name] = payload
	m.mu.Unlock()
	return nil
}

// Load returns the schedule stored under the given name.
func (m *MemoryStore) Load(ctx context.Context, name string) (*domain.SpendingSchedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	payload, ok := m.data[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	var schedule domain.SpendingSchedule
	if err := json.Unmarshal(payload, &schedule); err != nil {
		return nil, fmt.Errorf("decode schedule %s: %w", name, err)
	}
	return &schedule, nil
}

// List returns the stored schedule names in sorted order.
func (m *MemoryStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	m.mu.RUnlock()
	sort.Strings(names)
	return names, nil
}

// Delete removes the schedule stored under the given name.
func (m *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(m.data, name)
	return nil
}
