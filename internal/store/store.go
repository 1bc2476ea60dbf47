package store

import (
	"context"
	"errors"

	"github.com/retireplan/spendgo/internal/domain"
)

// ErrNotFound is returned when no schedule is stored under the requested
// name.
var ErrNotFound = errors.New("schedule not found")

// ScheduleStore persists projected spending schedules by name. Both
// implementations serialize schedules to JSON, so a Load always returns a
// copy detached from the caller's value.
type ScheduleStore interface {
	Save(ctx context.Context, name string, schedule *domain.SpendingSchedule) error
	Load(ctx context.Context, name string) (*domain.SpendingSchedule, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}
