package ports

import (
	"context"

	"github.com/synchromap/synchromap-go/internal/domain"
)

// StateStore persists the two durable session values: the blueprint and the
// plan flag. Implementations treat corrupted stored data as absence (the
// value is cleared, not reported as an error); errors returned here are real
// I/O failures, which callers log and continue past.
type StateStore interface {
	LoadBlueprint(ctx context.Context) (domain.BirthBlueprint, bool, error)
	SaveBlueprint(ctx context.Context, bp domain.BirthBlueprint) error

	LoadPlan(ctx context.Context) (domain.PlanState, error)
	SavePlan(ctx context.Context, plan domain.PlanState) error
}
