package service

import (
	"context"
	"math"

	"github.com/campus-ops/uniadmin-api/internal/models"
	appErrors "github.com/campus-ops/uniadmin-api/pkg/errors"
)

type deptHeadcounter interface {
	CountByDepartment(ctx context.Context, departmentID string) (int, error)
}

type deptOccupancyReader interface {
	CountDeptOccupants(ctx context.Context, departmentID string, dayOfWeek int, slotType *string, excludeTeacherID string) (int, error)
}

// QuotaTracker is a stateless read-model over slot assignments enforcing the
// per-department, per-day, per-slot-type distribution quota. Counts are
// recomputed fresh on every call; correctness under concurrent writes comes
// from the enclosing transaction, not from cached counters.
type QuotaTracker struct {
	teachers  deptHeadcounter
	occupancy deptOccupancyReader
	ratio     float64
}

// NewQuotaTracker constructs the tracker. ratio <= 0 falls back to the
// institutional 33%.
func NewQuotaTracker(teachers deptHeadcounter, occupancy deptOccupancyReader, ratio float64) *QuotaTracker {
	if ratio <= 0 {
		ratio = 0.33
	}
	return &QuotaTracker{teachers: teachers, occupancy: occupancy, ratio: ratio}
}

// MaxAllowed is the quota formula: floor(deptSize*ratio + 0.5) plus one
// grace seat. For departments of size one or two the result equals the
// department size, so the quota never binds there.
func (q *QuotaTracker) MaxAllowed(deptSize int) int {
	return int(math.Floor(float64(deptSize)*q.ratio+0.5)) + 1
}

// Check rejects when admitting the teacher would meet or exceed the quota for
// the (department, day, slot type) bucket.
func (q *QuotaTracker) Check(ctx context.Context, departmentID string, dayOfWeek int, slotType *string, teacherID string) error {
	deptSize, err := q.teachers.CountByDepartment(ctx, departmentID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count department teachers")
	}

	occupants, err := q.occupancy.CountDeptOccupants(ctx, departmentID, dayOfWeek, slotType, teacherID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count slot occupants")
	}

	maxAllowed := q.MaxAllowed(deptSize)
	if occupants >= maxAllowed {
		label := "untyped"
		if slotType != nil {
			label = *slotType
		}
		return appErrors.Clonef(appErrors.ErrQuotaExceeded,
			"department quota reached for %s type-%s slots: %d of %d allowed teachers already assigned",
			models.DayName(dayOfWeek), label, occupants, maxAllowed)
	}
	return nil
}
