package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-ops/uniadmin-api/internal/models"
	appErrors "github.com/campus-ops/uniadmin-api/pkg/errors"
)

func TestQuotaTrackerMaxAllowed(t *testing.T) {
	quota := NewQuotaTracker(nil, nil, 0.33)

	cases := []struct {
		deptSize int
		want     int
	}{
		{1, 1},  // floor(0.33+0.5)=0, +1
		{2, 2},  // floor(0.66+0.5)=1, +1
		{3, 2},  // floor(0.99+0.5)=1, +1
		{6, 3},  // floor(1.98+0.5)=2, +1
		{10, 4}, // floor(3.3+0.5)=3, +1
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, quota.MaxAllowed(tc.deptSize), "dept size %d", tc.deptSize)
	}
}

func TestQuotaTrackerCheck(t *testing.T) {
	teacherRepo := &stubTeacherRepo{deptCount: 10}
	assignRepo := &stubSlotAssignmentRepo{occupants: 3}
	quota := NewQuotaTracker(teacherRepo, assignRepo, 0.33)

	slotType := string(models.SlotTypeA)
	require.NoError(t, quota.Check(context.Background(), "cse", models.Monday, &slotType, "teacher-1"))
}

func TestQuotaTrackerCheckRejectsAtCapacity(t *testing.T) {
	teacherRepo := &stubTeacherRepo{deptCount: 10}
	assignRepo := &stubSlotAssignmentRepo{occupants: 4}
	quota := NewQuotaTracker(teacherRepo, assignRepo, 0.33)

	slotType := string(models.SlotTypeA)
	err := quota.Check(context.Background(), "cse", models.Monday, &slotType, "teacher-5")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrQuotaExceeded.Code, appErrors.FromError(err).Code)
}
