package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-ops/uniadmin-api/internal/dto"
	"github.com/campus-ops/uniadmin-api/internal/models"
	appErrors "github.com/campus-ops/uniadmin-api/pkg/errors"
)

type stubSlotRepo struct {
	slots map[string]*models.Slot
}

func (s *stubSlotRepo) FindByID(ctx context.Context, id string) (*models.Slot, error) {
	if slot, ok := s.slots[id]; ok {
		cp := *slot
		cp.ApplyTypeDefaults()
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubSlotRepo) List(ctx context.Context) ([]models.Slot, error) {
	var out []models.Slot
	for _, slot := range s.slots {
		cp := *slot
		cp.ApplyTypeDefaults()
		out = append(out, cp)
	}
	return out, nil
}

type stubSlotAssignmentRepo struct {
	items     map[string]*models.TeacherSlotAssignment
	sameDay   []models.TeacherSlotAssignmentDetail
	occupants int
	created   []*models.TeacherSlotAssignment
	updated   []*models.TeacherSlotAssignment
	deleted   []string
	deleteErr error
}

func (s *stubSlotAssignmentRepo) all(excludeID string) []*models.TeacherSlotAssignment {
	var out []*models.TeacherSlotAssignment
	for _, item := range s.items {
		if item.ID != excludeID {
			out = append(out, item)
		}
	}
	for _, item := range s.created {
		if item.ID != excludeID {
			out = append(out, item)
		}
	}
	return out
}

func (s *stubSlotAssignmentRepo) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherSlotAssignmentDetail, error) {
	return s.sameDay, nil
}

func (s *stubSlotAssignmentRepo) ListByTeacherDay(ctx context.Context, teacherID string, dayOfWeek int, excludeID string) ([]models.TeacherSlotAssignmentDetail, error) {
	var out []models.TeacherSlotAssignmentDetail
	for _, detail := range s.sameDay {
		if detail.DayOfWeek == dayOfWeek && detail.ID != excludeID {
			out = append(out, detail)
		}
	}
	return out, nil
}

func (s *stubSlotAssignmentRepo) FindByID(ctx context.Context, id string) (*models.TeacherSlotAssignment, error) {
	if item, ok := s.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubSlotAssignmentRepo) HasDay(ctx context.Context, teacherID string, dayOfWeek int, excludeID string) (bool, error) {
	for _, item := range s.all(excludeID) {
		if item.TeacherID == teacherID && item.DayOfWeek == dayOfWeek {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubSlotAssignmentRepo) CountDistinctDays(ctx context.Context, teacherID, excludeID string) (int, error) {
	days := map[int]struct{}{}
	for _, item := range s.all(excludeID) {
		if item.TeacherID == teacherID {
			days[item.DayOfWeek] = struct{}{}
		}
	}
	return len(days), nil
}

func (s *stubSlotAssignmentRepo) CountDeptOccupants(ctx context.Context, departmentID string, dayOfWeek int, slotType *string, excludeTeacherID string) (int, error) {
	return s.occupants, nil
}

func (s *stubSlotAssignmentRepo) Create(ctx context.Context, assignment *models.TeacherSlotAssignment) error {
	assignment.ID = "sa-new"
	s.created = append(s.created, assignment)
	return nil
}

func (s *stubSlotAssignmentRepo) Update(ctx context.Context, assignment *models.TeacherSlotAssignment) error {
	s.updated = append(s.updated, assignment)
	return nil
}

func (s *stubSlotAssignmentRepo) Delete(ctx context.Context, teacherID, assignmentID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, assignmentID)
	return nil
}

func bandSlot(id string, band models.SlotType) *models.Slot {
	return &models.Slot{ID: id, Name: "Slot " + string(band), Type: &band}
}

func newSlotFixture(slotRepo *stubSlotRepo, assignRepo *stubSlotAssignmentRepo, deptCount int) *SlotAssignmentService {
	teacher := &models.Teacher{ID: "teacher-1", FullName: "Dr. Rao", Role: models.RoleProfessor, DepartmentID: "cse", WeeklyHours: 21}
	teacherRepo := &stubTeacherRepo{teachers: map[string]*models.Teacher{"teacher-1": teacher}, deptCount: deptCount}
	quota := NewQuotaTracker(teacherRepo, assignRepo, 0.33)
	return NewSlotAssignmentService(teacherRepo, slotRepo, assignRepo, quota, stubTxRunner{}, 5, validator.New(), zap.NewNop())
}

func TestSlotAssignmentServiceAssign(t *testing.T) {
	slotRepo := &stubSlotRepo{slots: map[string]*models.Slot{"slot-a": bandSlot("slot-a", models.SlotTypeA)}}
	assignRepo := &stubSlotAssignmentRepo{}
	svc := newSlotFixture(slotRepo, assignRepo, 10)

	assignment, err := svc.Assign(context.Background(), "teacher-1", dto.CreateSlotAssignmentRequest{SlotID: "slot-a", DayOfWeek: models.Monday})
	require.NoError(t, err)
	assert.Equal(t, models.Monday, assignment.DayOfWeek)
	assert.Len(t, assignRepo.created, 1)
}

func TestSlotAssignmentServiceAssignDayTaken(t *testing.T) {
	slotRepo := &stubSlotRepo{slots: map[string]*models.Slot{"slot-b": bandSlot("slot-b", models.SlotTypeB)}}
	assignRepo := &stubSlotAssignmentRepo{
		items: map[string]*models.TeacherSlotAssignment{
			"sa-1": {ID: "sa-1", TeacherID: "teacher-1", SlotID: "slot-a", DayOfWeek: models.Monday},
		},
	}
	svc := newSlotFixture(slotRepo, assignRepo, 10)

	_, err := svc.Assign(context.Background(), "teacher-1", dto.CreateSlotAssignmentRequest{SlotID: "slot-b", DayOfWeek: models.Monday})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrScheduleConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "one slot per teacher per day")
}

func TestSlotAssignmentServiceAssignDayCap(t *testing.T) {
	items := map[string]*models.TeacherSlotAssignment{}
	for day := models.Monday; day <= models.Friday; day++ {
		id := string(rune('a' + day))
		items["sa-"+id] = &models.TeacherSlotAssignment{ID: "sa-" + id, TeacherID: "teacher-1", SlotID: "slot-a", DayOfWeek: day}
	}
	slotRepo := &stubSlotRepo{slots: map[string]*models.Slot{"slot-a": bandSlot("slot-a", models.SlotTypeA)}}
	assignRepo := &stubSlotAssignmentRepo{items: items}
	svc := newSlotFixture(slotRepo, assignRepo, 10)

	_, err := svc.Assign(context.Background(), "teacher-1", dto.CreateSlotAssignmentRequest{SlotID: "slot-a", DayOfWeek: models.Saturday})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDayCapExceeded.Code, appErrors.FromError(err).Code)
}

func TestSlotAssignmentServiceAssignOverlap(t *testing.T) {
	// A custom 10:00-11:00 slot against an existing 09:00-10:30 booking on the
	// same Monday. The same-day exclusivity stub is bypassed by leaving items
	// empty; only the detail listing reports the sibling row.
	slotRepo := &stubSlotRepo{slots: map[string]*models.Slot{
		"slot-x": {ID: "slot-x", Name: "Custom X", StartTime: "10:00", EndTime: "11:00"},
	}}
	assignRepo := &stubSlotAssignmentRepo{
		sameDay: []models.TeacherSlotAssignmentDetail{
			{
				TeacherSlotAssignment: models.TeacherSlotAssignment{ID: "sa-1", TeacherID: "teacher-1", DayOfWeek: models.Monday},
				SlotName:              "Morning Lab",
				StartTime:             "09:00",
				EndTime:               "10:30",
			},
		},
	}
	svc := newSlotFixture(slotRepo, assignRepo, 10)

	_, err := svc.Assign(context.Background(), "teacher-1", dto.CreateSlotAssignmentRequest{SlotID: "slot-x", DayOfWeek: models.Monday})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrScheduleConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "Morning Lab")
}

func TestSlotAssignmentServiceAssignQuotaExceeded(t *testing.T) {
	// Department of 10: floor(10*0.33+0.5)+1 = 4 seats. Four occupants already
	// hold the (Monday, A) bucket, so the fifth teacher is rejected.
	slotRepo := &stubSlotRepo{slots: map[string]*models.Slot{"slot-a": bandSlot("slot-a", models.SlotTypeA)}}
	assignRepo := &stubSlotAssignmentRepo{occupants: 4}
	svc := newSlotFixture(slotRepo, assignRepo, 10)

	_, err := svc.Assign(context.Background(), "teacher-1", dto.CreateSlotAssignmentRequest{SlotID: "slot-a", DayOfWeek: models.Monday})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrQuotaExceeded.Code, appErrors.FromError(err).Code)
}

func TestSlotAssignmentServiceReassignWithinSameDay(t *testing.T) {
	slotRepo := &stubSlotRepo{slots: map[string]*models.Slot{"slot-b": bandSlot("slot-b", models.SlotTypeB)}}
	assignRepo := &stubSlotAssignmentRepo{
		items: map[string]*models.TeacherSlotAssignment{
			"sa-1": {ID: "sa-1", TeacherID: "teacher-1", SlotID: "slot-a", DayOfWeek: models.Monday},
		},
	}
	svc := newSlotFixture(slotRepo, assignRepo, 10)

	updated, err := svc.Reassign(context.Background(), "teacher-1", "sa-1", dto.CreateSlotAssignmentRequest{SlotID: "slot-b", DayOfWeek: models.Monday})
	require.NoError(t, err)
	assert.Equal(t, "slot-b", updated.SlotID)
	assert.Len(t, assignRepo.updated, 1)
}

func TestSlotAssignmentServiceBatchMixed(t *testing.T) {
	slotRepo := &stubSlotRepo{slots: map[string]*models.Slot{"slot-a": bandSlot("slot-a", models.SlotTypeA)}}
	assignRepo := &stubSlotAssignmentRepo{}
	svc := newSlotFixture(slotRepo, assignRepo, 10)

	result, err := svc.ApplyBatch(context.Background(), "teacher-1", dto.SlotBatchRequest{
		Operations: []dto.SlotBatchOperation{
			{Action: dto.BatchActionCreate, SlotID: "slot-a", DayOfWeek: models.Monday},
			{Action: dto.BatchActionCreate, SlotID: "slot-a", DayOfWeek: models.Monday}, // same day again
			{Action: dto.BatchActionCreate, SlotID: "slot-a", DayOfWeek: models.Tuesday},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.BatchStatusMixed, result.Status)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 3, result.TotalOperations)
	assert.False(t, result.Results[1].Success)
	assert.Equal(t, appErrors.ErrScheduleConflict.Code, result.Results[1].ErrorCode)
}

func TestSlotAssignmentServiceBatchAllSucceeded(t *testing.T) {
	slotRepo := &stubSlotRepo{slots: map[string]*models.Slot{"slot-a": bandSlot("slot-a", models.SlotTypeA)}}
	assignRepo := &stubSlotAssignmentRepo{}
	svc := newSlotFixture(slotRepo, assignRepo, 10)

	result, err := svc.ApplyBatch(context.Background(), "teacher-1", dto.SlotBatchRequest{
		Operations: []dto.SlotBatchOperation{
			{Action: dto.BatchActionCreate, SlotID: "slot-a", DayOfWeek: models.Monday},
			{Action: dto.BatchActionCreate, SlotID: "slot-a", DayOfWeek: models.Wednesday},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.BatchStatusAllSucceeded, result.Status)
	assert.Len(t, assignRepo.created, 2)
}

func TestSlotAssignmentServiceBatchAllFailed(t *testing.T) {
	slotRepo := &stubSlotRepo{slots: map[string]*models.Slot{"slot-a": bandSlot("slot-a", models.SlotTypeA)}}
	assignRepo := &stubSlotAssignmentRepo{}
	svc := newSlotFixture(slotRepo, assignRepo, 10)

	result, err := svc.ApplyBatch(context.Background(), "teacher-1", dto.SlotBatchRequest{
		Operations: []dto.SlotBatchOperation{
			{Action: dto.BatchActionUpdate, DayOfWeek: models.Monday},  // missing assignment_id
			{Action: dto.BatchActionCreate, SlotID: "missing", DayOfWeek: models.Tuesday},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.BatchStatusAllFailed, result.Status)
	assert.Equal(t, 0, result.SuccessCount)
}
