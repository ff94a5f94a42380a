package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-ops/uniadmin-api/internal/dto"
	"github.com/campus-ops/uniadmin-api/internal/models"
	"github.com/campus-ops/uniadmin-api/internal/service"
)

type teacherStoreMock struct {
	teacher *models.Teacher
}

func (m *teacherStoreMock) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	if m.teacher != nil && m.teacher.ID == id {
		cp := *m.teacher
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *teacherStoreMock) LockForUpdate(ctx context.Context, id string) error {
	if m.teacher != nil && m.teacher.ID == id {
		return nil
	}
	return sql.ErrNoRows
}

func (m *teacherStoreMock) CountAvailability(ctx context.Context, teacherID string) (int, error) {
	return 0, nil
}

func (m *teacherStoreMock) CountByDepartment(ctx context.Context, departmentID string) (int, error) {
	return 10, nil
}

type slotStoreMock struct {
	slot *models.Slot
}

func (m *slotStoreMock) FindByID(ctx context.Context, id string) (*models.Slot, error) {
	if m.slot != nil && m.slot.ID == id {
		cp := *m.slot
		cp.ApplyTypeDefaults()
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type slotAssignmentStoreMock struct {
	created []*models.TeacherSlotAssignment
}

func (m *slotAssignmentStoreMock) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherSlotAssignmentDetail, error) {
	return nil, nil
}

func (m *slotAssignmentStoreMock) ListByTeacherDay(ctx context.Context, teacherID string, dayOfWeek int, excludeID string) ([]models.TeacherSlotAssignmentDetail, error) {
	return nil, nil
}

func (m *slotAssignmentStoreMock) FindByID(ctx context.Context, id string) (*models.TeacherSlotAssignment, error) {
	return nil, sql.ErrNoRows
}

func (m *slotAssignmentStoreMock) HasDay(ctx context.Context, teacherID string, dayOfWeek int, excludeID string) (bool, error) {
	for _, item := range m.created {
		if item.TeacherID == teacherID && item.DayOfWeek == dayOfWeek {
			return true, nil
		}
	}
	return false, nil
}

func (m *slotAssignmentStoreMock) CountDistinctDays(ctx context.Context, teacherID, excludeID string) (int, error) {
	days := map[int]struct{}{}
	for _, item := range m.created {
		days[item.DayOfWeek] = struct{}{}
	}
	return len(days), nil
}

func (m *slotAssignmentStoreMock) CountDeptOccupants(ctx context.Context, departmentID string, dayOfWeek int, slotType *string, excludeTeacherID string) (int, error) {
	return 0, nil
}

func (m *slotAssignmentStoreMock) Create(ctx context.Context, assignment *models.TeacherSlotAssignment) error {
	assignment.ID = "sa-new"
	m.created = append(m.created, assignment)
	return nil
}

func (m *slotAssignmentStoreMock) Update(ctx context.Context, assignment *models.TeacherSlotAssignment) error {
	return nil
}

func (m *slotAssignmentStoreMock) Delete(ctx context.Context, teacherID, assignmentID string) error {
	return sql.ErrNoRows
}

type txRunnerMock struct{}

func (txRunnerMock) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newBatchFixture() *SlotAssignmentHandler {
	slotType := models.SlotTypeA
	teachers := &teacherStoreMock{teacher: &models.Teacher{ID: "teacher-1", FullName: "Dr. Rao", DepartmentID: "cse", WeeklyHours: 21}}
	slots := &slotStoreMock{slot: &models.Slot{ID: "slot-a", Name: "Slot A", Type: &slotType}}
	store := &slotAssignmentStoreMock{}
	quota := service.NewQuotaTracker(teachers, store, 0.33)
	svc := service.NewSlotAssignmentService(teachers, slots, store, quota, txRunnerMock{}, 5, validator.New(), zap.NewNop())
	return NewSlotAssignmentHandler(svc, nil)
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestSlotAssignmentHandlerBatchMixedStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newBatchFixture()

	payload, _ := json.Marshal(dto.SlotBatchRequest{Operations: []dto.SlotBatchOperation{
		{Action: dto.BatchActionCreate, SlotID: "slot-a", DayOfWeek: models.Monday},
		{Action: dto.BatchActionCreate, SlotID: "slot-a", DayOfWeek: models.Monday},
	}})
	c, w := newGinContext(http.MethodPost, "/teachers/teacher-1/slots/batch", payload)
	c.Params = gin.Params{{Key: "id", Value: "teacher-1"}}

	h.Batch(c)
	require.Equal(t, http.StatusMultiStatus, w.Code)

	var envelope struct {
		Data dto.SlotBatchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, dto.BatchStatusMixed, envelope.Data.Status)
	require.Equal(t, 1, envelope.Data.SuccessCount)
}

func TestSlotAssignmentHandlerBatchAllSucceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newBatchFixture()

	payload, _ := json.Marshal(dto.SlotBatchRequest{Operations: []dto.SlotBatchOperation{
		{Action: dto.BatchActionCreate, SlotID: "slot-a", DayOfWeek: models.Monday},
		{Action: dto.BatchActionCreate, SlotID: "slot-a", DayOfWeek: models.Tuesday},
	}})
	c, w := newGinContext(http.MethodPost, "/teachers/teacher-1/slots/batch", payload)
	c.Params = gin.Params{{Key: "id", Value: "teacher-1"}}

	h.Batch(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestSlotAssignmentHandlerBatchAllFailed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newBatchFixture()

	payload, _ := json.Marshal(dto.SlotBatchRequest{Operations: []dto.SlotBatchOperation{
		{Action: dto.BatchActionDelete, AssignmentID: "missing", DayOfWeek: models.Monday},
	}})
	c, w := newGinContext(http.MethodPost, "/teachers/teacher-1/slots/batch", payload)
	c.Params = gin.Params{{Key: "id", Value: "teacher-1"}}

	h.Batch(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
