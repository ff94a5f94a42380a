package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-ops/uniadmin-api/internal/dto"
	"github.com/campus-ops/uniadmin-api/internal/models"
	appErrors "github.com/campus-ops/uniadmin-api/pkg/errors"
)

type slotReader interface {
	FindByID(ctx context.Context, id string) (*models.Slot, error)
}

type slotAssignmentStore interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherSlotAssignmentDetail, error)
	ListByTeacherDay(ctx context.Context, teacherID string, dayOfWeek int, excludeID string) ([]models.TeacherSlotAssignmentDetail, error)
	FindByID(ctx context.Context, id string) (*models.TeacherSlotAssignment, error)
	HasDay(ctx context.Context, teacherID string, dayOfWeek int, excludeID string) (bool, error)
	CountDistinctDays(ctx context.Context, teacherID, excludeID string) (int, error)
	Create(ctx context.Context, assignment *models.TeacherSlotAssignment) error
	Update(ctx context.Context, assignment *models.TeacherSlotAssignment) error
	Delete(ctx context.Context, teacherID, assignmentID string) error
}

// SlotAssignmentService validates and persists teacher-slot-day bindings:
// same-day exclusivity, the five-day weekly cap, time-overlap detection and
// the department distribution quota. Every operation, batch items included,
// runs in its own serializable transaction.
type SlotAssignmentService struct {
	teachers    teacherRegistry
	slots       slotReader
	assignments slotAssignmentStore
	quota       *QuotaTracker
	tx          txRunner
	maxWeekDays int
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewSlotAssignmentService creates a service instance. maxWeekDays <= 0
// falls back to the five-day cap.
func NewSlotAssignmentService(
	teachers teacherRegistry,
	slots slotReader,
	assignments slotAssignmentStore,
	quota *QuotaTracker,
	tx txRunner,
	maxWeekDays int,
	validate *validator.Validate,
	logger *zap.Logger,
) *SlotAssignmentService {
	if maxWeekDays <= 0 {
		maxWeekDays = 5
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotAssignmentService{
		teachers:    teachers,
		slots:       slots,
		assignments: assignments,
		quota:       quota,
		tx:          tx,
		maxWeekDays: maxWeekDays,
		validator:   validate,
		logger:      logger,
	}
}

// ListByTeacher returns the teacher's slot assignments.
func (s *SlotAssignmentService) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherSlotAssignmentDetail, error) {
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	assignments, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list slot assignments")
	}
	return assignments, nil
}

// Assign validates and creates a slot assignment.
func (s *SlotAssignmentService) Assign(ctx context.Context, teacherID string, req dto.CreateSlotAssignmentRequest) (*models.TeacherSlotAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot assignment payload")
	}

	var created *models.TeacherSlotAssignment
	err := s.tx.RunSerializable(ctx, func(ctx context.Context) error {
		teacher, err := s.lockAndLoadTeacher(ctx, teacherID)
		if err != nil {
			return err
		}
		slot, err := s.loadSlot(ctx, req.SlotID)
		if err != nil {
			return err
		}
		if err := s.runChecks(ctx, teacher, slot, req.DayOfWeek, ""); err != nil {
			return err
		}

		assignment := &models.TeacherSlotAssignment{
			TeacherID: teacherID,
			SlotID:    slot.ID,
			DayOfWeek: req.DayOfWeek,
		}
		if err := s.assignments.Create(ctx, assignment); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create slot assignment")
		}
		created = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("slot assigned",
		zap.String("teacher_id", created.TeacherID),
		zap.String("slot_id", created.SlotID),
		zap.Int("day_of_week", created.DayOfWeek))
	return created, nil
}

// Reassign moves an existing assignment to a new slot or day, revalidating
// everything with the row under update excluded.
func (s *SlotAssignmentService) Reassign(ctx context.Context, teacherID, assignmentID string, req dto.CreateSlotAssignmentRequest) (*models.TeacherSlotAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot assignment payload")
	}

	var updated *models.TeacherSlotAssignment
	err := s.tx.RunSerializable(ctx, func(ctx context.Context) error {
		teacher, err := s.lockAndLoadTeacher(ctx, teacherID)
		if err != nil {
			return err
		}

		existing, err := s.assignments.FindByID(ctx, assignmentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "slot assignment not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot assignment")
		}
		if existing.TeacherID != teacherID {
			return appErrors.Clone(appErrors.ErrNotFound, "slot assignment not found")
		}

		slot, err := s.loadSlot(ctx, req.SlotID)
		if err != nil {
			return err
		}
		if err := s.runChecks(ctx, teacher, slot, req.DayOfWeek, assignmentID); err != nil {
			return err
		}

		existing.SlotID = slot.ID
		existing.DayOfWeek = req.DayOfWeek
		if err := s.assignments.Update(ctx, existing); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update slot assignment")
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes a slot assignment.
func (s *SlotAssignmentService) Remove(ctx context.Context, teacherID, assignmentID string) error {
	return s.tx.RunSerializable(ctx, func(ctx context.Context) error {
		if _, err := s.lockAndLoadTeacher(ctx, teacherID); err != nil {
			return err
		}
		if err := s.assignments.Delete(ctx, teacherID, assignmentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "slot assignment not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete slot assignment")
		}
		return nil
	})
}

// ApplyBatch processes create/update/delete operations, each in its own
// transaction. A failed item never mutates state; earlier successes in the
// same batch stay committed. The result carries per-item outcomes, the
// success count and the tri-state overall status.
func (s *SlotAssignmentService) ApplyBatch(ctx context.Context, teacherID string, req dto.SlotBatchRequest) (*dto.SlotBatchResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid batch payload")
	}

	result := &dto.SlotBatchResult{TotalOperations: len(req.Operations)}
	for _, op := range req.Operations {
		item := dto.SlotBatchItemResult{
			Action:       op.Action,
			AssignmentID: op.AssignmentID,
			SlotID:       op.SlotID,
			DayOfWeek:    op.DayOfWeek,
		}

		err := s.applyOne(ctx, teacherID, op, &item)
		if err != nil {
			appErr := appErrors.FromError(err)
			item.Success = false
			item.Error = appErr.Message
			item.ErrorCode = appErr.Code
		} else {
			item.Success = true
			result.SuccessCount++
		}
		result.Results = append(result.Results, item)
	}

	result.Resolve()
	return result, nil
}

func (s *SlotAssignmentService) applyOne(ctx context.Context, teacherID string, op dto.SlotBatchOperation, item *dto.SlotBatchItemResult) error {
	switch op.Action {
	case dto.BatchActionCreate:
		created, err := s.Assign(ctx, teacherID, dto.CreateSlotAssignmentRequest{SlotID: op.SlotID, DayOfWeek: op.DayOfWeek})
		if err != nil {
			return err
		}
		item.AssignmentID = created.ID
		item.Message = fmt.Sprintf("slot assigned on %s", models.DayName(op.DayOfWeek))
		return nil
	case dto.BatchActionUpdate:
		if op.AssignmentID == "" {
			return appErrors.Clone(appErrors.ErrValidation, "update operation requires assignment_id")
		}
		if _, err := s.Reassign(ctx, teacherID, op.AssignmentID, dto.CreateSlotAssignmentRequest{SlotID: op.SlotID, DayOfWeek: op.DayOfWeek}); err != nil {
			return err
		}
		item.Message = fmt.Sprintf("slot assignment moved to %s", models.DayName(op.DayOfWeek))
		return nil
	case dto.BatchActionDelete:
		if op.AssignmentID == "" {
			return appErrors.Clone(appErrors.ErrValidation, "delete operation requires assignment_id")
		}
		if err := s.Remove(ctx, teacherID, op.AssignmentID); err != nil {
			return err
		}
		item.Message = "slot assignment removed"
		return nil
	default:
		return appErrors.Clonef(appErrors.ErrValidation, "unknown batch action %q", op.Action)
	}
}

// runChecks applies the four slot rules. All run on every call; any failure
// aborts the operation.
func (s *SlotAssignmentService) runChecks(ctx context.Context, teacher *models.Teacher, slot *models.Slot, dayOfWeek int, excludeID string) error {
	if !models.ValidDay(dayOfWeek) {
		return appErrors.Clonef(appErrors.ErrValidation, "invalid day of week %d", dayOfWeek)
	}

	taken, err := s.assignments.HasDay(ctx, teacher.ID, dayOfWeek, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teaching day")
	}
	if taken {
		return appErrors.Clonef(appErrors.ErrScheduleConflict,
			"%s already has a slot on %s: one slot per teacher per day",
			teacher.FullName, models.DayName(dayOfWeek))
	}

	days, err := s.assignments.CountDistinctDays(ctx, teacher.ID, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count teaching days")
	}
	// The day is new by construction here (HasDay above), so hitting the cap
	// means this assignment would open day maxWeekDays+1.
	if days >= s.maxWeekDays {
		return appErrors.Clonef(appErrors.ErrDayCapExceeded,
			"%s already teaches on %d days; the weekly limit is %d",
			teacher.FullName, days, s.maxWeekDays)
	}

	slotStart, slotEnd, err := slot.Window()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid slot window")
	}
	sameDay, err := s.assignments.ListByTeacherDay(ctx, teacher.ID, dayOfWeek, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list same-day assignments")
	}
	for _, other := range sameDay {
		otherStart, err := models.MinutesOfDay(other.StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := models.MinutesOfDay(other.EndTime)
		if err != nil {
			continue
		}
		if models.Overlaps(slotStart, slotEnd, otherStart, otherEnd) {
			return appErrors.Clonef(appErrors.ErrScheduleConflict,
				"slot %s-%s overlaps existing slot %s (%s-%s) on %s",
				slot.StartTime, slot.EndTime, other.SlotName, other.StartTime, other.EndTime,
				models.DayName(dayOfWeek))
		}
	}

	var slotType *string
	if label := slot.TypeLabel(); label != "" {
		slotType = &label
	}
	return s.quota.Check(ctx, teacher.DepartmentID, dayOfWeek, slotType, teacher.ID)
}

func (s *SlotAssignmentService) loadSlot(ctx context.Context, slotID string) (*models.Slot, error) {
	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot")
	}
	return slot, nil
}

func (s *SlotAssignmentService) lockAndLoadTeacher(ctx context.Context, teacherID string) (*models.Teacher, error) {
	if err := s.teachers.LockForUpdate(ctx, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to lock teacher")
	}
	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return teacher, nil
}
