package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-ops/uniadmin-api/internal/dto"
	"github.com/campus-ops/uniadmin-api/internal/models"
	appErrors "github.com/campus-ops/uniadmin-api/pkg/errors"
)

type availabilityReader interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	LockForUpdate(ctx context.Context, id string) error
	ListAvailability(ctx context.Context, teacherID string, dayOfWeek int) ([]models.TeacherAvailability, error)
}

type courseAssignmentReader interface {
	FindByID(ctx context.Context, id string) (*models.TeacherCourse, error)
}

type specialScheduleStore interface {
	FindByID(ctx context.Context, id string) (*models.IndustryProfessionalSchedule, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.IndustryProfessionalSchedule, error)
	Create(ctx context.Context, schedule *models.IndustryProfessionalSchedule) error
	UpdateStatus(ctx context.Context, id string, status models.SpecialScheduleStatus) error
}

// SpecialScheduleService validates and persists industry-professional
// schedules: the teacher must carry the industry capability and the slot must
// sit entirely inside one declared availability window for the day.
type SpecialScheduleService struct {
	teachers    availabilityReader
	assignments courseAssignmentReader
	slots       slotReader
	schedules   specialScheduleStore
	tx          txRunner
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewSpecialScheduleService creates a service instance.
func NewSpecialScheduleService(
	teachers availabilityReader,
	assignments courseAssignmentReader,
	slots slotReader,
	schedules specialScheduleStore,
	tx txRunner,
	validate *validator.Validate,
	logger *zap.Logger,
) *SpecialScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpecialScheduleService{
		teachers:    teachers,
		assignments: assignments,
		slots:       slots,
		schedules:   schedules,
		tx:          tx,
		validator:   validate,
		logger:      logger,
	}
}

// ListByTeacher returns all special schedules of a teacher.
func (s *SpecialScheduleService) ListByTeacher(ctx context.Context, teacherID string) ([]models.IndustryProfessionalSchedule, error) {
	schedules, err := s.schedules.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list special schedules")
	}
	return schedules, nil
}

// Create validates and persists a pending schedule.
func (s *SpecialScheduleService) Create(ctx context.Context, req dto.CreateSpecialScheduleRequest) (*models.IndustryProfessionalSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid special schedule payload")
	}

	var created *models.IndustryProfessionalSchedule
	err := s.tx.RunSerializable(ctx, func(ctx context.Context) error {
		assignment, err := s.assignments.FindByID(ctx, req.TeacherCourseID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "course assignment not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course assignment")
		}

		if err := s.teachers.LockForUpdate(ctx, assignment.TeacherID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to lock teacher")
		}
		teacher, err := s.teachers.FindByID(ctx, assignment.TeacherID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
		}

		if !teacher.IndustryProfessional() {
			return appErrors.Clone(appErrors.ErrRoleViolation,
				"special schedules are only available for industry professionals")
		}

		slot, err := s.slots.FindByID(ctx, req.SlotID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "slot not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot")
		}

		if err := s.checkAvailability(ctx, teacher, slot, req.DayOfWeek); err != nil {
			return err
		}

		schedule := &models.IndustryProfessionalSchedule{
			TeacherCourseID: assignment.ID,
			SlotID:          slot.ID,
			DayOfWeek:       req.DayOfWeek,
			Status:          models.SpecialSchedulePending,
		}
		if err := s.schedules.Create(ctx, schedule); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create special schedule")
		}
		created = schedule
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("special schedule requested",
		zap.String("teacher_course_id", created.TeacherCourseID),
		zap.Int("day_of_week", created.DayOfWeek))
	return created, nil
}

// UpdateStatus moves a schedule through the approval workflow.
func (s *SpecialScheduleService) UpdateStatus(ctx context.Context, id string, req dto.UpdateSpecialScheduleStatusRequest) (*models.IndustryProfessionalSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}

	if err := s.schedules.UpdateStatus(ctx, id, models.SpecialScheduleStatus(req.Status)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "special schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update special schedule")
	}

	schedule, err := s.schedules.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload special schedule")
	}
	return schedule, nil
}

// checkAvailability enforces that the slot window is fully contained in one
// of the teacher's declared windows for the day.
func (s *SpecialScheduleService) checkAvailability(ctx context.Context, teacher *models.Teacher, slot *models.Slot, dayOfWeek int) error {
	windows, err := s.teachers.ListAvailability(ctx, teacher.ID, dayOfWeek)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read availability")
	}
	if len(windows) == 0 {
		return appErrors.Clonef(appErrors.ErrAvailabilityViolated,
			"%s has no declared availability on %s", teacher.FullName, models.DayName(dayOfWeek))
	}

	slotStart, slotEnd, err := slot.Window()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid slot window")
	}
	for _, window := range windows {
		if window.Contains(slotStart, slotEnd) {
			return nil
		}
	}
	return appErrors.Clonef(appErrors.ErrAvailabilityViolated,
		"slot %s-%s falls outside declared availability on %s",
		slot.StartTime, slot.EndTime, models.DayName(dayOfWeek))
}
