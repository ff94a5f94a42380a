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

type teacherDirectory interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	ListAvailability(ctx context.Context, teacherID string, dayOfWeek int) ([]models.TeacherAvailability, error)
	CreateAvailability(ctx context.Context, window *models.TeacherAvailability) error
}

// TeacherService serves teacher reference reads and the availability windows
// that limited-availability teachers declare.
type TeacherService struct {
	teachers  teacherDirectory
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs the service.
func NewTeacherService(teachers teacherDirectory, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{teachers: teachers, validator: validate, logger: logger}
}

// Get returns one teacher.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return teacher, nil
}

// ListAvailability returns the teacher's declared windows.
func (s *TeacherService) ListAvailability(ctx context.Context, teacherID string) ([]models.TeacherAvailability, error) {
	if _, err := s.Get(ctx, teacherID); err != nil {
		return nil, err
	}
	windows, err := s.teachers.ListAvailability(ctx, teacherID, -1)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}
	return windows, nil
}

// DeclareAvailability records a window for a limited-availability teacher.
// Start must precede end; duplicate identical windows are rejected by the
// store's unique constraint.
func (s *TeacherService) DeclareAvailability(ctx context.Context, teacherID string, req dto.CreateAvailabilityRequest) (*models.TeacherAvailability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}

	teacher, err := s.Get(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	start, err := models.MinutesOfDay(req.StartTime)
	if err != nil {
		return nil, appErrors.Clonef(appErrors.ErrValidation, "invalid start time %q", req.StartTime)
	}
	end, err := models.MinutesOfDay(req.EndTime)
	if err != nil {
		return nil, appErrors.Clonef(appErrors.ErrValidation, "invalid end time %q", req.EndTime)
	}
	if start >= end {
		return nil, appErrors.Clone(appErrors.ErrValidation, "availability end time must be after start time")
	}

	window := &models.TeacherAvailability{
		TeacherID: teacher.ID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.teachers.CreateAvailability(ctx, window); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create availability")
	}
	return window, nil
}
