package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-ops/uniadmin-api/internal/dto"
	"github.com/campus-ops/uniadmin-api/internal/models"
	appErrors "github.com/campus-ops/uniadmin-api/pkg/errors"
)

func TestTeacherServiceDeclareAvailability(t *testing.T) {
	teacherRepo := &stubTeacherRepo{teachers: map[string]*models.Teacher{
		"teacher-1": {ID: "teacher-1", Role: models.RoleIndustryProf, AvailabilityType: models.AvailabilityLimited},
	}}
	svc := NewTeacherService(teacherRepo, validator.New(), zap.NewNop())

	window, err := svc.DeclareAvailability(context.Background(), "teacher-1", dto.CreateAvailabilityRequest{
		DayOfWeek: models.Monday,
		StartTime: "09:00",
		EndTime:   "13:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "teacher-1", window.TeacherID)
	assert.Len(t, teacherRepo.windows, 1)
}

func TestTeacherServiceDeclareAvailabilityInvertedWindow(t *testing.T) {
	teacherRepo := &stubTeacherRepo{teachers: map[string]*models.Teacher{
		"teacher-1": {ID: "teacher-1"},
	}}
	svc := NewTeacherService(teacherRepo, validator.New(), zap.NewNop())

	_, err := svc.DeclareAvailability(context.Background(), "teacher-1", dto.CreateAvailabilityRequest{
		DayOfWeek: models.Monday,
		StartTime: "13:00",
		EndTime:   "09:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, teacherRepo.windows)
}

func TestTeacherServiceGetNotFound(t *testing.T) {
	svc := NewTeacherService(&stubTeacherRepo{teachers: map[string]*models.Teacher{}}, validator.New(), zap.NewNop())

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
