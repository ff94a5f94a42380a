package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/campus-ops/uniadmin-api/internal/dto"
	"github.com/campus-ops/uniadmin-api/internal/models"
	appErrors "github.com/campus-ops/uniadmin-api/pkg/errors"
	"github.com/campus-ops/uniadmin-api/pkg/export"
)

type teacherReader interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

type assignmentLister interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherCourseDetail, error)
}

// WorkloadService computes committed weekly hours from existing course
// assignments. Totals are always re-derived from the assignment rows, never
// cached, so there is no second source of truth to drift.
type WorkloadService struct {
	teachers      teacherReader
	assignments   assignmentLister
	defaultBudget int
	logger        *zap.Logger
}

// NewWorkloadService constructs the service. defaultBudget <= 0 falls back to
// the institutional 21 weekly hours.
func NewWorkloadService(teachers teacherReader, assignments assignmentLister, defaultBudget int, logger *zap.Logger) *WorkloadService {
	if defaultBudget <= 0 {
		defaultBudget = 21
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkloadService{teachers: teachers, assignments: assignments, defaultBudget: defaultBudget, logger: logger}
}

// Budget returns the teacher's weekly hour budget, falling back to the
// configured default for teachers with no stored hours.
func (s *WorkloadService) Budget(teacher *models.Teacher) int {
	if teacher.WeeklyHours <= 0 {
		return s.defaultBudget
	}
	return teacher.WeeklyHours
}

// CommittedHours sums the weekly hour contribution of the teacher's
// assignments, optionally excluding one assignment (used while revalidating
// the row under update).
func (s *WorkloadService) CommittedHours(ctx context.Context, teacherID, excludeAssignmentID string) (int, error) {
	assignments, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	total := 0
	for _, a := range assignments {
		if excludeAssignmentID != "" && a.ID == excludeAssignmentID {
			continue
		}
		total += a.WeeklyHours
	}
	return total, nil
}

// Summary reports committed hours against the teacher's budget with the
// per-course breakdown.
func (s *WorkloadService) Summary(ctx context.Context, teacherID string) (*dto.WorkloadSummary, error) {
	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	assignments, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}

	committed := 0
	for _, a := range assignments {
		committed += a.WeeklyHours
	}

	budget := s.Budget(teacher)
	return &dto.WorkloadSummary{
		TeacherID:      teacher.ID,
		TeacherName:    teacher.FullName,
		DepartmentName: teacher.DepartmentName,
		WeeklyBudget:   budget,
		CommittedHours: committed,
		RemainingHours: budget - committed,
		Assignments:    assignments,
	}, nil
}

// ExportDataset flattens the workload summary into a tabular dataset for the
// CSV/PDF exporters.
func (s *WorkloadService) ExportDataset(ctx context.Context, teacherID string) (export.Dataset, string, error) {
	summary, err := s.Summary(ctx, teacherID)
	if err != nil {
		return export.Dataset{}, "", err
	}

	data := export.Dataset{
		Headers: []string{"Course Code", "Course Name", "Type", "Year", "Semester", "Weekly Hours"},
	}
	for _, a := range summary.Assignments {
		data.Rows = append(data.Rows, map[string]string{
			"Course Code":  a.CourseCode,
			"Course Name":  a.CourseName,
			"Type":         string(a.CourseType),
			"Year":         strconv.Itoa(a.AcademicYear),
			"Semester":     strconv.Itoa(a.Semester),
			"Weekly Hours": strconv.Itoa(a.WeeklyHours),
		})
	}
	data.Rows = append(data.Rows, map[string]string{
		"Course Code":  "TOTAL",
		"Weekly Hours": fmt.Sprintf("%d / %d", summary.CommittedHours, summary.WeeklyBudget),
	})

	title := fmt.Sprintf("Workload - %s (%s)", summary.TeacherName, summary.DepartmentName)
	return data, title, nil
}
