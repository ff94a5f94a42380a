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

type teacherRegistry interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	LockForUpdate(ctx context.Context, id string) error
	CountAvailability(ctx context.Context, teacherID string) (int, error)
}

type courseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type assignmentStore interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherCourseDetail, error)
	FindByID(ctx context.Context, id string) (*models.TeacherCourse, error)
	ExistsPair(ctx context.Context, teacherID, courseID, excludeID string) (bool, error)
	Create(ctx context.Context, assignment *models.TeacherCourse) error
	Update(ctx context.Context, assignment *models.TeacherCourse) error
	Delete(ctx context.Context, teacherID, assignmentID string) error
}

type txRunner interface {
	RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AssignmentService validates and persists teacher-course bindings. Checks
// run in a fixed order and fail fast; validation and the write share one
// serializable transaction holding a lock on the teacher row.
type AssignmentService struct {
	teachers    teacherRegistry
	courses     courseReader
	assignments assignmentStore
	workload    *WorkloadService
	tx          txRunner
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAssignmentService creates a service instance.
func NewAssignmentService(
	teachers teacherRegistry,
	courses courseReader,
	assignments assignmentStore,
	workload *WorkloadService,
	tx txRunner,
	validate *validator.Validate,
	logger *zap.Logger,
) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		teachers:    teachers,
		courses:     courses,
		assignments: assignments,
		workload:    workload,
		tx:          tx,
		validator:   validate,
		logger:      logger,
	}
}

// ListByTeacher returns the teacher's course assignments.
func (s *AssignmentService) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherCourseDetail, error) {
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	assignments, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return assignments, nil
}

// Assign validates and creates a teacher-course binding.
func (s *AssignmentService) Assign(ctx context.Context, teacherID string, req dto.CreateTeacherCourseRequest) (*models.TeacherCourse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	var created *models.TeacherCourse
	err := s.tx.RunSerializable(ctx, func(ctx context.Context) error {
		teacher, err := s.lockAndLoadTeacher(ctx, teacherID)
		if err != nil {
			return err
		}

		course, err := s.courses.FindByID(ctx, req.CourseID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "course not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
		}

		if err := s.runChecks(ctx, teacher, course, ""); err != nil {
			return err
		}

		assignment := &models.TeacherCourse{
			TeacherID:                 teacherID,
			CourseID:                  course.ID,
			AcademicYear:              req.AcademicYear,
			Semester:                  req.Semester,
			StudentCount:              req.StudentCount,
			RequiresSpecialScheduling: teacher.RequiresSpecialScheduling(),
		}
		if err := s.assignments.Create(ctx, assignment); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
		}
		created = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("teacher course assigned",
		zap.String("teacher_id", created.TeacherID),
		zap.String("course_id", created.CourseID),
		zap.Bool("special_scheduling", created.RequiresSpecialScheduling))
	return created, nil
}

// Reassign revalidates an existing assignment against a new payload. The row
// under update is excluded from the duplicate and capacity checks so it is
// not double-counted.
func (s *AssignmentService) Reassign(ctx context.Context, teacherID, assignmentID string, req dto.UpdateTeacherCourseRequest) (*models.TeacherCourse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	var updated *models.TeacherCourse
	err := s.tx.RunSerializable(ctx, func(ctx context.Context) error {
		teacher, err := s.lockAndLoadTeacher(ctx, teacherID)
		if err != nil {
			return err
		}

		existing, err := s.assignments.FindByID(ctx, assignmentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
		}
		if existing.TeacherID != teacherID {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}

		course, err := s.courses.FindByID(ctx, req.CourseID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "course not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
		}

		if err := s.runChecks(ctx, teacher, course, assignmentID); err != nil {
			return err
		}

		existing.CourseID = course.ID
		existing.AcademicYear = req.AcademicYear
		existing.Semester = req.Semester
		existing.StudentCount = req.StudentCount
		existing.RequiresSpecialScheduling = teacher.RequiresSpecialScheduling()
		if err := s.assignments.Update(ctx, existing); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes an assignment.
func (s *AssignmentService) Remove(ctx context.Context, teacherID, assignmentID string) error {
	return s.tx.RunSerializable(ctx, func(ctx context.Context) error {
		if _, err := s.lockAndLoadTeacher(ctx, teacherID); err != nil {
			return err
		}
		if err := s.assignments.Delete(ctx, teacherID, assignmentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
		}
		return nil
	})
}

// runChecks applies the ordered rules shared by create and update. Each
// failure is a hard reject with no partial commit.
func (s *AssignmentService) runChecks(ctx context.Context, teacher *models.Teacher, course *models.Course, excludeID string) error {
	exists, err := s.assignments.ExistsPair(ctx, teacher.ID, course.ID, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignment uniqueness")
	}
	if exists {
		return appErrors.Clonef(appErrors.ErrDuplicateAssignment,
			"%s is already assigned to %s", teacher.FullName, course.Name)
	}

	if !s.departmentMatches(teacher, course) {
		return appErrors.Clonef(appErrors.ErrDepartmentMismatch,
			"teacher belongs to %s but the course is taught by %s",
			teacher.DepartmentName, course.TeachingDeptName)
	}

	committed, err := s.workload.CommittedHours(ctx, teacher.ID, excludeID)
	if err != nil {
		return err
	}
	incoming := course.WeeklyHours()
	budget := s.workload.Budget(teacher)
	if committed+incoming > budget {
		return appErrors.Clonef(appErrors.ErrCapacityExceeded,
			"assignment would exceed working hours: %d committed + %d incoming > %d budget",
			committed, incoming, budget)
	}

	if teacher.IndustryProfessional() && teacher.AvailabilityType == models.AvailabilityLimited {
		windows, err := s.teachers.CountAvailability(ctx, teacher.ID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read availability")
		}
		if windows == 0 {
			return appErrors.Clone(appErrors.ErrAvailabilityViolated,
				"industry professional has no declared availability windows")
		}
	}

	return nil
}

// departmentMatches enforces teacher.department == course.teaching_department
// unless the teacher carries the cross-department capability.
func (s *AssignmentService) departmentMatches(teacher *models.Teacher, course *models.Course) bool {
	if teacher.BypassesDepartmentConstraint() {
		return true
	}
	if course.TeachingDepartmentID == nil {
		return true
	}
	return teacher.DepartmentID == *course.TeachingDepartmentID
}

func (s *AssignmentService) lockAndLoadTeacher(ctx context.Context, teacherID string) (*models.Teacher, error) {
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
