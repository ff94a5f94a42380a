package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campus-ops/uniadmin-api/internal/models"
)

// AssignmentRepository persists teacher-course bindings.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListByTeacher returns the teacher's assignments enriched with course data.
// The weekly_hours column reproduces the course-type hour rule in SQL so the
// workload calculator can sum it without a second round trip.
func (r *AssignmentRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherCourseDetail, error) {
	const query = `
SELECT tc.id, tc.teacher_id, tc.course_id, tc.academic_year, tc.semester, tc.student_count,
       tc.requires_special_scheduling, tc.created_at, tc.updated_at,
       c.code AS course_code, c.name AS course_name, c.course_type,
       CASE c.course_type
           WHEN 'T' THEN c.lecture_hours + c.tutorial_hours
           WHEN 'L' THEN c.practical_hours
           WHEN 'LoT' THEN c.lecture_hours + c.tutorial_hours + c.practical_hours
           ELSE 0
       END AS weekly_hours,
       t.full_name AS teacher_name
FROM teacher_courses tc
JOIN courses c ON c.id = tc.course_id
JOIN teachers t ON t.id = tc.teacher_id
WHERE tc.teacher_id = $1
ORDER BY tc.academic_year DESC, tc.semester DESC, c.code ASC`
	var assignments []models.TeacherCourseDetail
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &assignments, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher courses: %w", err)
	}
	return assignments, nil
}

// FindByID loads one assignment.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.TeacherCourse, error) {
	const query = `
SELECT id, teacher_id, course_id, academic_year, semester, student_count,
       requires_special_scheduling, created_at, updated_at
FROM teacher_courses WHERE id = $1`
	var assignment models.TeacherCourse
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ExistsPair checks pair-only uniqueness of (teacher, course), optionally
// excluding the row under update.
func (r *AssignmentRepository) ExistsPair(ctx context.Context, teacherID, courseID, excludeID string) (bool, error) {
	query := `SELECT 1 FROM teacher_courses WHERE teacher_id = $1 AND course_id = $2`
	args := []interface{}{teacherID, courseID}
	if excludeID != "" {
		query += ` AND id <> $3`
		args = append(args, excludeID)
	}
	query += ` LIMIT 1`

	var exists int
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &exists, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher course pair: %w", err)
	}
	return true, nil
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.TeacherCourse) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = now
	}
	assignment.UpdatedAt = now
	const query = `INSERT INTO teacher_courses
		(id, teacher_id, course_id, academic_year, semester, student_count, requires_special_scheduling, created_at, updated_at)
		VALUES (:id, :teacher_id, :course_id, :academic_year, :semester, :student_count, :requires_special_scheduling, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, assignment); err != nil {
		return fmt.Errorf("create teacher course: %w", err)
	}
	return nil
}

// Update rewrites a validated assignment.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.TeacherCourse) error {
	assignment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teacher_courses SET
		course_id = :course_id, academic_year = :academic_year, semester = :semester,
		student_count = :student_count, requires_special_scheduling = :requires_special_scheduling,
		updated_at = :updated_at
		WHERE id = :id AND teacher_id = :teacher_id`
	result, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, assignment)
	if err != nil {
		return fmt.Errorf("update teacher course: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated course rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an assignment verifying ownership.
func (r *AssignmentRepository) Delete(ctx context.Context, teacherID, assignmentID string) error {
	const query = `DELETE FROM teacher_courses WHERE id = $1 AND teacher_id = $2`
	result, err := ext(ctx, r.db).ExecContext(ctx, query, assignmentID, teacherID)
	if err != nil {
		return fmt.Errorf("delete teacher course: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted course rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
