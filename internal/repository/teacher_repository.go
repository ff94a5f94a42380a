package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campus-ops/uniadmin-api/internal/models"
)

// TeacherRepository reads teacher reference data and owns the availability
// windows feeding the special-schedule checks.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs the repository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByID loads one teacher with its department name resolved.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	const query = `
SELECT t.id, t.user_id, t.department_id, d.name AS department_name, t.staff_code,
       t.full_name, t.role, t.specialisation, t.weekly_hours, t.availability_type,
       t.is_industry_professional, t.resignation_status, t.created_at, t.updated_at
FROM teachers t
JOIN departments d ON d.id = t.department_id
WHERE t.id = $1`
	var teacher models.Teacher
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// LockForUpdate takes a row lock on the teacher inside the enclosing
// transaction, serializing concurrent assignment requests for the same
// teacher. Returns sql.ErrNoRows when the teacher does not exist.
func (r *TeacherRepository) LockForUpdate(ctx context.Context, id string) error {
	const query = `SELECT id FROM teachers WHERE id = $1 FOR UPDATE`
	var locked string
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &locked, query, id); err != nil {
		return err
	}
	return nil
}

// CountByDepartment returns the active teacher headcount of a department,
// the denominator of the slot occupancy quota.
func (r *TeacherRepository) CountByDepartment(ctx context.Context, departmentID string) (int, error) {
	const query = `SELECT COUNT(*) FROM teachers WHERE department_id = $1 AND resignation_status <> 'resigned'`
	var count int
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &count, query, departmentID); err != nil {
		return 0, fmt.Errorf("count department teachers: %w", err)
	}
	return count, nil
}

// ListAvailability returns the teacher's declared windows, optionally
// narrowed to one weekday (pass a negative day for all).
func (r *TeacherRepository) ListAvailability(ctx context.Context, teacherID string, dayOfWeek int) ([]models.TeacherAvailability, error) {
	query := `
SELECT id, teacher_id, day_of_week, start_time, end_time, created_at
FROM teacher_availability
WHERE teacher_id = $1`
	args := []interface{}{teacherID}
	if dayOfWeek >= 0 {
		query += ` AND day_of_week = $2`
		args = append(args, dayOfWeek)
	}
	query += ` ORDER BY day_of_week ASC, start_time ASC`

	var windows []models.TeacherAvailability
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &windows, query, args...); err != nil {
		return nil, fmt.Errorf("list teacher availability: %w", err)
	}
	return windows, nil
}

// CountAvailability reports how many windows the teacher has declared.
func (r *TeacherRepository) CountAvailability(ctx context.Context, teacherID string) (int, error) {
	const query = `SELECT COUNT(*) FROM teacher_availability WHERE teacher_id = $1`
	var count int
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &count, query, teacherID); err != nil {
		return 0, fmt.Errorf("count teacher availability: %w", err)
	}
	return count, nil
}

// CreateAvailability inserts a declared window. The unique constraint on
// (teacher, day, start, end) rejects duplicate identical windows.
func (r *TeacherRepository) CreateAvailability(ctx context.Context, window *models.TeacherAvailability) error {
	if window.ID == "" {
		window.ID = uuid.NewString()
	}
	const query = `INSERT INTO teacher_availability (id, teacher_id, day_of_week, start_time, end_time)
		VALUES (:id, :teacher_id, :day_of_week, :start_time, :end_time)`
	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, window); err != nil {
		return fmt.Errorf("create teacher availability: %w", err)
	}
	return nil
}
