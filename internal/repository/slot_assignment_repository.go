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

// SlotAssignmentRepository persists teacher-slot-day bindings and serves the
// read aggregations behind the slot validation rules. The occupancy and
// day-count queries run uncached inside the caller's transaction on every
// validation.
type SlotAssignmentRepository struct {
	db *sqlx.DB
}

// NewSlotAssignmentRepository constructs the repository.
func NewSlotAssignmentRepository(db *sqlx.DB) *SlotAssignmentRepository {
	return &SlotAssignmentRepository{db: db}
}

const slotAssignmentColumns = `
SELECT tsa.id, tsa.teacher_id, tsa.slot_id, tsa.day_of_week, tsa.created_at,
       s.name AS slot_name, s.start_time, s.end_time, s.slot_type
FROM teacher_slot_assignments tsa
JOIN slots s ON s.id = tsa.slot_id`

// ListByTeacher returns all slot assignments of a teacher with slot windows.
func (r *SlotAssignmentRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherSlotAssignmentDetail, error) {
	query := slotAssignmentColumns + `
WHERE tsa.teacher_id = $1
ORDER BY tsa.day_of_week ASC, s.start_time ASC`
	var assignments []models.TeacherSlotAssignmentDetail
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &assignments, query, teacherID); err != nil {
		return nil, fmt.Errorf("list slot assignments: %w", err)
	}
	for i := range assignments {
		assignments[i].DayName = models.DayName(assignments[i].DayOfWeek)
	}
	return assignments, nil
}

// ListByTeacherDay returns the teacher's assignments on one weekday,
// optionally excluding the row under update.
func (r *SlotAssignmentRepository) ListByTeacherDay(ctx context.Context, teacherID string, dayOfWeek int, excludeID string) ([]models.TeacherSlotAssignmentDetail, error) {
	query := slotAssignmentColumns + `
WHERE tsa.teacher_id = $1 AND tsa.day_of_week = $2`
	args := []interface{}{teacherID, dayOfWeek}
	if excludeID != "" {
		query += ` AND tsa.id <> $3`
		args = append(args, excludeID)
	}

	var assignments []models.TeacherSlotAssignmentDetail
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &assignments, query, args...); err != nil {
		return nil, fmt.Errorf("list slot assignments by day: %w", err)
	}
	return assignments, nil
}

// FindByID loads one slot assignment.
func (r *SlotAssignmentRepository) FindByID(ctx context.Context, id string) (*models.TeacherSlotAssignment, error) {
	const query = `SELECT id, teacher_id, slot_id, day_of_week, created_at FROM teacher_slot_assignments WHERE id = $1`
	var assignment models.TeacherSlotAssignment
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CountDistinctDays returns how many distinct weekdays the teacher already
// teaches, optionally excluding the row under update.
func (r *SlotAssignmentRepository) CountDistinctDays(ctx context.Context, teacherID, excludeID string) (int, error) {
	query := `SELECT COUNT(DISTINCT day_of_week) FROM teacher_slot_assignments WHERE teacher_id = $1`
	args := []interface{}{teacherID}
	if excludeID != "" {
		query += ` AND id <> $2`
		args = append(args, excludeID)
	}

	var count int
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &count, query, args...); err != nil {
		return 0, fmt.Errorf("count distinct teaching days: %w", err)
	}
	return count, nil
}

// HasDay reports whether the teacher already teaches on the given weekday,
// excluding the row under update.
func (r *SlotAssignmentRepository) HasDay(ctx context.Context, teacherID string, dayOfWeek int, excludeID string) (bool, error) {
	query := `SELECT 1 FROM teacher_slot_assignments WHERE teacher_id = $1 AND day_of_week = $2`
	args := []interface{}{teacherID, dayOfWeek}
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
		return false, fmt.Errorf("check teaching day: %w", err)
	}
	return true, nil
}

// CountDeptOccupants counts distinct teachers of a department already holding
// a slot of the given type on the given weekday, excluding one teacher.
// Untyped slots form their own bucket.
func (r *SlotAssignmentRepository) CountDeptOccupants(ctx context.Context, departmentID string, dayOfWeek int, slotType *string, excludeTeacherID string) (int, error) {
	query := `
SELECT COUNT(DISTINCT tsa.teacher_id)
FROM teacher_slot_assignments tsa
JOIN teachers t ON t.id = tsa.teacher_id
JOIN slots s ON s.id = tsa.slot_id
WHERE t.department_id = $1 AND tsa.day_of_week = $2 AND tsa.teacher_id <> $3`
	args := []interface{}{departmentID, dayOfWeek, excludeTeacherID}
	if slotType != nil {
		query += ` AND s.slot_type = $4`
		args = append(args, *slotType)
	} else {
		query += ` AND s.slot_type IS NULL`
	}

	var count int
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &count, query, args...); err != nil {
		return 0, fmt.Errorf("count department slot occupants: %w", err)
	}
	return count, nil
}

// Create inserts a new slot assignment.
func (r *SlotAssignmentRepository) Create(ctx context.Context, assignment *models.TeacherSlotAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO teacher_slot_assignments (id, teacher_id, slot_id, day_of_week, created_at)
		VALUES (:id, :teacher_id, :slot_id, :day_of_week, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, assignment); err != nil {
		return fmt.Errorf("create slot assignment: %w", err)
	}
	return nil
}

// Update rewrites the slot/day of an existing assignment.
func (r *SlotAssignmentRepository) Update(ctx context.Context, assignment *models.TeacherSlotAssignment) error {
	const query = `UPDATE teacher_slot_assignments SET slot_id = :slot_id, day_of_week = :day_of_week
		WHERE id = :id AND teacher_id = :teacher_id`
	result, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, assignment)
	if err != nil {
		return fmt.Errorf("update slot assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated slot rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an assignment verifying ownership.
func (r *SlotAssignmentRepository) Delete(ctx context.Context, teacherID, assignmentID string) error {
	const query = `DELETE FROM teacher_slot_assignments WHERE id = $1 AND teacher_id = $2`
	result, err := ext(ctx, r.db).ExecContext(ctx, query, assignmentID, teacherID)
	if err != nil {
		return fmt.Errorf("delete slot assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted slot rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
