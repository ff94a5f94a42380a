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

// SpecialScheduleRepository persists industry-professional schedules.
type SpecialScheduleRepository struct {
	db *sqlx.DB
}

// NewSpecialScheduleRepository constructs the repository.
func NewSpecialScheduleRepository(db *sqlx.DB) *SpecialScheduleRepository {
	return &SpecialScheduleRepository{db: db}
}

// FindByID loads one schedule.
func (r *SpecialScheduleRepository) FindByID(ctx context.Context, id string) (*models.IndustryProfessionalSchedule, error) {
	const query = `
SELECT id, teacher_course_id, slot_id, day_of_week, status, created_at, updated_at
FROM industry_professional_schedules WHERE id = $1`
	var schedule models.IndustryProfessionalSchedule
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &schedule, query, id); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListByTeacher returns schedules for all course assignments of a teacher.
func (r *SpecialScheduleRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.IndustryProfessionalSchedule, error) {
	const query = `
SELECT ips.id, ips.teacher_course_id, ips.slot_id, ips.day_of_week, ips.status, ips.created_at, ips.updated_at
FROM industry_professional_schedules ips
JOIN teacher_courses tc ON tc.id = ips.teacher_course_id
WHERE tc.teacher_id = $1
ORDER BY ips.day_of_week ASC, ips.created_at ASC`
	var schedules []models.IndustryProfessionalSchedule
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &schedules, query, teacherID); err != nil {
		return nil, fmt.Errorf("list special schedules: %w", err)
	}
	return schedules, nil
}

// Create inserts a pending schedule.
func (r *SpecialScheduleRepository) Create(ctx context.Context, schedule *models.IndustryProfessionalSchedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.Status == "" {
		schedule.Status = models.SpecialSchedulePending
	}
	now := time.Now().UTC()
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = now
	}
	schedule.UpdatedAt = now
	const query = `INSERT INTO industry_professional_schedules
		(id, teacher_course_id, slot_id, day_of_week, status, created_at, updated_at)
		VALUES (:id, :teacher_course_id, :slot_id, :day_of_week, :status, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, schedule); err != nil {
		return fmt.Errorf("create special schedule: %w", err)
	}
	return nil
}

// UpdateStatus moves a schedule through the approval workflow.
func (r *SpecialScheduleRepository) UpdateStatus(ctx context.Context, id string, status models.SpecialScheduleStatus) error {
	const query = `UPDATE industry_professional_schedules SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := ext(ctx, r.db).ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update special schedule status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated schedule rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
