package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/campus-ops/uniadmin-api/internal/models"
)

// CourseRepository reads course reference data.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID loads one course with its teaching department name resolved.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `
SELECT c.id, c.code, c.name, c.department_id, c.for_department_id, c.teaching_department_id,
       COALESCE(d.name, '') AS teaching_dept_name, c.course_type, c.lecture_hours,
       c.tutorial_hours, c.practical_hours, c.credits, c.zero_credit, c.elective_type,
       c.created_at, c.updated_at
FROM courses c
LEFT JOIN departments d ON d.id = c.teaching_department_id
WHERE c.id = $1`
	var course models.Course
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}
