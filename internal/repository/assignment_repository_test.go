package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/campus-ops/uniadmin-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAssignmentRepositoryListByTeacher(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAssignmentRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "teacher_id", "course_id", "academic_year", "semester", "student_count",
		"requires_special_scheduling", "created_at", "updated_at",
		"course_code", "course_name", "course_type", "weekly_hours", "teacher_name",
	}).
		AddRow("tc-1", "teacher-1", "course-1", 2026, 3, 60, false, now, now, "CS301", "Algorithms", "T", 4, "Dr. Rao").
		AddRow("tc-2", "teacher-1", "course-2", 2026, 3, 30, false, now, now, "CS302", "OS Lab", "L", 2, "Dr. Rao")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT tc.id, tc.teacher_id, tc.course_id")).
		WithArgs("teacher-1").
		WillReturnRows(rows)

	assignments, err := repo.ListByTeacher(context.Background(), "teacher-1")
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	require.Equal(t, 4, assignments[0].WeeklyHours)
	require.Equal(t, models.CourseLab, assignments[1].CourseType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryExistsPair(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAssignmentRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM teacher_courses WHERE teacher_id = $1 AND course_id = $2")).
		WithArgs("teacher-1", "course-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsPair(context.Background(), "teacher-1", "course-1", "")
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryExistsPairExcludesRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAssignmentRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("AND id <> $3")).
		WithArgs("teacher-1", "course-1", "tc-1").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.ExistsPair(context.Background(), "teacher-1", "course-1", "tc-1")
	require.NoError(t, err)
	require.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAssignmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO teacher_courses")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assignment := &models.TeacherCourse{TeacherID: "teacher-1", CourseID: "course-1", AcademicYear: 2026, Semester: 3}
	require.NoError(t, repo.Create(context.Background(), assignment))
	require.NotEmpty(t, assignment.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAssignmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM teacher_courses WHERE id = $1 AND teacher_id = $2")).
		WithArgs("missing", "teacher-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "teacher-1", "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
