package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/campus-ops/uniadmin-api/internal/models"
)

func TestSlotAssignmentRepositoryListByTeacher(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSlotAssignmentRepository(db)
	rows := sqlmock.NewRows([]string{"id", "teacher_id", "slot_id", "day_of_week", "created_at", "slot_name", "start_time", "end_time", "slot_type"}).
		AddRow("sa-1", "teacher-1", "slot-a", 0, time.Now(), "Slot A", "08:30", "10:00", "A").
		AddRow("sa-2", "teacher-1", "slot-b", 2, time.Now(), "Slot B", "10:15", "11:45", "B")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT tsa.id, tsa.teacher_id, tsa.slot_id")).
		WithArgs("teacher-1").
		WillReturnRows(rows)

	assignments, err := repo.ListByTeacher(context.Background(), "teacher-1")
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	require.Equal(t, "Monday", assignments[0].DayName)
	require.Equal(t, "Wednesday", assignments[1].DayName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotAssignmentRepositoryHasDay(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSlotAssignmentRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM teacher_slot_assignments WHERE teacher_id = $1 AND day_of_week = $2")).
		WithArgs("teacher-1", 0).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	taken, err := repo.HasDay(context.Background(), "teacher-1", 0, "")
	require.NoError(t, err)
	require.True(t, taken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotAssignmentRepositoryCountDistinctDays(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSlotAssignmentRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT day_of_week) FROM teacher_slot_assignments WHERE teacher_id = $1")).
		WithArgs("teacher-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	days, err := repo.CountDistinctDays(context.Background(), "teacher-1", "")
	require.NoError(t, err)
	require.Equal(t, 5, days)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotAssignmentRepositoryCountDeptOccupantsTyped(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSlotAssignmentRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("AND s.slot_type = $4")).
		WithArgs("cse", 0, "teacher-5", "A").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	slotType := "A"
	count, err := repo.CountDeptOccupants(context.Background(), "cse", 0, &slotType, "teacher-5")
	require.NoError(t, err)
	require.Equal(t, 4, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotAssignmentRepositoryCountDeptOccupantsUntyped(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSlotAssignmentRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("AND s.slot_type IS NULL")).
		WithArgs("cse", 1, "teacher-5").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	count, err := repo.CountDeptOccupants(context.Background(), "cse", 1, nil, "teacher-5")
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotAssignmentRepositoryUpdateNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSlotAssignmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE teacher_slot_assignments SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.TeacherSlotAssignment{ID: "missing", TeacherID: "teacher-1", SlotID: "slot-a"})
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
