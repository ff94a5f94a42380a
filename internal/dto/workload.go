package dto

import "github.com/campus-ops/uniadmin-api/internal/models"

// WorkloadSummary reports a teacher's committed hours against their budget.
type WorkloadSummary struct {
	TeacherID      string                       `json:"teacher_id"`
	TeacherName    string                       `json:"teacher_name"`
	DepartmentName string                       `json:"department_name"`
	WeeklyBudget   int                          `json:"weekly_budget"`
	CommittedHours int                          `json:"committed_hours"`
	RemainingHours int                          `json:"remaining_hours"`
	Assignments    []models.TeacherCourseDetail `json:"assignments"`
}
