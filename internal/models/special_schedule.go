package models

import "time"

// SpecialScheduleStatus is the approval state of an industry-professional
// schedule request.
type SpecialScheduleStatus string

const (
	SpecialSchedulePending   SpecialScheduleStatus = "pending"
	SpecialScheduleConfirmed SpecialScheduleStatus = "confirmed"
	SpecialScheduleDeclined  SpecialScheduleStatus = "declined"
)

// IndustryProfessionalSchedule pins a course assignment of an industry
// professional to a concrete (day, slot). The slot must sit entirely inside
// one of the teacher's declared availability windows for that day.
type IndustryProfessionalSchedule struct {
	ID              string                `db:"id" json:"id"`
	TeacherCourseID string                `db:"teacher_course_id" json:"teacher_course_id"`
	SlotID          string                `db:"slot_id" json:"slot_id"`
	DayOfWeek       int                   `db:"day_of_week" json:"day_of_week"`
	Status          SpecialScheduleStatus `db:"status" json:"status"`
	CreatedAt       time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time             `db:"updated_at" json:"updated_at"`
}
