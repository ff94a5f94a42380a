package models

import "time"

// TeacherSlotAssignment binds a teacher to a slot on one weekday. A teacher
// holds at most one slot per day and at most five distinct days per week.
type TeacherSlotAssignment struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	SlotID    string    `db:"slot_id" json:"slot_id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TeacherSlotAssignmentDetail carries the slot window alongside the binding
// so conflict checks and listings avoid a second lookup.
type TeacherSlotAssignmentDetail struct {
	TeacherSlotAssignment
	SlotName  string  `db:"slot_name" json:"slot_name"`
	StartTime string  `db:"start_time" json:"start_time"`
	EndTime   string  `db:"end_time" json:"end_time"`
	SlotType  *string `db:"slot_type" json:"slot_type,omitempty"`
	DayName   string  `db:"-" json:"day_name,omitempty"`
}
