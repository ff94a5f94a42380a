package dto

// CreateTeacherCourseRequest proposes binding a teacher to a course.
type CreateTeacherCourseRequest struct {
	CourseID     string `json:"course_id" validate:"required"`
	AcademicYear int    `json:"academic_year" validate:"required,gte=2000"`
	Semester     int    `json:"semester" validate:"required,gte=1,lte=8"`
	StudentCount int    `json:"student_count" validate:"gte=0"`
}

// UpdateTeacherCourseRequest revalidates an existing course assignment.
type UpdateTeacherCourseRequest struct {
	CourseID     string `json:"course_id" validate:"required"`
	AcademicYear int    `json:"academic_year" validate:"required,gte=2000"`
	Semester     int    `json:"semester" validate:"required,gte=1,lte=8"`
	StudentCount int    `json:"student_count" validate:"gte=0"`
}

// CreateSlotAssignmentRequest proposes binding a teacher to a slot on a day.
type CreateSlotAssignmentRequest struct {
	SlotID    string `json:"slot_id" validate:"required"`
	DayOfWeek int    `json:"day_of_week" validate:"gte=0,lte=6"`
}

// CreateAvailabilityRequest declares a window for a limited-availability
// teacher.
type CreateAvailabilityRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// CreateSpecialScheduleRequest pins an industry professional's course
// assignment to a (day, slot).
type CreateSpecialScheduleRequest struct {
	TeacherCourseID string `json:"teacher_course_id" validate:"required"`
	SlotID          string `json:"slot_id" validate:"required"`
	DayOfWeek       int    `json:"day_of_week" validate:"gte=0,lte=6"`
}

// UpdateSpecialScheduleStatusRequest moves a schedule through the approval
// workflow.
type UpdateSpecialScheduleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed declined"`
}
