package models

import "time"

// TeacherCourse binds one teacher to one course for an academic year and
// semester. The (teacher, course) pair is unique globally; semester-scoped
// uniqueness from earlier data models is deprecated.
// RequiresSpecialScheduling is derived from the teacher at write time.
type TeacherCourse struct {
	ID                         string    `db:"id" json:"id"`
	TeacherID                  string    `db:"teacher_id" json:"teacher_id"`
	CourseID                   string    `db:"course_id" json:"course_id"`
	AcademicYear               int       `db:"academic_year" json:"academic_year"`
	Semester                   int       `db:"semester" json:"semester"`
	StudentCount               int       `db:"student_count" json:"student_count"`
	RequiresSpecialScheduling  bool      `db:"requires_special_scheduling" json:"requires_special_scheduling"`
	CreatedAt                  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                  time.Time `db:"updated_at" json:"updated_at"`
}

// TeacherCourseDetail enriches an assignment with catalogue fields for
// listings and workload reports.
type TeacherCourseDetail struct {
	TeacherCourse
	CourseCode  string     `db:"course_code" json:"course_code"`
	CourseName  string     `db:"course_name" json:"course_name"`
	CourseType  CourseType `db:"course_type" json:"course_type"`
	WeeklyHours int        `db:"weekly_hours" json:"weekly_hours"`
	TeacherName string     `db:"teacher_name" json:"teacher_name"`
}
