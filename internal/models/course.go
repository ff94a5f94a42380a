package models

import "time"

// CourseType classifies delivery format: theory, lab, or both.
type CourseType string

const (
	CourseTheory       CourseType = "T"
	CourseLab          CourseType = "L"
	CourseLabAndTheory CourseType = "LoT"
)

// CourseRelationship names the ownership/consumption pattern produced by the
// owning, consuming ("for") and teaching department references of a course.
type CourseRelationship string

const (
	SelfOwnedSelfTaught   CourseRelationship = "self-owned-self-taught"
	SelfOwnedOtherTaught  CourseRelationship = "self-owned-other-taught"
	OtherOwnedSelfTaught  CourseRelationship = "other-owned-self-taught"
	OtherOwnedOtherTaught CourseRelationship = "other-owned-other-taught"
	ForOtherSelfTaught    CourseRelationship = "for-other-self-taught"
	ForOtherOtherTaught   CourseRelationship = "for-other-other-taught"
)

// Course is a catalogue entry. The three department references are
// independently nullable: owning department, consuming ("for") department and
// teaching (delivering) department.
type Course struct {
	ID                   string     `db:"id" json:"id"`
	Code                 string     `db:"code" json:"code"`
	Name                 string     `db:"name" json:"name"`
	DepartmentID         *string    `db:"department_id" json:"department_id,omitempty"`
	ForDepartmentID      *string    `db:"for_department_id" json:"for_department_id,omitempty"`
	TeachingDepartmentID *string    `db:"teaching_department_id" json:"teaching_department_id,omitempty"`
	TeachingDeptName     string     `db:"teaching_dept_name" json:"teaching_dept_name"`
	Type                 CourseType `db:"course_type" json:"course_type"`
	LectureHours         int        `db:"lecture_hours" json:"lecture_hours"`
	TutorialHours        int        `db:"tutorial_hours" json:"tutorial_hours"`
	PracticalHours       int        `db:"practical_hours" json:"practical_hours"`
	Credits              int        `db:"credits" json:"credits"`
	ZeroCredit           bool       `db:"zero_credit" json:"zero_credit"`
	ElectiveType         *string    `db:"elective_type" json:"elective_type,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// WeeklyHours is the weekly hour contribution of the course by type:
// theory counts lecture+tutorial, lab counts practicals, lab-and-theory
// counts all three. Unknown types contribute nothing.
func (c *Course) WeeklyHours() int {
	switch c.Type {
	case CourseTheory:
		return c.LectureHours + c.TutorialHours
	case CourseLab:
		return c.PracticalHours
	case CourseLabAndTheory:
		return c.LectureHours + c.TutorialHours + c.PracticalHours
	default:
		return 0
	}
}

// Relationship classifies the department triple. The owning department is the
// frame of reference; nil references are treated as "self".
func (c *Course) Relationship() CourseRelationship {
	owned := deref(c.DepartmentID)
	forDept := deref(c.ForDepartmentID)
	taught := deref(c.TeachingDepartmentID)

	forOther := forDept != "" && forDept != owned
	taughtByOther := taught != "" && taught != owned

	switch {
	case forOther && taughtByOther:
		return ForOtherOtherTaught
	case forOther:
		return ForOtherSelfTaught
	case taughtByOther && owned == "":
		return OtherOwnedOtherTaught
	case taughtByOther:
		return SelfOwnedOtherTaught
	case owned == "":
		return OtherOwnedSelfTaught
	default:
		return SelfOwnedSelfTaught
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
