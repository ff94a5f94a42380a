package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseWeeklyHours(t *testing.T) {
	theory := Course{Type: CourseTheory, LectureHours: 3, TutorialHours: 1, PracticalHours: 2}
	assert.Equal(t, 4, theory.WeeklyHours())

	lab := Course{Type: CourseLab, LectureHours: 3, TutorialHours: 1, PracticalHours: 2}
	assert.Equal(t, 2, lab.WeeklyHours())

	both := Course{Type: CourseLabAndTheory, LectureHours: 3, TutorialHours: 1, PracticalHours: 2}
	assert.Equal(t, 6, both.WeeklyHours())

	unknown := Course{Type: CourseType("X"), LectureHours: 3}
	assert.Equal(t, 0, unknown.WeeklyHours())
}

func TestCourseRelationship(t *testing.T) {
	cse := "cse"
	ece := "ece"

	selfSelf := Course{DepartmentID: &cse, TeachingDepartmentID: &cse}
	assert.Equal(t, SelfOwnedSelfTaught, selfSelf.Relationship())

	selfOther := Course{DepartmentID: &cse, TeachingDepartmentID: &ece}
	assert.Equal(t, SelfOwnedOtherTaught, selfOther.Relationship())

	forOther := Course{DepartmentID: &cse, ForDepartmentID: &ece, TeachingDepartmentID: &cse}
	assert.Equal(t, ForOtherSelfTaught, forOther.Relationship())

	forOtherTaught := Course{DepartmentID: &cse, ForDepartmentID: &ece, TeachingDepartmentID: &ece}
	assert.Equal(t, ForOtherOtherTaught, forOtherTaught.Relationship())
}
