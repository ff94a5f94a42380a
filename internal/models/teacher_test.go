package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndustryProfessional(t *testing.T) {
	pop := Teacher{Role: RolePOP}
	assert.True(t, pop.IndustryProfessional())
	assert.True(t, pop.BypassesDepartmentConstraint())
	assert.True(t, pop.RequiresSpecialScheduling())

	industry := Teacher{Role: RoleIndustryProf}
	assert.True(t, industry.IndustryProfessional())

	flagged := Teacher{Role: RoleProfessor, IsIndustryProfessional: true}
	assert.True(t, flagged.IndustryProfessional())

	professor := Teacher{Role: RoleProfessor}
	assert.False(t, professor.IndustryProfessional())
	assert.False(t, professor.BypassesDepartmentConstraint())
	assert.False(t, professor.RequiresSpecialScheduling())
}

func TestAvailabilityContains(t *testing.T) {
	window := TeacherAvailability{StartTime: "09:00", EndTime: "13:00"}

	// 10:15-11:45 sits entirely inside 09:00-13:00.
	assert.True(t, window.Contains(615, 705))
	// 12:30-14:00 spills past the window's end.
	assert.False(t, window.Contains(750, 840))
	// Exact match counts as contained.
	assert.True(t, window.Contains(540, 780))
}
