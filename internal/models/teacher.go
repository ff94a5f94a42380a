package models

import "time"

// TeacherRole enumerates the staff roles recognised by the institution.
type TeacherRole string

const (
	RoleProfessor          TeacherRole = "Professor"
	RoleAssociateProfessor TeacherRole = "Associate Professor"
	RoleAssistantProfessor TeacherRole = "Assistant Professor"
	RoleHOD                TeacherRole = "HOD"
	RoleDC                 TeacherRole = "DC"
	RolePOP                TeacherRole = "POP"
	RoleIndustryProf       TeacherRole = "Industry Professional"
	RoleDean               TeacherRole = "Dean"
	RolePrincipal          TeacherRole = "Principal"
	RoleVicePrincipal      TeacherRole = "Vice Principal"
	RolePhysicalDirector   TeacherRole = "Physical Director"
	RoleAdminStaff         TeacherRole = "Admin"
)

// AvailabilityType distinguishes teachers schedulable on all working days
// from those restricted to declared windows.
type AvailabilityType string

const (
	AvailabilityRegular AvailabilityType = "regular"
	AvailabilityLimited AvailabilityType = "limited"
)

// ResignationStatus tracks the employment wind-down state of a teacher.
type ResignationStatus string

const (
	ResignationActive    ResignationStatus = "active"
	ResignationResigning ResignationStatus = "resigning"
	ResignationResigned  ResignationStatus = "resigned"
)

// Teacher represents an instructor record. WeeklyHours is the working-hour
// budget all course assignments must fit within (21 by default).
type Teacher struct {
	ID                     string            `db:"id" json:"id"`
	UserID                 *string           `db:"user_id" json:"user_id,omitempty"`
	DepartmentID           string            `db:"department_id" json:"department_id"`
	DepartmentName         string            `db:"department_name" json:"department_name"`
	StaffCode              *string           `db:"staff_code" json:"staff_code,omitempty"`
	FullName               string            `db:"full_name" json:"full_name"`
	Role                   TeacherRole       `db:"role" json:"role"`
	Specialisation         *string           `db:"specialisation" json:"specialisation,omitempty"`
	WeeklyHours            int               `db:"weekly_hours" json:"weekly_hours"`
	AvailabilityType       AvailabilityType  `db:"availability_type" json:"availability_type"`
	IsIndustryProfessional bool              `db:"is_industry_professional" json:"is_industry_professional"`
	ResignationStatus      ResignationStatus `db:"resignation_status" json:"resignation_status"`
	CreatedAt              time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time         `db:"updated_at" json:"updated_at"`
}

// industryRoles are roles that imply limited availability and the industry
// flag. The flag is derived, never independently settable.
var industryRoles = map[TeacherRole]struct{}{
	RolePOP:          {},
	RoleIndustryProf: {},
}

// HasIndustryRole reports whether the teacher's role is an industry-practice
// role regardless of the stored flag.
func (t *Teacher) HasIndustryRole() bool {
	_, ok := industryRoles[t.Role]
	return ok
}

// IndustryProfessional reports whether the teacher is treated as an industry
// professional, derived from the stored flag or the role.
func (t *Teacher) IndustryProfessional() bool {
	return t.IsIndustryProfessional || t.HasIndustryRole()
}

// BypassesDepartmentConstraint reports whether the teacher may be assigned to
// courses taught by other departments. Modeled as a capability rather than
// role-string checks so new exempt roles only touch this table.
func (t *Teacher) BypassesDepartmentConstraint() bool {
	return t.IndustryProfessional()
}

// RequiresSpecialScheduling reports whether course assignments for this
// teacher must go through the special-schedule approval workflow.
func (t *Teacher) RequiresSpecialScheduling() bool {
	return t.IndustryProfessional()
}

// TeacherAvailability is a declared window during which a limited-availability
// teacher may be scheduled. Times are HH:MM clock strings, start < end.
type TeacherAvailability struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Contains reports whether the [start,end) interval in minutes falls entirely
// inside this window.
func (a *TeacherAvailability) Contains(startMin, endMin int) bool {
	availStart, err := MinutesOfDay(a.StartTime)
	if err != nil {
		return false
	}
	availEnd, err := MinutesOfDay(a.EndTime)
	if err != nil {
		return false
	}
	return availStart <= startMin && availEnd >= endMin
}
