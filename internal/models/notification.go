package models

const (
	RoleStudent  = "student"
	RoleIndustry = "industry"
	RoleFaculty  = "faculty"
	RoleAdmin    = "admin"
)

// Notification with an empty UserRole is visible to every role.
type Notification struct {
	ID        string `json:"id" validate:"required"`
	UserRole  string `json:"userRole,omitempty" validate:"in:student,industry,faculty,admin"`
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}
