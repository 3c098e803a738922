package model

import "time"

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleDesk    Role = "desk"
)

// DefaultRole is assigned to users provisioned on first authentication.
const DefaultRole = RoleTeacher

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleDesk
}

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	GoogleID  *string   `json:"google_id,omitempty"` // nil until the identity provider reports it
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
