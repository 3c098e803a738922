package model

import "time"

type AssignmentStatus string

const (
	AssignmentStatusPending  AssignmentStatus = "pending"  // waiting for the teacher's decision
	AssignmentStatusAccepted AssignmentStatus = "accepted" // terminal
	AssignmentStatusRejected AssignmentStatus = "rejected" // terminal
)

func (s AssignmentStatus) Valid() bool {
	return s == AssignmentStatusPending || s == AssignmentStatusAccepted || s == AssignmentStatusRejected
}

// Terminal reports whether no further transition may leave s.
func (s AssignmentStatus) Terminal() bool {
	return s == AssignmentStatusAccepted || s == AssignmentStatusRejected
}

// Assignment is a desk-initiated request to place a student into a slot.
// TeacherID is denormalized from the referenced slot at creation and never
// mutated afterwards.
type Assignment struct {
	ID          int64            `json:"id"`
	StudentName string           `json:"student_name"`
	TeacherID   int64            `json:"teacher_id"`
	ScheduleID  int64            `json:"schedule_id"`
	Status      AssignmentStatus `json:"status"`
	CreatedBy   int64            `json:"created_by"`
	AcceptedAt  *time.Time       `json:"accepted_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Populated by queries that join the slot; not a stored column.
	Slot *ScheduleSlot `json:"slot,omitempty"`
}

// AssignmentFilter narrows assignment listings. Each field is independently
// optional; nil means "no constraint".
type AssignmentFilter struct {
	Status    *AssignmentStatus
	TeacherID *int64
}
