package model

import "time"

// ScheduleSlot is a teacher-declared availability window. IsAvailable starts
// true and flips to false exactly once, when an assignment on the slot is
// accepted; there is no path back.
type ScheduleSlot struct {
	ID          int64     `json:"id"`
	TeacherID   int64     `json:"teacher_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Hours returns the slot duration in fractional hours.
func (s *ScheduleSlot) Hours() float64 {
	return s.EndTime.Sub(s.StartTime).Hours()
}

// SlotWindow bounds an availability query. Both ends are independently
// optional: From filters start_time >= From, To filters end_time <= To.
type SlotWindow struct {
	From *time.Time
	To   *time.Time
}
