package model

// WorkTimeSummary aggregates a teacher's accepted classes inside one calendar
// month. Slots follow assignment iteration order.
type WorkTimeSummary struct {
	TeacherID   int64           `json:"teacher_id"`
	TeacherName string          `json:"teacher_name"`
	TotalHours  float64         `json:"total_hours"`
	ClassCount  int             `json:"classes_count"`
	Slots       []*ScheduleSlot `json:"schedules"`
}

// TeacherAvailability is the desk-side view of one teacher's bookable slots.
type TeacherAvailability struct {
	TeacherID   int64           `json:"teacher_id"`
	TeacherName string          `json:"teacher_name"`
	Slots       []*ScheduleSlot `json:"available_schedules"`
}
