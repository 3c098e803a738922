package model

import (
	"testing"
	"time"
)

func TestAssignmentStatusTerminal(t *testing.T) {
	tests := []struct {
		status   AssignmentStatus
		terminal bool
	}{
		{AssignmentStatusPending, false},
		{AssignmentStatusAccepted, true},
		{AssignmentStatusRejected, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.terminal {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleTeacher, RoleDesk} {
		if !role.Valid() {
			t.Errorf("%s.Valid() = false, want true", role)
		}
	}
	for _, role := range []Role{"", "admin", "Teacher"} {
		if role.Valid() {
			t.Errorf("%s.Valid() = true, want false", role)
		}
	}
}

func TestScheduleSlotHours(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	slot := ScheduleSlot{StartTime: start, EndTime: start.Add(135 * time.Minute)}
	if got := slot.Hours(); got != 2.25 {
		t.Errorf("Hours() = %v, want 2.25", got)
	}
}
