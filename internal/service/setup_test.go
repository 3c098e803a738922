package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/megaschedule/megaschedule/internal/model"
	"github.com/megaschedule/megaschedule/internal/repository/inmem"
)

// testEnv wires all services over a shared in-memory store with a
// deterministic clock, so created_at ordering is stable.
type testEnv struct {
	db *inmem.DB

	users       *UserService
	schedules   *ScheduleService
	assignments *AssignmentService
	worktime    *WorkTimeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := inmem.NewDB()
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db.SetClock(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	})

	logger := zap.NewNop()
	users, slots, assignments := db.Users(), db.Slots(), db.Assignments()

	return &testEnv{
		db:          db,
		users:       NewUserService(users, logger),
		schedules:   NewScheduleService(slots, assignments, users, logger),
		assignments: NewAssignmentService(slots, assignments, logger),
		worktime:    NewWorkTimeService(assignments, users, logger),
	}
}

func (e *testEnv) createUser(t *testing.T, name string, role model.Role) *model.User {
	t.Helper()

	user := &model.User{
		Email: name + "@test.test",
		Name:  name,
		Role:  role,
	}
	if err := e.db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return user
}

func (e *testEnv) createSlot(t *testing.T, teacherID int64, start time.Time, d time.Duration) *model.ScheduleSlot {
	t.Helper()

	slot, err := e.schedules.Create(context.Background(), teacherID, start, start.Add(d), true)
	if err != nil {
		t.Fatalf("createSlot() failed: %v", err)
	}
	return slot
}

func (e *testEnv) assign(t *testing.T, slotID int64, student string, deskID int64) *model.Assignment {
	t.Helper()

	assignment, err := e.assignments.Assign(context.Background(), slotID, student, deskID)
	if err != nil {
		t.Fatalf("assign() failed: %v", err)
	}
	return assignment
}

func (e *testEnv) accept(t *testing.T, assignmentID, teacherID int64) *model.Assignment {
	t.Helper()

	assignment, err := e.assignments.Decide(context.Background(), assignmentID, teacherID, true)
	if err != nil {
		t.Fatalf("accept() failed: %v", err)
	}
	return assignment
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("mustTime(%q) failed: %v", value, err)
	}
	return parsed
}
