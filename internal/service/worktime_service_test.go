package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megaschedule/megaschedule/internal/model"
)

func TestWorkTimeService_ForTeacher(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "alice", model.RoleTeacher)
	desk := env.createUser(t, "dana", model.RoleDesk)

	// 1.5h and 2.25h accepted in May
	for _, d := range []time.Duration{90 * time.Minute, 135 * time.Minute} {
		slot := env.createSlot(t, teacher.ID, mustTime(t, "2024-05-10T10:00:00Z"), d)
		assignment := env.assign(t, slot.ID, "Kim", desk.ID)
		env.accept(t, assignment.ID, teacher.ID)
	}

	// pending and rejected classes never count
	pendingSlot := env.createSlot(t, teacher.ID, mustTime(t, "2024-05-12T10:00:00Z"), time.Hour)
	env.assign(t, pendingSlot.ID, "Lee", desk.ID)
	rejectedSlot := env.createSlot(t, teacher.ID, mustTime(t, "2024-05-13T10:00:00Z"), time.Hour)
	rejected := env.assign(t, rejectedSlot.ID, "Park", desk.ID)
	_, err := env.assignments.Decide(context.Background(), rejected.ID, teacher.ID, false)
	require.NoError(t, err)

	summary, err := env.worktime.ForTeacher(context.Background(), teacher, 2024, 5)
	require.NoError(t, err)

	assert.Equal(t, teacher.ID, summary.TeacherID)
	assert.Equal(t, "alice", summary.TeacherName)
	assert.Equal(t, 3.75, summary.TotalHours)
	assert.Equal(t, 2, summary.ClassCount)
	assert.Len(t, summary.Slots, 2)
}

func TestWorkTimeService_MonthBoundaries(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "alice", model.RoleTeacher)
	desk := env.createUser(t, "dana", model.RoleDesk)

	acceptAt := func(start string) {
		slot := env.createSlot(t, teacher.ID, mustTime(t, start), time.Hour)
		assignment := env.assign(t, slot.ID, "Kim", desk.ID)
		env.accept(t, assignment.ID, teacher.ID)
	}

	acceptAt("2024-05-01T00:00:00Z") // first instant of May: included
	acceptAt("2024-06-01T00:00:00Z") // first instant of June: excluded from May

	summary, err := env.worktime.ForTeacher(context.Background(), teacher, 2024, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ClassCount)
	assert.Equal(t, 1.0, summary.TotalHours)

	june, err := env.worktime.ForTeacher(context.Background(), teacher, 2024, 6)
	require.NoError(t, err)
	assert.Equal(t, 1, june.ClassCount)
}

func TestWorkTimeService_DefaultsToCurrentMonth(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "alice", model.RoleTeacher)
	desk := env.createUser(t, "dana", model.RoleDesk)
	env.worktime.now = func() time.Time { return mustTime(t, "2024-05-20T12:00:00Z") }

	slot := env.createSlot(t, teacher.ID, mustTime(t, "2024-05-10T10:00:00Z"), time.Hour)
	assignment := env.assign(t, slot.ID, "Kim", desk.ID)
	env.accept(t, assignment.ID, teacher.ID)

	summary, err := env.worktime.ForTeacher(context.Background(), teacher, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ClassCount)
}

// Rounding is half away from zero: a 7m30s class is 0.125h, reported as 0.13.
func TestWorkTimeService_Rounding(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "alice", model.RoleTeacher)
	desk := env.createUser(t, "dana", model.RoleDesk)

	slot := env.createSlot(t, teacher.ID, mustTime(t, "2024-05-10T10:00:00Z"), 7*time.Minute+30*time.Second)
	assignment := env.assign(t, slot.ID, "Kim", desk.ID)
	env.accept(t, assignment.ID, teacher.ID)

	summary, err := env.worktime.ForTeacher(context.Background(), teacher, 2024, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.13, summary.TotalHours)
}

func TestWorkTimeService_AllTeachers(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleTeacher)
	bob := env.createUser(t, "bob", model.RoleTeacher)
	env.createUser(t, "dana", model.RoleDesk)
	desk := env.createUser(t, "dave", model.RoleDesk)

	slot := env.createSlot(t, alice.ID, mustTime(t, "2024-05-10T10:00:00Z"), 2*time.Hour)
	assignment := env.assign(t, slot.ID, "Kim", desk.ID)
	env.accept(t, assignment.ID, alice.ID)

	t.Run("all teachers, idle ones included", func(t *testing.T) {
		summaries, err := env.worktime.AllTeachers(context.Background(), 2024, 5, nil)
		require.NoError(t, err)
		require.Len(t, summaries, 2, "desk users never appear")

		assert.Equal(t, alice.ID, summaries[0].TeacherID)
		assert.Equal(t, 2.0, summaries[0].TotalHours)
		assert.Equal(t, 1, summaries[0].ClassCount)

		assert.Equal(t, bob.ID, summaries[1].TeacherID)
		assert.Equal(t, 0.0, summaries[1].TotalHours)
		assert.Equal(t, 0, summaries[1].ClassCount)
		assert.Empty(t, summaries[1].Slots)
	})

	t.Run("single teacher filter", func(t *testing.T) {
		summaries, err := env.worktime.AllTeachers(context.Background(), 2024, 5, &bob.ID)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, bob.ID, summaries[0].TeacherID)
	})
}
