package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megaschedule/megaschedule/internal/apperr"
	"github.com/megaschedule/megaschedule/internal/model"
)

func TestScheduleService_Create_InvalidRange(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "alice", model.RoleTeacher)
	start := mustTime(t, "2024-05-01T10:00:00Z")

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{name: "start equals end", start: start, end: start},
		{name: "start after end", start: start, end: start.Add(-time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.schedules.Create(context.Background(), teacher.ID, tt.start, tt.end, true)
			require.Error(t, err)
			assert.Equal(t, apperr.CodeInvalidRange, apperr.CodeOf(err))
		})
	}

	// nothing persisted
	slots, err := env.schedules.ListForTeacher(context.Background(), teacher.ID)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestScheduleService_ListForTeacher_OrderedByStart(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "alice", model.RoleTeacher)

	late := env.createSlot(t, teacher.ID, mustTime(t, "2024-05-03T10:00:00Z"), time.Hour)
	early := env.createSlot(t, teacher.ID, mustTime(t, "2024-05-01T10:00:00Z"), time.Hour)
	mid := env.createSlot(t, teacher.ID, mustTime(t, "2024-05-02T10:00:00Z"), time.Hour)

	slots, err := env.schedules.ListForTeacher(context.Background(), teacher.ID)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, []int64{early.ID, mid.ID, late.ID}, []int64{slots[0].ID, slots[1].ID, slots[2].ID})
}

func TestScheduleService_Delete(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "alice", model.RoleTeacher)
	other := env.createUser(t, "bob", model.RoleTeacher)
	desk := env.createUser(t, "dana", model.RoleDesk)

	slot := env.createSlot(t, teacher.ID, mustTime(t, "2024-05-01T10:00:00Z"), time.Hour)

	t.Run("not owned", func(t *testing.T) {
		err := env.schedules.Delete(context.Background(), slot.ID, other.ID)
		assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	})

	t.Run("unknown slot", func(t *testing.T) {
		err := env.schedules.Delete(context.Background(), 9999, teacher.ID)
		assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	})

	t.Run("blocked by rejected assignment", func(t *testing.T) {
		assignment := env.assign(t, slot.ID, "Kim", desk.ID)
		_, err := env.assignments.Decide(context.Background(), assignment.ID, teacher.ID, false)
		require.NoError(t, err)

		// even rejected history blocks deletion
		err = env.schedules.Delete(context.Background(), slot.ID, teacher.ID)
		assert.Equal(t, apperr.CodeHasAssignments, apperr.CodeOf(err))
	})

	t.Run("unreferenced slot deletes", func(t *testing.T) {
		fresh := env.createSlot(t, teacher.ID, mustTime(t, "2024-05-02T10:00:00Z"), time.Hour)
		require.NoError(t, env.schedules.Delete(context.Background(), fresh.ID, teacher.ID))

		slots, err := env.schedules.ListForTeacher(context.Background(), teacher.ID)
		require.NoError(t, err)
		for _, s := range slots {
			assert.NotEqual(t, fresh.ID, s.ID)
		}
	})
}

func TestScheduleService_AvailableByTeacher(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleTeacher)
	bob := env.createUser(t, "bob", model.RoleTeacher)
	env.createUser(t, "carol", model.RoleTeacher) // never publishes slots
	desk := env.createUser(t, "dana", model.RoleDesk)

	inWindow := env.createSlot(t, alice.ID, mustTime(t, "2024-05-10T10:00:00Z"), time.Hour)
	env.createSlot(t, alice.ID, mustTime(t, "2024-06-10T10:00:00Z"), time.Hour) // outside window
	bobSlot := env.createSlot(t, bob.ID, mustTime(t, "2024-05-11T10:00:00Z"), time.Hour)

	// accepted class makes bob's slot unavailable
	assignment := env.assign(t, bobSlot.ID, "Kim", desk.ID)
	env.accept(t, assignment.ID, bob.ID)

	from := mustTime(t, "2024-05-01T00:00:00Z")
	to := mustTime(t, "2024-06-01T00:00:00Z")
	result, err := env.schedules.AvailableByTeacher(context.Background(), model.SlotWindow{From: &from, To: &to})
	require.NoError(t, err)

	// bob has no available slots left, carol never had any: both omitted
	require.Len(t, result, 1)
	assert.Equal(t, alice.ID, result[0].TeacherID)
	assert.Equal(t, "alice", result[0].TeacherName)
	require.Len(t, result[0].Slots, 1)
	assert.Equal(t, inWindow.ID, result[0].Slots[0].ID)
}

func TestScheduleService_AvailableByTeacher_NoWindow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.RoleTeacher)
	env.createSlot(t, alice.ID, mustTime(t, "2024-05-10T10:00:00Z"), time.Hour)
	env.createSlot(t, alice.ID, mustTime(t, "2030-01-01T10:00:00Z"), time.Hour)

	result, err := env.schedules.AvailableByTeacher(context.Background(), model.SlotWindow{})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Len(t, result[0].Slots, 2)
}
