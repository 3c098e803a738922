package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/megaschedule/megaschedule/internal/apperr"
	"github.com/megaschedule/megaschedule/internal/model"
)

type AssignmentStore struct {
	db *DB
}

func (s *AssignmentStore) Create(_ context.Context, assignment *model.Assignment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.assignmentSeq++
	assignment.ID = s.db.assignmentSeq
	assignment.CreatedAt = s.db.clock()
	assignment.UpdatedAt = assignment.CreatedAt
	s.db.assignments[assignment.ID] = copyAssignment(assignment)
	return nil
}

func (s *AssignmentStore) HasAccepted(_ context.Context, slotID int64) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.hasAcceptedLocked(slotID), nil
}

func (s *AssignmentStore) hasAcceptedLocked(slotID int64) bool {
	for _, a := range s.db.assignments {
		if a.ScheduleID == slotID && a.Status == model.AssignmentStatusAccepted {
			return true
		}
	}
	return false
}

func (s *AssignmentStore) CountForSlot(_ context.Context, slotID int64) (int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	count := 0
	for _, a := range s.db.assignments {
		if a.ScheduleID == slotID {
			count++
		}
	}
	return count, nil
}

// Accept applies the assignment and slot updates under one lock, matching the
// transactional discipline of the Postgres store. A second accept on a slot
// that already carries an accepted assignment fails the same way the partial
// unique index does.
func (s *AssignmentStore) Accept(_ context.Context, id, teacherID int64, at time.Time) (*model.Assignment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	a, ok := s.db.assignments[id]
	if !ok || a.TeacherID != teacherID || a.Status != model.AssignmentStatusPending {
		return nil, nil
	}

	if s.hasAcceptedLocked(a.ScheduleID) {
		return nil, apperr.New(apperr.CodeAlreadyAccepted, "schedule already has an accepted class")
	}

	a.Status = model.AssignmentStatusAccepted
	acceptedAt := at
	a.AcceptedAt = &acceptedAt
	a.UpdatedAt = s.db.clock()

	if slot, ok := s.db.slots[a.ScheduleID]; ok {
		slot.IsAvailable = false
		slot.UpdatedAt = a.UpdatedAt
	}

	return copyAssignment(a), nil
}

func (s *AssignmentStore) Reject(_ context.Context, id, teacherID int64) (*model.Assignment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	a, ok := s.db.assignments[id]
	if !ok || a.TeacherID != teacherID || a.Status != model.AssignmentStatusPending {
		return nil, nil
	}

	a.Status = model.AssignmentStatusRejected
	a.UpdatedAt = s.db.clock()
	return copyAssignment(a), nil
}

func (s *AssignmentStore) ListForTeacher(_ context.Context, teacherID int64, status *model.AssignmentStatus) ([]*model.Assignment, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var assignments []*model.Assignment
	for _, a := range s.db.assignments {
		if a.TeacherID != teacherID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		assignments = append(assignments, copyAssignment(a))
	}
	sortAssignments(assignments, false)
	return assignments, nil
}

func (s *AssignmentStore) ListPendingForTeacher(_ context.Context, teacherID int64) ([]*model.Assignment, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var assignments []*model.Assignment
	for _, a := range s.db.assignments {
		if a.TeacherID == teacherID && a.Status == model.AssignmentStatusPending {
			assignments = append(assignments, copyAssignment(a))
		}
	}
	sortAssignments(assignments, true)
	return assignments, nil
}

func (s *AssignmentStore) List(_ context.Context, filter model.AssignmentFilter) ([]*model.Assignment, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var assignments []*model.Assignment
	for _, a := range s.db.assignments {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.TeacherID != nil && a.TeacherID != *filter.TeacherID {
			continue
		}
		assignments = append(assignments, copyAssignment(a))
	}
	sortAssignments(assignments, false)
	return assignments, nil
}

func (s *AssignmentStore) AcceptedWithSlots(_ context.Context, teacherID int64, from, to time.Time) ([]*model.Assignment, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var assignments []*model.Assignment
	for _, a := range s.db.assignments {
		if a.TeacherID != teacherID || a.Status != model.AssignmentStatusAccepted {
			continue
		}
		slot, ok := s.db.slots[a.ScheduleID]
		if !ok {
			continue
		}
		if slot.StartTime.Before(from) || !slot.StartTime.Before(to) {
			continue
		}
		c := copyAssignment(a)
		c.Slot = copySlot(slot)
		assignments = append(assignments, c)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments, nil
}

// sortAssignments orders by creation, falling back to ID so entries created
// within one clock tick keep insertion order.
func sortAssignments(assignments []*model.Assignment, asc bool) {
	sort.Slice(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if a.CreatedAt.Equal(b.CreatedAt) {
			if asc {
				return a.ID < b.ID
			}
			return a.ID > b.ID
		}
		if asc {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
