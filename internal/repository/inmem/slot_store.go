package inmem

import (
	"context"
	"sort"

	"github.com/megaschedule/megaschedule/internal/model"
)

type SlotStore struct {
	db *DB
}

func (s *SlotStore) Create(_ context.Context, slot *model.ScheduleSlot) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.slotSeq++
	slot.ID = s.db.slotSeq
	slot.CreatedAt = s.db.clock()
	slot.UpdatedAt = slot.CreatedAt
	s.db.slots[slot.ID] = copySlot(slot)
	return nil
}

func (s *SlotStore) GetByID(_ context.Context, id int64) (*model.ScheduleSlot, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if slot, ok := s.db.slots[id]; ok {
		return copySlot(slot), nil
	}
	return nil, nil
}

func (s *SlotStore) ListByTeacher(_ context.Context, teacherID int64) ([]*model.ScheduleSlot, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var slots []*model.ScheduleSlot
	for _, slot := range s.db.slots {
		if slot.TeacherID == teacherID {
			slots = append(slots, copySlot(slot))
		}
	}
	sortSlots(slots)
	return slots, nil
}

func (s *SlotStore) ListAvailableByTeacher(_ context.Context, teacherID int64, window model.SlotWindow) ([]*model.ScheduleSlot, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var slots []*model.ScheduleSlot
	for _, slot := range s.db.slots {
		if slot.TeacherID != teacherID || !slot.IsAvailable {
			continue
		}
		if window.From != nil && slot.StartTime.Before(*window.From) {
			continue
		}
		if window.To != nil && slot.EndTime.After(*window.To) {
			continue
		}
		slots = append(slots, copySlot(slot))
	}
	sortSlots(slots)
	return slots, nil
}

func (s *SlotStore) Delete(_ context.Context, slotID, teacherID int64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	slot, ok := s.db.slots[slotID]
	if !ok || slot.TeacherID != teacherID {
		return false, nil
	}
	delete(s.db.slots, slotID)
	return true, nil
}

func sortSlots(slots []*model.ScheduleSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].StartTime.Equal(slots[j].StartTime) {
			return slots[i].ID < slots[j].ID
		}
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
}
