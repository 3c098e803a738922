package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/megaschedule/megaschedule/internal/apperr"
	"github.com/megaschedule/megaschedule/internal/model"
)

type ScheduleService struct {
	slots       SlotStore
	assignments AssignmentStore
	users       UserStore
	logger      *zap.Logger
}

func NewScheduleService(slots SlotStore, assignments AssignmentStore, users UserStore, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		slots:       slots,
		assignments: assignments,
		users:       users,
		logger:      logger,
	}
}

// Create registers a new availability slot for the teacher.
func (s *ScheduleService) Create(ctx context.Context, teacherID int64, start, end time.Time, available bool) (*model.ScheduleSlot, error) {
	if !start.Before(end) {
		return nil, apperr.New(apperr.CodeInvalidRange, "start time must be before end time")
	}

	slot := &model.ScheduleSlot{
		TeacherID:   teacherID,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: available,
	}

	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("teacher_id", teacherID),
		zap.Time("start_time", start),
		zap.Time("end_time", end),
	)

	return slot, nil
}

// ListForTeacher lists the teacher's slots ordered by start time.
func (s *ScheduleService) ListForTeacher(ctx context.Context, teacherID int64) ([]*model.ScheduleSlot, error) {
	slots, err := s.slots.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// Delete removes a slot the teacher owns. A slot referenced by any
// assignment, whatever its status, cannot be deleted.
func (s *ScheduleService) Delete(ctx context.Context, slotID, teacherID int64) error {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return fmt.Errorf("get slot: %w", err)
	}
	if slot == nil || slot.TeacherID != teacherID {
		return apperr.New(apperr.CodeNotFound, "schedule not found")
	}

	count, err := s.assignments.CountForSlot(ctx, slotID)
	if err != nil {
		return fmt.Errorf("count assignments: %w", err)
	}
	if count > 0 {
		return apperr.New(apperr.CodeHasAssignments, "cannot delete schedule with assigned classes")
	}

	deleted, err := s.slots.Delete(ctx, slotID, teacherID)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if !deleted {
		return apperr.New(apperr.CodeNotFound, "schedule not found")
	}

	s.logger.Info("Slot deleted",
		zap.Int64("slot_id", slotID),
		zap.Int64("teacher_id", teacherID),
	)

	return nil
}

// AvailableByTeacher is the desk-side availability listing: one entry per
// teacher that has at least one bookable slot inside the window.
func (s *ScheduleService) AvailableByTeacher(ctx context.Context, window model.SlotWindow) ([]*model.TeacherAvailability, error) {
	teachers, err := s.users.ListByRole(ctx, model.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	var result []*model.TeacherAvailability
	for _, teacher := range teachers {
		slots, err := s.slots.ListAvailableByTeacher(ctx, teacher.ID, window)
		if err != nil {
			return nil, fmt.Errorf("list available slots: %w", err)
		}
		if len(slots) == 0 {
			continue
		}
		result = append(result, &model.TeacherAvailability{
			TeacherID:   teacher.ID,
			TeacherName: teacher.Name,
			Slots:       slots,
		})
	}

	return result, nil
}
