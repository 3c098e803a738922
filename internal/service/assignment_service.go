package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/megaschedule/megaschedule/internal/apperr"
	"github.com/megaschedule/megaschedule/internal/model"
)

// AssignmentService owns the class-assignment state machine:
// pending -> accepted | rejected, both terminal.
type AssignmentService struct {
	slots       SlotStore
	assignments AssignmentStore
	logger      *zap.Logger
	now         func() time.Time
}

func NewAssignmentService(slots SlotStore, assignments AssignmentStore, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		slots:       slots,
		assignments: assignments,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Assign places a student into a slot as a pending assignment. The slot must
// exist, be available, and carry no accepted assignment. Several pending
// assignments may coexist on one slot; only acceptance makes it exclusive.
func (s *AssignmentService) Assign(ctx context.Context, slotID int64, studentName string, deskUserID int64) (*model.Assignment, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, apperr.New(apperr.CodeNotFound, "schedule not found")
	}
	if !slot.IsAvailable {
		return nil, apperr.New(apperr.CodeSlotUnavailable, "schedule is not available")
	}

	accepted, err := s.assignments.HasAccepted(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("check accepted assignment: %w", err)
	}
	if accepted {
		return nil, apperr.New(apperr.CodeAlreadyAccepted, "schedule already has an accepted class")
	}

	assignment := &model.Assignment{
		StudentName: studentName,
		TeacherID:   slot.TeacherID, // denormalized from the slot's owner, never mutated
		ScheduleID:  slotID,
		Status:      model.AssignmentStatusPending,
		CreatedBy:   deskUserID,
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}

	s.logger.Info("Class assigned",
		zap.Int64("assignment_id", assignment.ID),
		zap.Int64("slot_id", slotID),
		zap.Int64("teacher_id", slot.TeacherID),
		zap.String("student_name", studentName),
	)

	return assignment, nil
}

// Decide resolves a pending assignment owned by the teacher. Accepting also
// marks the slot unavailable; the store applies both writes atomically.
// Assignments in a terminal state are indistinguishable from absent ones.
func (s *AssignmentService) Decide(ctx context.Context, assignmentID, teacherID int64, accept bool) (*model.Assignment, error) {
	var (
		assignment *model.Assignment
		err        error
	)

	if accept {
		assignment, err = s.assignments.Accept(ctx, assignmentID, teacherID, s.now())
	} else {
		assignment, err = s.assignments.Reject(ctx, assignmentID, teacherID)
	}

	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, fmt.Errorf("decide assignment: %w", err)
	}
	if assignment == nil {
		return nil, apperr.New(apperr.CodeNotFound, "class not found or not pending")
	}

	s.logger.Info("Class decided",
		zap.Int64("assignment_id", assignmentID),
		zap.Int64("teacher_id", teacherID),
		zap.Bool("accepted", accept),
	)

	return assignment, nil
}

// ListForTeacher lists the teacher's assignments newest first, optionally
// filtered by status.
func (s *AssignmentService) ListForTeacher(ctx context.Context, teacherID int64, status *model.AssignmentStatus) ([]*model.Assignment, error) {
	assignments, err := s.assignments.ListForTeacher(ctx, teacherID, status)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// ListPendingForTeacher lists the teacher's undecided assignments oldest first.
func (s *AssignmentService) ListPendingForTeacher(ctx context.Context, teacherID int64) ([]*model.Assignment, error) {
	assignments, err := s.assignments.ListPendingForTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list pending assignments: %w", err)
	}
	return assignments, nil
}

// ListAll is the desk-wide assignment listing, newest first.
func (s *AssignmentService) ListAll(ctx context.Context, filter model.AssignmentFilter) ([]*model.Assignment, error) {
	assignments, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}
