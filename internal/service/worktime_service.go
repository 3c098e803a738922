package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/megaschedule/megaschedule/internal/model"
)

// WorkTimeService aggregates accepted classes into monthly work-hour totals.
type WorkTimeService struct {
	assignments AssignmentStore
	users       UserStore
	logger      *zap.Logger
	now         func() time.Time
}

func NewWorkTimeService(assignments AssignmentStore, users UserStore, logger *zap.Logger) *WorkTimeService {
	return &WorkTimeService{
		assignments: assignments,
		users:       users,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ForTeacher sums the durations of the teacher's accepted classes whose slot
// starts inside the given month. Zero year or month defaults to the current
// UTC month.
func (s *WorkTimeService) ForTeacher(ctx context.Context, teacher *model.User, year, month int) (*model.WorkTimeSummary, error) {
	from, to := s.monthWindow(year, month)

	accepted, err := s.assignments.AcceptedWithSlots(ctx, teacher.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list accepted classes: %w", err)
	}

	summary := &model.WorkTimeSummary{
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		Slots:       []*model.ScheduleSlot{},
	}

	var totalHours float64
	for _, a := range accepted {
		totalHours += a.Slot.Hours()
		summary.Slots = append(summary.Slots, a.Slot)
	}

	summary.TotalHours = roundHours(totalHours)
	summary.ClassCount = len(accepted)

	return summary, nil
}

// AllTeachers builds one summary per teacher-role user, or for a single one
// when teacherID is set. Teachers with no accepted classes in the window
// still appear with zero totals.
func (s *WorkTimeService) AllTeachers(ctx context.Context, year, month int, teacherID *int64) ([]*model.WorkTimeSummary, error) {
	teachers, err := s.users.ListByRole(ctx, model.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	summaries := make([]*model.WorkTimeSummary, 0, len(teachers))
	for _, teacher := range teachers {
		if teacherID != nil && teacher.ID != *teacherID {
			continue
		}
		summary, err := s.ForTeacher(ctx, teacher, year, month)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// monthWindow returns the half-open UTC interval [first of month, first of
// next month).
func (s *WorkTimeService) monthWindow(year, month int) (time.Time, time.Time) {
	if year == 0 || month == 0 {
		now := s.now()
		if year == 0 {
			year = now.Year()
		}
		if month == 0 {
			month = int(now.Month())
		}
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// roundHours rounds to 2 decimal places, halves away from zero.
func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
