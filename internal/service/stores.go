package service

import (
	"context"
	"time"

	"github.com/megaschedule/megaschedule/internal/model"
)

// Store interfaces consumed by the services. Implemented by the pgx
// repositories and by the in-memory store. Get-style methods return nil, nil
// when no row matches; multi-row updates that must be atomic (Accept) live
// behind a single store call so the transactional boundary stays inside the
// store.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	SetGoogleID(ctx context.Context, id int64, googleID string) error
	UpdateRole(ctx context.Context, id int64, role model.Role) (bool, error)
	ListByRole(ctx context.Context, role model.Role) ([]*model.User, error)
}

type SlotStore interface {
	Create(ctx context.Context, slot *model.ScheduleSlot) error
	GetByID(ctx context.Context, id int64) (*model.ScheduleSlot, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*model.ScheduleSlot, error)
	ListAvailableByTeacher(ctx context.Context, teacherID int64, window model.SlotWindow) ([]*model.ScheduleSlot, error)
	Delete(ctx context.Context, slotID, teacherID int64) (bool, error)
}

type AssignmentStore interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	HasAccepted(ctx context.Context, slotID int64) (bool, error)
	CountForSlot(ctx context.Context, slotID int64) (int, error)
	Accept(ctx context.Context, id, teacherID int64, at time.Time) (*model.Assignment, error)
	Reject(ctx context.Context, id, teacherID int64) (*model.Assignment, error)
	ListForTeacher(ctx context.Context, teacherID int64, status *model.AssignmentStatus) ([]*model.Assignment, error)
	ListPendingForTeacher(ctx context.Context, teacherID int64) ([]*model.Assignment, error)
	List(ctx context.Context, filter model.AssignmentFilter) ([]*model.Assignment, error)
	AcceptedWithSlots(ctx context.Context, teacherID int64, from, to time.Time) ([]*model.Assignment, error)
}
