// Package inmem is an in-memory implementation of the service's stores. It
// backs local development when no DB_DSN is configured and the test suites.
// Semantics mirror the Postgres repositories, including the at-most-one
// accepted assignment per slot rule.
package inmem

import (
	"sync"
	"time"

	"github.com/megaschedule/megaschedule/internal/model"
)

type DB struct {
	mu sync.RWMutex

	users       map[int64]*model.User
	slots       map[int64]*model.ScheduleSlot
	assignments map[int64]*model.Assignment

	userSeq       int64
	slotSeq       int64
	assignmentSeq int64

	// clock is swappable so tests control created_at ordering.
	clock func() time.Time
}

func NewDB() *DB {
	return &DB{
		users:       make(map[int64]*model.User),
		slots:       make(map[int64]*model.ScheduleSlot),
		assignments: make(map[int64]*model.Assignment),
		clock:       time.Now,
	}
}

// SetClock replaces the timestamp source. Intended for tests.
func (db *DB) SetClock(clock func() time.Time) {
	db.clock = clock
}

func (db *DB) Users() *UserStore             { return &UserStore{db: db} }
func (db *DB) Slots() *SlotStore             { return &SlotStore{db: db} }
func (db *DB) Assignments() *AssignmentStore { return &AssignmentStore{db: db} }

func copyUser(u *model.User) *model.User {
	c := *u
	if u.GoogleID != nil {
		id := *u.GoogleID
		c.GoogleID = &id
	}
	return &c
}

func copySlot(s *model.ScheduleSlot) *model.ScheduleSlot {
	c := *s
	return &c
}

func copyAssignment(a *model.Assignment) *model.Assignment {
	c := *a
	if a.AcceptedAt != nil {
		at := *a.AcceptedAt
		c.AcceptedAt = &at
	}
	c.Slot = nil
	return &c
}
