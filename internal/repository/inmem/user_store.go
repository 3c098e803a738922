package inmem

import (
	"context"
	"fmt"
	"sort"

	"github.com/megaschedule/megaschedule/internal/model"
)

type UserStore struct {
	db *DB
}

func (s *UserStore) Create(_ context.Context, user *model.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user: email already exists")
		}
	}

	s.db.userSeq++
	user.ID = s.db.userSeq
	user.CreatedAt = s.db.clock()
	user.UpdatedAt = user.CreatedAt
	s.db.users[user.ID] = copyUser(user)
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if u, ok := s.db.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, u := range s.db.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *UserStore) SetGoogleID(_ context.Context, id int64, googleID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.GoogleID = &googleID
	u.UpdatedAt = s.db.clock()
	return nil
}

func (s *UserStore) UpdateRole(_ context.Context, id int64, role model.Role) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return false, nil
	}
	u.Role = role
	u.UpdatedAt = s.db.clock()
	return true, nil
}

func (s *UserStore) ListByRole(_ context.Context, role model.Role) ([]*model.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var users []*model.User
	for _, u := range s.db.users {
		if u.Role == role {
			users = append(users, copyUser(u))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
