package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/megaschedule/megaschedule/internal/apperr"
	"github.com/megaschedule/megaschedule/internal/auth"
	"github.com/megaschedule/megaschedule/internal/model"
)

type UserService struct {
	users  UserStore
	logger *zap.Logger
}

func NewUserService(users UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// ResolveOrProvision maps verified identity-provider claims to a local user.
// Unknown emails get a fresh user with the default role; known users without
// a stored provider ID get it backfilled.
func (s *UserService) ResolveOrProvision(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if user == nil {
		user = &model.User{
			Email: claims.Email,
			Name:  claims.Name,
			Role:  model.DefaultRole,
		}
		if claims.GoogleID != "" {
			googleID := claims.GoogleID
			user.GoogleID = &googleID
		}

		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("provision user: %w", err)
		}

		s.logger.Info("User provisioned",
			zap.Int64("user_id", user.ID),
			zap.String("email", user.Email),
			zap.String("role", string(user.Role)),
		)

		return user, nil
	}

	if user.GoogleID == nil && claims.GoogleID != "" {
		if err := s.users.SetGoogleID(ctx, user.ID, claims.GoogleID); err != nil {
			return nil, fmt.Errorf("backfill google id: %w", err)
		}
		googleID := claims.GoogleID
		user.GoogleID = &googleID
	}

	return user, nil
}

// SetRole reassigns a user's role within the closed role set.
func (s *UserService) SetRole(ctx context.Context, userID int64, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, apperr.Newf(apperr.CodeInvalidRole, "invalid role %q, must be %q or %q", role, model.RoleTeacher, model.RoleDesk)
	}

	updated, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	if !updated {
		return nil, apperr.New(apperr.CodeNotFound, "user not found")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	s.logger.Info("User role updated",
		zap.Int64("user_id", userID),
		zap.String("role", string(role)),
	)

	return user, nil
}

// GetByID fetches a user, failing with NotFound when absent.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.CodeNotFound, "user not found")
	}
	return user, nil
}
