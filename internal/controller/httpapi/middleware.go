package httpapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/megaschedule/megaschedule/internal/apperr"
	"github.com/megaschedule/megaschedule/internal/model"
)

const currentUserKey = "currentUser"

// requestLogger tags every request with an ID and logs its outcome.
func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := uuid.NewString()
		c.Set("X-Request-Id", requestID)

		start := time.Now()
		err := c.Next()

		s.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)

		return err
	}
}

// authRequired resolves the bearer credential into a local user, provisioning
// one on first sight, and stores it on the request context.
func (s *Server) authRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return apperr.New(apperr.CodeUnauthenticated, "missing bearer token")
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			return apperr.New(apperr.CodeUnauthenticated, "missing bearer token")
		}

		claims, err := s.verifier.Verify(c.Context(), token)
		if err != nil {
			return err
		}

		user, err := s.users.ResolveOrProvision(c.Context(), claims)
		if err != nil {
			return err
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// requireRole gates a route group to one role. Runs after authRequired.
func (s *Server) requireRole(role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := currentUser(c)
		if user == nil {
			return apperr.New(apperr.CodeUnauthenticated, "missing identity")
		}
		if user.Role != role {
			return apperr.Newf(apperr.CodeForbidden, "access denied, required role: %s", role)
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(currentUserKey).(*model.User)
	return user
}
