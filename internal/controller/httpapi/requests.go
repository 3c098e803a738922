package httpapi

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/megaschedule/megaschedule/internal/model"
)

type createScheduleRequest struct {
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	IsAvailable *bool     `json:"is_available"`
}

type createClassRequest struct {
	StudentName string `json:"student_name" validate:"required"`
	ScheduleID  int64  `json:"schedule_id" validate:"required,gt=0"`
}

type decideClassRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

// parseBody binds and validates a JSON request body.
func (s *Server) parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return s.validate.Struct(out)
}

func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name+" parameter")
	}
	return id, nil
}

func statusQuery(c *fiber.Ctx) *model.AssignmentStatus {
	if q := c.Query("status"); q != "" {
		status := model.AssignmentStatus(q)
		return &status
	}
	return nil
}

func teacherIDQuery(c *fiber.Ctx) (*int64, error) {
	q := c.Query("teacher_id")
	if q == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(q, 10, 64)
	if err != nil || id <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid teacher_id parameter")
	}
	return &id, nil
}

func timeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	q := c.Query(name)
	if q == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, q)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name+" parameter, expected RFC3339")
	}
	return &t, nil
}
