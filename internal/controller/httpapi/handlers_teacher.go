package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleCreateSchedule(c *fiber.Ctx) error {
	var req createScheduleRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	slot, err := s.schedules.Create(c.Context(), currentUser(c).ID, req.StartTime, req.EndTime, available)
	if err != nil {
		return err
	}

	return c.JSON(slot)
}

func (s *Server) handleListSchedules(c *fiber.Ctx) error {
	slots, err := s.schedules.ListForTeacher(c.Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(slots)
}

func (s *Server) handleDeleteSchedule(c *fiber.Ctx) error {
	slotID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.schedules.Delete(c.Context(), slotID, currentUser(c).ID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Schedule deleted successfully"})
}

func (s *Server) handleListClasses(c *fiber.Ctx) error {
	assignments, err := s.assignments.ListForTeacher(c.Context(), currentUser(c).ID, statusQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(assignments)
}

func (s *Server) handleListPendingClasses(c *fiber.Ctx) error {
	assignments, err := s.assignments.ListPendingForTeacher(c.Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(assignments)
}

func (s *Server) handleDecideClass(c *fiber.Ctx) error {
	assignmentID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req decideClassRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	assignment, err := s.assignments.Decide(c.Context(), assignmentID, currentUser(c).ID, *req.Accept)
	if err != nil {
		return err
	}

	return c.JSON(assignment)
}

func (s *Server) handleWorkTime(c *fiber.Ctx) error {
	summary, err := s.worktime.ForTeacher(c.Context(), currentUser(c), c.QueryInt("year", 0), c.QueryInt("month", 0))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
