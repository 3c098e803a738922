package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/megaschedule/megaschedule/internal/model"
)

func (s *Server) handleAvailableTeachers(c *fiber.Ctx) error {
	from, err := timeQuery(c, "start_time")
	if err != nil {
		return err
	}
	to, err := timeQuery(c, "end_time")
	if err != nil {
		return err
	}

	teachers, err := s.schedules.AvailableByTeacher(c.Context(), model.SlotWindow{From: from, To: to})
	if err != nil {
		return err
	}

	if teachers == nil {
		teachers = []*model.TeacherAvailability{}
	}
	return c.JSON(teachers)
}

func (s *Server) handleAssignClass(c *fiber.Ctx) error {
	var req createClassRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	assignment, err := s.assignments.Assign(c.Context(), req.ScheduleID, req.StudentName, currentUser(c).ID)
	if err != nil {
		return err
	}

	return c.JSON(assignment)
}

func (s *Server) handleListAllClasses(c *fiber.Ctx) error {
	teacherID, err := teacherIDQuery(c)
	if err != nil {
		return err
	}

	assignments, err := s.assignments.ListAll(c.Context(), model.AssignmentFilter{
		Status:    statusQuery(c),
		TeacherID: teacherID,
	})
	if err != nil {
		return err
	}

	return c.JSON(assignments)
}

func (s *Server) handleAllTeacherWorkTime(c *fiber.Ctx) error {
	teacherID, err := teacherIDQuery(c)
	if err != nil {
		return err
	}

	summaries, err := s.worktime.AllTeachers(c.Context(), c.QueryInt("year", 0), c.QueryInt("month", 0), teacherID)
	if err != nil {
		return err
	}

	return c.JSON(summaries)
}

func (s *Server) handleSetUserRole(c *fiber.Ctx) error {
	userID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	user, err := s.users.SetRole(c.Context(), userID, model.Role(c.Query("new_role")))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "User role updated successfully",
		"user":    user,
	})
}
