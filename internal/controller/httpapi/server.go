// Package httpapi exposes the scheduling service over HTTP. Handlers stay
// thin: parse and validate input, call a service, write JSON.
package httpapi

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/megaschedule/megaschedule/internal/auth"
	"github.com/megaschedule/megaschedule/internal/model"
	"github.com/megaschedule/megaschedule/internal/service"
)

// defaultOrigins are always allowed alongside whatever FRONTEND_URLS adds.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://localhost:8080",
}

type Server struct {
	app      *fiber.App
	logger   *zap.Logger
	validate *validator.Validate

	verifier    auth.TokenVerifier
	users       *service.UserService
	schedules   *service.ScheduleService
	assignments *service.AssignmentService
	worktime    *service.WorkTimeService
}

func New(
	verifier auth.TokenVerifier,
	users *service.UserService,
	schedules *service.ScheduleService,
	assignments *service.AssignmentService,
	worktime *service.WorkTimeService,
	frontendURLs []string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		logger:      logger,
		validate:    validator.New(),
		verifier:    verifier,
		users:       users,
		schedules:   schedules,
		assignments: assignments,
		worktime:    worktime,
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "Mega Schedule API",
		ErrorHandler: s.errorHandler,
	})

	s.app.Use(s.requestLogger())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(append(append([]string{}, defaultOrigins...), frontendURLs...), ","),
		AllowCredentials: true,
	}))

	s.routes()

	return s
}

func (s *Server) routes() {
	s.app.Get("/", s.handleRoot)

	api := s.app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/me", s.authRequired(), s.handleMe)

	teacher := api.Group("/teacher", s.authRequired(), s.requireRole(model.RoleTeacher))
	teacher.Post("/schedules", s.handleCreateSchedule)
	teacher.Get("/schedules", s.handleListSchedules)
	teacher.Delete("/schedules/:id", s.handleDeleteSchedule)
	teacher.Get("/classes", s.handleListClasses)
	teacher.Get("/classes/pending", s.handleListPendingClasses)
	teacher.Post("/classes/:id/accept", s.handleDecideClass)
	teacher.Get("/worktime", s.handleWorkTime)

	desk := api.Group("/desk", s.authRequired(), s.requireRole(model.RoleDesk))
	desk.Get("/teachers/available", s.handleAvailableTeachers)
	desk.Get("/teachers/schedules", s.handleAllTeacherWorkTime)
	desk.Post("/classes", s.handleAssignClass)
	desk.Get("/classes", s.handleListAllClasses)
	desk.Patch("/users/:id/role", s.handleSetUserRole)
}

// Listen blocks serving HTTP until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
