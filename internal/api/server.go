// ABOUTME: Fiber HTTP server exposing the dashboard as a JSON API.
// ABOUTME: One process-wide session; routes mirror the shell and MCP operations.
package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/harperreed/bbg/internal/app"
	"github.com/sirupsen/logrus"
)

// Server is the HTTP surface over an App.
type Server struct {
	app   *app.App
	log   *logrus.Entry
	fiber *fiber.App
}

// New builds the Fiber app and registers every route.
func New(a *app.App, log *logrus.Entry) *Server {
	s := &Server{
		app: a,
		log: log.WithField("component", "api"),
		fiber: fiber.New(fiber.Config{
			AppName:               "bbg",
			DisableStartupMessage: true,
			ReadTimeout:           10 * time.Second,
			WriteTimeout:          10 * time.Second,
		}),
	}

	s.fiber.Use(recover.New())
	s.fiber.Use(requestid.New())
	s.fiber.Use(s.logRequests)

	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.fiber

	r.Get("/session", s.getSession)
	r.Post("/session", s.postSession)
	r.Delete("/session", s.deleteSession)

	r.Get("/dashboard", s.getDashboard)

	r.Get("/captains", s.listCaptains)
	r.Post("/captains", s.createCaptain)
	r.Delete("/captains/:id", s.deleteCaptain)

	r.Get("/members", s.listMembers)
	r.Post("/members", s.createMember)
	r.Delete("/members/:id", s.deleteMember)

	r.Get("/equipment", s.listEquipment)
	r.Post("/equipment", s.createEquipment)
	r.Delete("/equipment/:id", s.deleteEquipment)

	r.Get("/workouts", s.listWorkouts)
	r.Post("/workouts", s.createWorkout)
	r.Delete("/workouts/:id", s.deleteWorkout)

	r.Get("/payments", s.listPayments)
	r.Post("/payments", s.createPayment)

	if m := s.app.Metrics(); m != nil {
		r.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}
}

// Handler returns the Fiber app, for tests.
func (s *Server) Handler() *fiber.App {
	return s.fiber
}

// Listen serves on addr until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errc <- s.fiber.Listen(addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		return s.fiber.ShutdownWithTimeout(5 * time.Second)
	}
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.WithFields(logrus.Fields{
		"method":     c.Method(),
		"path":       c.Path(),
		"status":     c.Response().StatusCode(),
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
		"duration":   time.Since(start).String(),
	}).Info("request")
	return err
}
