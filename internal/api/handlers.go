// ABOUTME: HTTP handlers for session, dashboard and the five collections.
// ABOUTME: Each handler decodes JSON, calls the App and renders JSON or a problem.
package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/harperreed/bbg/internal/models"
	"github.com/harperreed/bbg/internal/session"
)

type loginRequest struct {
	Role string `json:"role"`
	ID   string `json:"id"`
}

func (s *Server) getSession(c *fiber.Ctx) error {
	ident, err := s.app.Whoami()
	if errors.Is(err, session.ErrNoSession) {
		return c.JSON(fiber.Map{"logged_in": false})
	}
	if err != nil {
		return s.problem(c, err)
	}
	return c.JSON(fiber.Map{"logged_in": true, "identity": ident})
}

func (s *Server) postSession(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return s.badRequest(c, "invalid login body")
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return s.badRequest(c, err.Error())
	}
	ident, err := s.app.Login(role, req.ID)
	if err != nil {
		return s.problem(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"logged_in": true, "identity": ident})
}

func (s *Server) deleteSession(c *fiber.Ctx) error {
	s.app.Logout()
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) getDashboard(c *fiber.Ctx) error {
	stats, err := s.app.Dashboard()
	if err != nil {
		return s.problem(c, err)
	}
	return c.JSON(stats)
}

// Captains

func (s *Server) listCaptains(c *fiber.Ctx) error {
	captains, err := s.app.Captains()
	if err != nil {
		return s.problem(c, err)
	}
	return c.JSON(fiber.Map{"captains": captains})
}

func (s *Server) createCaptain(c *fiber.Ctx) error {
	var in models.CaptainInput
	if err := c.BodyParser(&in); err != nil {
		return s.badRequest(c, "invalid captain body")
	}
	created, err := s.app.AddCaptain(in)
	if err != nil {
		return s.problem(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) deleteCaptain(c *fiber.Ctx) error {
	if _, err := s.app.DeleteCaptain(c.Params("id")); err != nil {
		return s.problem(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Members

func (s *Server) listMembers(c *fiber.Ctx) error {
	members, err := s.app.Members(c.Query("q"))
	if err != nil {
		return s.problem(c, err)
	}
	return c.JSON(fiber.Map{"members": members})
}

func (s *Server) createMember(c *fiber.Ctx) error {
	var in models.MemberInput
	if err := c.BodyParser(&in); err != nil {
		return s.badRequest(c, "invalid member body")
	}
	created, err := s.app.AddMember(in)
	if err != nil {
		return s.problem(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) deleteMember(c *fiber.Ctx) error {
	_, removed, err := s.app.DeleteMember(c.Params("id"))
	if err != nil {
		return s.problem(c, err)
	}
	ids := make([]string, 0, len(removed))
	for _, w := range removed {
		ids = append(ids, w.ID)
	}
	return c.JSON(fiber.Map{"removed_workouts": ids})
}

// Equipment

func (s *Server) listEquipment(c *fiber.Ctx) error {
	items, err := s.app.Equipment()
	if err != nil {
		return s.problem(c, err)
	}
	return c.JSON(fiber.Map{"equipment": items})
}

func (s *Server) createEquipment(c *fiber.Ctx) error {
	var in models.EquipmentInput
	if err := c.BodyParser(&in); err != nil {
		return s.badRequest(c, "invalid equipment body")
	}
	created, err := s.app.AddEquipment(in)
	if err != nil {
		return s.problem(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) deleteEquipment(c *fiber.Ctx) error {
	if _, err := s.app.DeleteEquipment(c.Params("id")); err != nil {
		return s.problem(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Workouts

func (s *Server) listWorkouts(c *fiber.Ctx) error {
	workouts, err := s.app.Workouts()
	if err != nil {
		return s.problem(c, err)
	}
	return c.JSON(fiber.Map{"workouts": workouts})
}

func (s *Server) createWorkout(c *fiber.Ctx) error {
	var in models.WorkoutInput
	if err := c.BodyParser(&in); err != nil {
		return s.badRequest(c, "invalid workout body")
	}
	created, err := s.app.AddWorkout(in)
	if err != nil {
		return s.problem(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) deleteWorkout(c *fiber.Ctx) error {
	if _, err := s.app.DeleteWorkout(c.Params("id")); err != nil {
		return s.problem(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Payments

func (s *Server) listPayments(c *fiber.Ctx) error {
	payments, err := s.app.Payments(c.Query("q"))
	if err != nil {
		return s.problem(c, err)
	}
	return c.JSON(fiber.Map{"payments": payments})
}

func (s *Server) createPayment(c *fiber.Ctx) error {
	var in models.PaymentInput
	if err := c.BodyParser(&in); err != nil {
		return s.badRequest(c, "invalid payment body")
	}
	created, err := s.app.AddPayment(in)
	if err != nil {
		return s.problem(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
