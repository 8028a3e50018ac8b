package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"apollohr/resume-screener/internal/models"
	"apollohr/resume-screener/internal/repositories"
)

type SessionHandler struct {
	sessionRepo repositories.SessionRepository
}

func NewSessionHandler(sessionRepo repositories.SessionRepository) *SessionHandler {
	return &SessionHandler{
		sessionRepo: sessionRepo,
	}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	session := h.sessionRepo.Create()

	return c.Status(fiber.StatusCreated).JSON(sessionResponse(session))
}

// HandleGet handles GET /sessions/:id
func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	return c.JSON(sessionResponse(session))
}

// HandleReset handles POST /sessions/:id/reset
func (h *SessionHandler) HandleReset(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	if err := h.sessionRepo.Reset(session.ID); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	session, err = h.sessionRepo.FindByID(session.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	return c.JSON(sessionResponse(session))
}

// HandleDelete handles DELETE /sessions/:id
func (h *SessionHandler) HandleDelete(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	if err := h.sessionRepo.Delete(session.ID); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// findSession resolves the :id path parameter into a session snapshot.
// Failures come back as fiber errors for the app's central error handler.
func findSession(c *fiber.Ctx, sessionRepo repositories.SessionRepository) (*models.Session, error) {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid session ID format")
	}

	session, err := sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	return session, nil
}

func sessionResponse(session *models.Session) models.SessionResponse {
	return models.SessionResponse{
		ID:                session.ID.String(),
		HasJobDescription: session.JobDescription != "",
		ResumeCount:       len(session.Resumes),
		Analyzed:          session.Analyzed,
		ResultCount:       len(session.Results),
		CreatedAt:         session.CreatedAt,
		UpdatedAt:         session.UpdatedAt,
	}
}
