package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"apollohr/resume-screener/internal/models"
	"apollohr/resume-screener/internal/repositories"
	"apollohr/resume-screener/internal/services"
)

type InterviewHandler struct {
	sessionRepo repositories.SessionRepository
	analyzer    services.AnalyzerService
}

func NewInterviewHandler(
	sessionRepo repositories.SessionRepository,
	analyzer services.AnalyzerService,
) *InterviewHandler {
	return &InterviewHandler{
		sessionRepo: sessionRepo,
		analyzer:    analyzer,
	}
}

// HandleGenerate handles POST /sessions/:id/interview. Generation failure is
// surfaced as an error so the operator can retry; there is no automatic
// retry beyond the gateway's own 401 handling.
func (h *InterviewHandler) HandleGenerate(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	var req models.InterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request payload")
	}
	if req.CandidateName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "candidate_name is required")
	}

	candidate, ok := findCandidate(session, req.CandidateName)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "candidate has no successful assessment in this session")
	}

	guide, err := h.analyzer.GenerateInterviewGuide(c.UserContext(), candidate, session.JobDescription)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "interview guide generation failed, please retry")
	}

	if err := h.sessionRepo.SaveGuide(session.ID, candidate.CandidateName, guide); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	return c.Status(fiber.StatusCreated).JSON(models.InterviewResponse{
		CandidateName: candidate.CandidateName,
		Guide:         guide,
	})
}

// HandleGet handles GET /sessions/:id/interview/:name, returning a guide
// generated earlier in this session.
func (h *InterviewHandler) HandleGet(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid candidate name")
	}

	guide, err := h.sessionRepo.FindGuide(session.ID, name)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "no interview guide for this candidate")
	}

	return c.JSON(models.InterviewResponse{
		CandidateName: name,
		Guide:         guide,
	})
}

func findCandidate(session *models.Session, name string) (models.AssessmentRecord, bool) {
	for _, record := range session.Results {
		if !record.Failed() && record.CandidateName == name {
			return record, true
		}
	}
	return models.AssessmentRecord{}, false
}
