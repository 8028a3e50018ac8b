package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"apollohr/resume-screener/internal/models"
	"apollohr/resume-screener/internal/repositories"
	"apollohr/resume-screener/internal/services"
)

type AnalyzeHandler struct {
	sessionRepo repositories.SessionRepository
	analyzer    services.AnalyzerService
}

func NewAnalyzeHandler(
	sessionRepo repositories.SessionRepository,
	analyzer services.AnalyzerService,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		sessionRepo: sessionRepo,
		analyzer:    analyzer,
	}
}

// HandleAnalyze handles POST /sessions/:id/analyze. The batch runs
// synchronously; partial failure is a normal outcome and still answers 200.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	if session.JobDescription == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session has no job description")
	}
	if len(session.Resumes) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "session has no resumes")
	}

	var req models.AnalyzeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request payload")
		}
	}

	results := h.analyzer.AnalyzeBatch(c.UserContext(), session.Resumes, session.JobDescription, req.Concurrency)

	if err := h.sessionRepo.SaveResults(session.ID, results); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	return c.JSON(models.AnalyzeResponse{
		Results: results,
		Summary: summarize(results),
	})
}

// HandleGetResults handles GET /sessions/:id/results, sorted by technical
// fit for presentation; failed records go last.
func (h *AnalyzeHandler) HandleGetResults(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	if !session.Analyzed {
		return fiber.NewError(fiber.StatusConflict, "session has not been analyzed yet")
	}

	results := append([]models.AssessmentRecord(nil), session.Results...)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Failed() != results[j].Failed() {
			return !results[i].Failed()
		}
		return results[i].TechnicalFitScore > results[j].TechnicalFitScore
	})

	return c.JSON(models.AnalyzeResponse{
		Results: results,
		Summary: summarize(results),
	})
}

// HandleGetComparison handles GET /sessions/:id/comparison, the behavioral
// matrix backing side-by-side candidate charts.
func (h *AnalyzeHandler) HandleGetComparison(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if err != nil {
		return err
	}

	if !session.Analyzed {
		return fiber.NewError(fiber.StatusConflict, "session has not been analyzed yet")
	}

	behaviors := make(map[models.BehaviorKey]string, len(models.BehaviorKeys()))
	for _, key := range models.BehaviorKeys() {
		behaviors[key] = key.Label()
	}

	candidates := make([]models.ComparisonRow, 0, len(session.Results))
	for _, record := range session.Results {
		if record.Failed() {
			continue
		}

		scores := make(map[models.BehaviorKey]int, len(models.BehaviorKeys()))
		for _, key := range models.BehaviorKeys() {
			scores[key] = record.BehavioralScores[key].Score
		}

		candidates = append(candidates, models.ComparisonRow{
			CandidateName:   record.CandidateName,
			ResumeFilename:  record.ResumeFilename,
			TechnicalFit:    record.TechnicalFitScore,
			BehaviorScores:  scores,
			BehaviorAverage: record.BehaviorAverage(),
			Recommendation:  record.OverallRecommendation,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].BehaviorAverage > candidates[j].BehaviorAverage
	})

	return c.JSON(models.ComparisonResponse{
		Behaviors:  behaviors,
		Candidates: candidates,
	})
}

func summarize(results []models.AssessmentRecord) models.ResultsSummary {
	summary := models.ResultsSummary{Total: len(results)}

	for _, record := range results {
		switch {
		case record.Failed():
			summary.Failed++
		case record.OverallRecommendation == models.RecommendationShortlist:
			summary.Shortlist++
		case record.OverallRecommendation == models.RecommendationMaybe:
			summary.Maybe++
		case record.OverallRecommendation == models.RecommendationReject:
			summary.Reject++
		}
	}

	return summary
}
