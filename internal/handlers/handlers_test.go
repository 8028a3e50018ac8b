package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"apollohr/resume-screener/internal/models"
	"apollohr/resume-screener/internal/repositories"
	"apollohr/resume-screener/internal/services"
)

type stubAnalyzer struct {
	batchFn func(ctx context.Context, resumes map[string]string, jobDescription string, concurrency int) []models.AssessmentRecord
	guideFn func(ctx context.Context, candidate models.AssessmentRecord, jobDescription string) (*models.InterviewGuide, error)
}

func (s *stubAnalyzer) AnalyzeBatch(ctx context.Context, resumes map[string]string, jobDescription string, concurrency int) []models.AssessmentRecord {
	return s.batchFn(ctx, resumes, jobDescription, concurrency)
}

func (s *stubAnalyzer) GenerateInterviewGuide(ctx context.Context, candidate models.AssessmentRecord, jobDescription string) (*models.InterviewGuide, error) {
	return s.guideFn(ctx, candidate, jobDescription)
}

func newTestApp(t *testing.T, analyzer services.AnalyzerService) (*fiber.App, repositories.SessionRepository) {
	t.Helper()

	sessionRepo := repositories.NewSessionRepository()
	storageService := services.NewStorageService(t.TempDir())
	require.NoError(t, storageService.EnsureUploadDir())

	sessionHandler := NewSessionHandler(sessionRepo)
	uploadHandler := NewUploadHandler(sessionRepo, storageService, services.NewTextExtractor(), 1<<20, zap.NewNop())
	analyzeHandler := NewAnalyzeHandler(sessionRepo, analyzer)
	interviewHandler := NewInterviewHandler(sessionRepo, analyzer)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/sessions", sessionHandler.HandleCreate)
	api.Get("/sessions/:id", sessionHandler.HandleGet)
	api.Post("/sessions/:id/reset", sessionHandler.HandleReset)
	api.Delete("/sessions/:id", sessionHandler.HandleDelete)
	api.Post("/sessions/:id/documents", uploadHandler.HandleUpload)
	api.Post("/sessions/:id/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/sessions/:id/results", analyzeHandler.HandleGetResults)
	api.Get("/sessions/:id/comparison", analyzeHandler.HandleGetComparison)
	api.Post("/sessions/:id/interview", interviewHandler.HandleGenerate)
	api.Get("/sessions/:id/interview/:name", interviewHandler.HandleGet)

	return app, sessionRepo
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func sampleRecords() []models.AssessmentRecord {
	return []models.AssessmentRecord{
		{
			ResumeFilename:        "a.txt",
			CandidateName:         "Jane Doe",
			TechnicalFitScore:     82,
			OverallRecommendation: models.RecommendationShortlist,
			BehavioralScores: map[models.BehaviorKey]models.BehaviorScore{
				models.BehaviorCommunicateWithCandor:   {Score: 4},
				models.BehaviorDecideAndActWithSpeed:   {Score: 4},
				models.BehaviorInnovateAndDriveChange:  {Score: 4},
				models.BehaviorDeliverToWin:            {Score: 4},
				models.BehaviorCollaborateWithAPurpose: {Score: 4},
			},
		},
		{
			ResumeFilename: "b.txt",
			CandidateName:  "b",
			Error:          "Failed",
		},
	}
}

func TestSessionEndpoints(t *testing.T) {
	app, _ := newTestApp(t, &stubAnalyzer{})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	created := decodeBody[models.SessionResponse](t, resp)
	require.NotEmpty(t, created.ID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/sessions/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadDocuments(t *testing.T) {
	app, sessionRepo := newTestApp(t, &stubAnalyzer{})
	session := sessionRepo.Create()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	jd, err := writer.CreateFormFile("job_description", "jd.txt")
	require.NoError(t, err)
	io.WriteString(jd, "Senior Data Engineer role")

	r1, err := writer.CreateFormFile("resumes", "Resume_Jane_Doe.txt")
	require.NoError(t, err)
	io.WriteString(r1, "Jane Doe, 5 years Python")

	// Unsupported format: extraction yields nothing, upload reports a skip.
	r2, err := writer.CreateFormFile("resumes", "photo.docx")
	require.NoError(t, err)
	io.WriteString(r2, "binary blob")

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+session.ID.String()+"/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	upload := decodeBody[models.UploadResponse](t, resp)
	require.Len(t, upload.Documents, 3)

	byName := make(map[string]models.DocumentStatus)
	for _, doc := range upload.Documents {
		byName[doc.Filename] = doc
	}
	assert.False(t, byName["jd.txt"].Skipped)
	assert.False(t, byName["Resume_Jane_Doe.txt"].Skipped)
	assert.True(t, byName["photo.docx"].Skipped)

	found, err := sessionRepo.FindByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Data Engineer role", found.JobDescription)
	require.Len(t, found.Resumes, 1)
	assert.Equal(t, "Jane Doe, 5 years Python", found.Resumes["Resume_Jane_Doe.txt"])
}

func TestAnalyzeRequiresDocuments(t *testing.T) {
	app, sessionRepo := newTestApp(t, &stubAnalyzer{})
	session := sessionRepo.Create()

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+session.ID.String()+"/analyze", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	require.NoError(t, sessionRepo.SetJobDescription(session.ID, "jd"))
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+session.ID.String()+"/analyze", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeAndResults(t *testing.T) {
	analyzer := &stubAnalyzer{
		batchFn: func(_ context.Context, resumes map[string]string, jobDescription string, _ int) []models.AssessmentRecord {
			assert.Len(t, resumes, 2)
			assert.Equal(t, "jd text", jobDescription)
			return sampleRecords()
		},
	}

	app, sessionRepo := newTestApp(t, analyzer)
	session := sessionRepo.Create()
	require.NoError(t, sessionRepo.SetJobDescription(session.ID, "jd text"))
	require.NoError(t, sessionRepo.AddResume(session.ID, "a.txt", "resume a"))
	require.NoError(t, sessionRepo.AddResume(session.ID, "b.txt", "resume b"))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+session.ID.String()+"/analyze", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	analyzed := decodeBody[models.AnalyzeResponse](t, resp)
	assert.Len(t, analyzed.Results, 2)
	assert.Equal(t, 2, analyzed.Summary.Total)
	assert.Equal(t, 1, analyzed.Summary.Shortlist)
	assert.Equal(t, 1, analyzed.Summary.Failed)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+session.ID.String()+"/results", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	results := decodeBody[models.AnalyzeResponse](t, resp)
	require.Len(t, results.Results, 2)
	assert.Equal(t, "Jane Doe", results.Results[0].CandidateName)
	assert.True(t, results.Results[1].Failed())

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+session.ID.String()+"/comparison", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	comparison := decodeBody[models.ComparisonResponse](t, resp)
	require.Len(t, comparison.Candidates, 1)
	assert.Equal(t, "Jane Doe", comparison.Candidates[0].CandidateName)
	assert.InDelta(t, 4.0, comparison.Candidates[0].BehaviorAverage, 0.001)
	assert.Len(t, comparison.Behaviors, 5)
}

func TestResultsBeforeAnalyze(t *testing.T) {
	app, sessionRepo := newTestApp(t, &stubAnalyzer{})
	session := sessionRepo.Create()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+session.ID.String()+"/results", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+session.ID.String()+"/comparison", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestInterviewEndpoints(t *testing.T) {
	guide := &models.InterviewGuide{
		TechnicalQuestions:  []models.TechnicalQuestion{{Question: "q1"}},
		BehavioralQuestions: []models.BehavioralQuestion{{Behavior: "Deliver to Win", Question: "q2"}},
		CaseStudy:           models.CaseStudy{Scenario: "scenario"},
	}

	analyzer := &stubAnalyzer{
		guideFn: func(_ context.Context, candidate models.AssessmentRecord, _ string) (*models.InterviewGuide, error) {
			if candidate.CandidateName != "Jane Doe" {
				return nil, errors.New("unexpected candidate")
			}
			return guide, nil
		},
	}

	app, sessionRepo := newTestApp(t, analyzer)
	session := sessionRepo.Create()
	require.NoError(t, sessionRepo.SetJobDescription(session.ID, "jd"))
	require.NoError(t, sessionRepo.SaveResults(session.ID, sampleRecords()))

	base := "/api/v1/sessions/" + session.ID.String() + "/interview"

	post := func(name string) *http.Response {
		payload, _ := json.Marshal(models.InterviewRequest{CandidateName: name})
		req := httptest.NewRequest(http.MethodPost, base, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := post("Jane Doe")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	generated := decodeBody[models.InterviewResponse](t, resp)
	assert.Equal(t, "Jane Doe", generated.CandidateName)
	require.NotNil(t, generated.Guide)
	assert.Equal(t, "scenario", generated.Guide.CaseStudy.Scenario)

	// The failed record "b" has no successful assessment.
	resp = post("b")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = post("Nobody")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, base+"/Jane%20Doe", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cached := decodeBody[models.InterviewResponse](t, resp)
	assert.Equal(t, "scenario", cached.Guide.CaseStudy.Scenario)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, base+"/Nobody", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInterviewGenerationFailure(t *testing.T) {
	analyzer := &stubAnalyzer{
		guideFn: func(_ context.Context, _ models.AssessmentRecord, _ string) (*models.InterviewGuide, error) {
			return nil, errors.New("gateway down")
		},
	}

	app, sessionRepo := newTestApp(t, analyzer)
	session := sessionRepo.Create()
	require.NoError(t, sessionRepo.SaveResults(session.ID, sampleRecords()))

	payload, _ := json.Marshal(models.InterviewRequest{CandidateName: "Jane Doe"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+session.ID.String()+"/interview", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}
