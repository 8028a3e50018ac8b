package repositories

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apollohr/resume-screener/internal/models"
)

func TestSessionLifecycle(t *testing.T) {
	repo := NewSessionRepository()

	session := repo.Create()
	require.NotEqual(t, uuid.Nil, session.ID)

	require.NoError(t, repo.SetJobDescription(session.ID, "jd text"))
	require.NoError(t, repo.AddResume(session.ID, "a.txt", "resume a"))
	require.NoError(t, repo.AddResume(session.ID, "b.txt", "resume b"))

	found, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "jd text", found.JobDescription)
	assert.Len(t, found.Resumes, 2)
	assert.False(t, found.Analyzed)

	results := []models.AssessmentRecord{
		{ResumeFilename: "a.txt", CandidateName: "A", TechnicalFitScore: 80, OverallRecommendation: models.RecommendationShortlist},
		{ResumeFilename: "b.txt", CandidateName: "b", Error: "Failed"},
	}
	require.NoError(t, repo.SaveResults(session.ID, results))

	found, err = repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.True(t, found.Analyzed)
	assert.Len(t, found.Results, 2)

	require.NoError(t, repo.Delete(session.ID))
	_, err = repo.FindByID(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionNotFound(t *testing.T) {
	repo := NewSessionRepository()
	missing := uuid.New()

	_, err := repo.FindByID(missing)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, repo.SetJobDescription(missing, "x"), ErrSessionNotFound)
	assert.ErrorIs(t, repo.AddResume(missing, "a.txt", "x"), ErrSessionNotFound)
	assert.ErrorIs(t, repo.SaveResults(missing, nil), ErrSessionNotFound)
	assert.ErrorIs(t, repo.Reset(missing), ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(missing), ErrSessionNotFound)
}

func TestSessionReset(t *testing.T) {
	repo := NewSessionRepository()
	session := repo.Create()

	require.NoError(t, repo.SetJobDescription(session.ID, "jd"))
	require.NoError(t, repo.AddResume(session.ID, "a.txt", "text"))
	require.NoError(t, repo.SaveResults(session.ID, []models.AssessmentRecord{{ResumeFilename: "a.txt", CandidateName: "A"}}))
	require.NoError(t, repo.SaveGuide(session.ID, "A", &models.InterviewGuide{}))

	require.NoError(t, repo.Reset(session.ID))

	found, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.Empty(t, found.JobDescription)
	assert.Empty(t, found.Resumes)
	assert.Nil(t, found.Results)
	assert.False(t, found.Analyzed)

	_, err = repo.FindGuide(session.ID, "A")
	assert.ErrorIs(t, err, ErrGuideNotFound)
}

func TestSessionGuides(t *testing.T) {
	repo := NewSessionRepository()
	session := repo.Create()

	guide := &models.InterviewGuide{
		CaseStudy: models.CaseStudy{Scenario: "design an ingestion pipeline"},
	}
	require.NoError(t, repo.SaveGuide(session.ID, "Jane Doe", guide))

	found, err := repo.FindGuide(session.ID, "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "design an ingestion pipeline", found.CaseStudy.Scenario)

	_, err = repo.FindGuide(session.ID, "John Roe")
	assert.ErrorIs(t, err, ErrGuideNotFound)
}

func TestFindByIDReturnsSnapshot(t *testing.T) {
	repo := NewSessionRepository()
	session := repo.Create()
	require.NoError(t, repo.AddResume(session.ID, "a.txt", "text"))

	first, err := repo.FindByID(session.ID)
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the store.
	first.Resumes["b.txt"] = "sneaky"
	first.JobDescription = "sneaky"

	second, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.Len(t, second.Resumes, 1)
	assert.Empty(t, second.JobDescription)
}
