package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"apollohr/resume-screener/internal/models"
)

type AnalyzerService interface {
	// AnalyzeBatch analyzes every resume against the job description and
	// returns exactly one record per input, in completion order. A failed
	// item yields a placeholder record with Error set; it never aborts or
	// blocks its siblings.
	AnalyzeBatch(ctx context.Context, resumes map[string]string, jobDescription string, concurrency int) []models.AssessmentRecord
	GenerateInterviewGuide(ctx context.Context, candidate models.AssessmentRecord, jobDescription string) (*models.InterviewGuide, error)
}

type analyzerService struct {
	llm                LLMClient
	promptBuilder      *PromptBuilder
	logger             *zap.Logger
	defaultConcurrency int
}

func NewAnalyzerService(llm LLMClient, logger *zap.Logger, defaultConcurrency int) AnalyzerService {
	return &analyzerService{
		llm:                llm,
		promptBuilder:      NewPromptBuilder(),
		logger:             logger,
		defaultConcurrency: defaultConcurrency,
	}
}

// AnalyzeBatch implements AnalyzerService.
func (s *analyzerService) AnalyzeBatch(ctx context.Context, resumes map[string]string, jobDescription string, concurrency int) []models.AssessmentRecord {
	if concurrency <= 0 {
		concurrency = s.defaultConcurrency
	}
	if concurrency <= 0 {
		concurrency = 2
	}

	s.logger.Info("starting batch analysis",
		zap.Int("resumes", len(resumes)),
		zap.Int("concurrency", concurrency),
	)

	out := make(chan models.AssessmentRecord, len(resumes))

	var g errgroup.Group
	g.SetLimit(concurrency)

	for filename, resumeText := range resumes {
		filename, resumeText := filename, resumeText
		g.Go(func() error {
			out <- s.analyzeOne(ctx, filename, resumeText, jobDescription)
			// Per-item failures become placeholder records; the group
			// must never short-circuit.
			return nil
		})
	}

	g.Wait()
	close(out)

	results := make([]models.AssessmentRecord, 0, len(resumes))
	for record := range out {
		results = append(results, record)
	}

	s.logger.Info("batch analysis finished", zap.Int("results", len(results)))
	return results
}

func (s *analyzerService) analyzeOne(ctx context.Context, filename, resumeText, jobDescription string) models.AssessmentRecord {
	prompt := s.promptBuilder.BuildResumeAnalysisPrompt(resumeText, jobDescription)

	raw, err := s.llm.Complete(ctx, prompt, CompletionOptions{
		SystemPrompt: analysisSystemPrompt,
		Temperature:  0.1,
		MaxTokens:    3000,
	})
	if err != nil {
		s.logger.Warn("resume analysis call failed",
			zap.String("resume", filename),
			zap.Error(err),
		)
		return failedRecord(filename)
	}

	record, err := DecodeAssessment(raw)
	if err != nil {
		s.logger.Warn("resume analysis response rejected",
			zap.String("resume", filename),
			zap.Error(err),
		)
		return failedRecord(filename)
	}

	record.ResumeFilename = filename
	return *record
}

// GenerateInterviewGuide implements AnalyzerService. Single call, no retry
// beyond what the gateway client already does; the caller offers the manual
// retry.
func (s *analyzerService) GenerateInterviewGuide(ctx context.Context, candidate models.AssessmentRecord, jobDescription string) (*models.InterviewGuide, error) {
	if candidate.Failed() {
		return nil, fmt.Errorf("candidate %q has no successful assessment", candidate.CandidateName)
	}

	prompt := s.promptBuilder.BuildInterviewGuidePrompt(candidate, jobDescription)

	raw, err := s.llm.Complete(ctx, prompt, CompletionOptions{
		SystemPrompt: interviewSystemPrompt,
		Temperature:  0.3,
		MaxTokens:    3000,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate interview guide: %w", err)
	}

	guide, err := DecodeInterviewGuide(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse interview guide: %w", err)
	}

	return guide, nil
}

func failedRecord(filename string) models.AssessmentRecord {
	return models.AssessmentRecord{
		ResumeFilename: filename,
		CandidateName:  CandidateNameFromFilename(filename),
		Error:          "Failed",
	}
}

// CandidateNameFromFilename derives a display name from the file alone, used
// when the model never produced one: "Resume_Jane_Doe.txt" becomes
// "Jane Doe".
func CandidateNameFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = strings.TrimPrefix(name, "Resume_")
	return strings.ReplaceAll(name, "_", " ")
}
