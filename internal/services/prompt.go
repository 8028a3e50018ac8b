package services

import (
	"fmt"
	"strings"

	"apollohr/resume-screener/internal/models"
)

const (
	analysisSystemPrompt  = "You are an expert HR analyst. Analyze resumes objectively."
	interviewSystemPrompt = "You are an expert interview coach."
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeAnalysisPrompt creates the scoring prompt for one resume. The
// JSON schema and the scoring thresholds are instructions to the model; the
// analyzer never re-derives or overrides the recommendation the model states.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`Analyze resume against job description.

JOB DESCRIPTION:
%s

RESUME:
%s

Provide JSON:
{
  "candidate_name": "Full name",
  "email": "Email",
  "phone": "Phone",
  "years_experience": number,
  "technical_fit_score": 0-100,
  "technical_fit_justification": "Explanation with evidence",
  "behavioral_scores": {
    "communicate_with_candor": {"score": 1-5, "justification": "Evidence"},
    "decide_and_act_with_speed": {"score": 1-5, "justification": "Evidence"},
    "innovate_and_drive_change": {"score": 1-5, "justification": "Evidence"},
    "deliver_to_win": {"score": 1-5, "justification": "Evidence"},
    "collaborate_with_a_purpose": {"score": 1-5, "justification": "Evidence"}
  },
  "overall_recommendation": "SHORTLIST" or "MAYBE" or "REJECT",
  "recommendation_justification": "Summary",
  "key_strengths": ["strength1", "strength2", "strength3"],
  "key_concerns": ["concern1", "concern2"],
  "missing_requirements": ["req1", "req2"]
}

SCORING: Tech>75 & Behavior>3.5 = SHORTLIST, Tech 60-75 = MAYBE, Tech<60 = REJECT
Return ONLY valid JSON.`, jobDescription, resumeText)
}

// BuildInterviewGuidePrompt creates the question-generation prompt for a
// candidate that already has a successful assessment.
func (pb *PromptBuilder) BuildInterviewGuidePrompt(candidate models.AssessmentRecord, jobDescription string) string {
	return fmt.Sprintf(`Generate interview questions for:

CANDIDATE:
Name: %s
Experience: %g years
Technical Fit: %d/100
Strengths: %s
Concerns: %s

JOB DESCRIPTION:
%s

JSON format:
{
  "technical_questions": [
    {"question": "Question", "why_ask": "Reason", "good_answer": "Expected"},
    ...5 questions
  ],
  "behavioral_questions": [
    {"behavior": "Behavior name", "question": "Question", "why_ask": "Reason", "good_answer": "Expected"},
    ...5 questions
  ],
  "case_study": {
    "scenario": "Problem description",
    "what_to_assess": ["skill1", "skill2"],
    "evaluation_criteria": ["criterion1", "criterion2"]
  }
}

Return ONLY valid JSON.`,
		candidate.CandidateName,
		candidate.YearsExperience,
		candidate.TechnicalFitScore,
		strings.Join(candidate.KeyStrengths, ", "),
		strings.Join(candidate.KeyConcerns, ", "),
		jobDescription,
	)
}
