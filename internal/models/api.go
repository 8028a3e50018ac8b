package models

import "time"

type SessionResponse struct {
	ID                string    `json:"id"`
	HasJobDescription bool      `json:"has_job_description"`
	ResumeCount       int       `json:"resume_count"`
	Analyzed          bool      `json:"analyzed"`
	ResultCount       int       `json:"result_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type DocumentStatus struct {
	Filename   string `json:"filename"`
	Kind       string `json:"kind"`
	Characters int    `json:"characters"`
	Skipped    bool   `json:"skipped,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

type UploadResponse struct {
	Documents []DocumentStatus `json:"documents"`
}

type AnalyzeRequest struct {
	Concurrency int `json:"concurrency,omitempty"`
}

type ResultsSummary struct {
	Total     int `json:"total"`
	Shortlist int `json:"shortlist"`
	Maybe     int `json:"maybe"`
	Reject    int `json:"reject"`
	Failed    int `json:"failed"`
}

type AnalyzeResponse struct {
	Results []AssessmentRecord `json:"results"`
	Summary ResultsSummary     `json:"summary"`
}

// ComparisonRow is one candidate's line in the behavioral matrix. Failed
// records are excluded from the comparison.
type ComparisonRow struct {
	CandidateName   string              `json:"candidate_name"`
	ResumeFilename  string              `json:"resume_filename"`
	TechnicalFit    int                 `json:"technical_fit_score"`
	BehaviorScores  map[BehaviorKey]int `json:"behavior_scores"`
	BehaviorAverage float64             `json:"behavior_average"`
	Recommendation  Recommendation      `json:"recommendation"`
}

type ComparisonResponse struct {
	Behaviors  map[BehaviorKey]string `json:"behaviors"`
	Candidates []ComparisonRow        `json:"candidates"`
}

type InterviewRequest struct {
	CandidateName string `json:"candidate_name"`
}

type InterviewResponse struct {
	CandidateName string          `json:"candidate_name"`
	Guide         *InterviewGuide `json:"guide"`
}
