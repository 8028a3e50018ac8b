package models

import (
	"time"

	"github.com/google/uuid"
)

// Session holds one screening run: the job description, the extracted resume
// texts keyed by original filename, and the analysis output. It replaces the
// process-global state of earlier iterations; everything here lives in memory
// for the lifetime of the session only.
type Session struct {
	ID             uuid.UUID
	JobDescription string
	Resumes        map[string]string
	Results        []AssessmentRecord
	Analyzed       bool
	Guides         map[string]*InterviewGuide
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
