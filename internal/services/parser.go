package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"apollohr/resume-screener/internal/models"
)

var validate = validator.New()

// DecodeAssessment parses the model's free-text reply into an assessment
// record. The reply is trimmed, unwrapped from a markdown code fence when
// present, then strictly decoded and validated. Anything that does not parse
// cleanly is rejected whole; callers never see a partially populated record.
func DecodeAssessment(raw string) (*models.AssessmentRecord, error) {
	payload := stripCodeFences(raw)

	var record models.AssessmentRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, fmt.Errorf("malformed assessment response: %w", err)
	}

	if err := validate.Struct(&record); err != nil {
		return nil, fmt.Errorf("invalid assessment response: %w", err)
	}

	if err := checkBehaviorKeys(record.BehavioralScores); err != nil {
		return nil, fmt.Errorf("invalid assessment response: %w", err)
	}

	return &record, nil
}

// DecodeInterviewGuide parses the model's reply into an interview guide under
// the same strict contract as DecodeAssessment.
func DecodeInterviewGuide(raw string) (*models.InterviewGuide, error) {
	payload := stripCodeFences(raw)

	var guide models.InterviewGuide
	if err := json.Unmarshal([]byte(payload), &guide); err != nil {
		return nil, fmt.Errorf("malformed interview guide response: %w", err)
	}

	if err := validate.Struct(&guide); err != nil {
		return nil, fmt.Errorf("invalid interview guide response: %w", err)
	}

	return &guide, nil
}

// stripCodeFences removes a wrapping markdown fence, tagged or bare. Models
// frequently wrap JSON output this way. Idempotent and lossless on the
// payload itself.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}

	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}

	return strings.TrimSpace(s)
}

// checkBehaviorKeys enforces the closed five-key competency set: every key
// present, nothing extra.
func checkBehaviorKeys(scores map[models.BehaviorKey]models.BehaviorScore) error {
	keys := models.BehaviorKeys()

	if len(scores) != len(keys) {
		return fmt.Errorf("behavioral_scores has %d entries, expected %d", len(scores), len(keys))
	}

	for _, key := range keys {
		if _, ok := scores[key]; !ok {
			return fmt.Errorf("behavioral_scores missing %q", key)
		}
	}

	return nil
}
