package models

type BehaviorKey string

const (
	BehaviorCommunicateWithCandor   BehaviorKey = "communicate_with_candor"
	BehaviorDecideAndActWithSpeed   BehaviorKey = "decide_and_act_with_speed"
	BehaviorInnovateAndDriveChange  BehaviorKey = "innovate_and_drive_change"
	BehaviorDeliverToWin            BehaviorKey = "deliver_to_win"
	BehaviorCollaborateWithAPurpose BehaviorKey = "collaborate_with_a_purpose"
)

// BehaviorKeys returns the closed set of behavioral competencies in display
// order. The set is fixed by the prompt contract.
func BehaviorKeys() []BehaviorKey {
	return []BehaviorKey{
		BehaviorCommunicateWithCandor,
		BehaviorDecideAndActWithSpeed,
		BehaviorInnovateAndDriveChange,
		BehaviorDeliverToWin,
		BehaviorCollaborateWithAPurpose,
	}
}

func (k BehaviorKey) Label() string {
	switch k {
	case BehaviorCommunicateWithCandor:
		return "Communicate with Candor"
	case BehaviorDecideAndActWithSpeed:
		return "Decide & Act with Speed"
	case BehaviorInnovateAndDriveChange:
		return "Innovate & Drive Change"
	case BehaviorDeliverToWin:
		return "Deliver to Win"
	case BehaviorCollaborateWithAPurpose:
		return "Collaborate with Purpose"
	}
	return string(k)
}

type Recommendation string

const (
	RecommendationShortlist Recommendation = "SHORTLIST"
	RecommendationMaybe     Recommendation = "MAYBE"
	RecommendationReject    Recommendation = "REJECT"
)

type BehaviorScore struct {
	Score         int    `json:"score" validate:"min=1,max=5"`
	Justification string `json:"justification"`
}

// AssessmentRecord is the structured outcome of analyzing one resume against
// one job description. Either Error is set and only ResumeFilename plus a
// best-effort CandidateName are meaningful, or Error is empty and every
// required field is populated. Callers must check Failed() before reading
// the semantic fields.
type AssessmentRecord struct {
	CandidateName               string                        `json:"candidate_name" validate:"required"`
	Email                       string                        `json:"email,omitempty"`
	Phone                       string                        `json:"phone,omitempty"`
	YearsExperience             float64                       `json:"years_experience" validate:"min=0"`
	TechnicalFitScore           int                           `json:"technical_fit_score" validate:"min=0,max=100"`
	TechnicalFitJustification   string                        `json:"technical_fit_justification" validate:"required"`
	BehavioralScores            map[BehaviorKey]BehaviorScore `json:"behavioral_scores,omitempty" validate:"omitempty,dive"`
	OverallRecommendation       Recommendation                `json:"overall_recommendation" validate:"required,oneof=SHORTLIST MAYBE REJECT"`
	RecommendationJustification string                        `json:"recommendation_justification"`
	KeyStrengths                []string                      `json:"key_strengths,omitempty"`
	KeyConcerns                 []string                      `json:"key_concerns,omitempty"`
	MissingRequirements         []string                      `json:"missing_requirements,omitempty"`

	// ResumeFilename is stamped by the analyzer, never by the model.
	ResumeFilename string `json:"resume_filename"`
	Error          string `json:"error,omitempty"`
}

func (r *AssessmentRecord) Failed() bool {
	return r.Error != ""
}

// BehaviorAverage returns the mean of the five behavioral scores, or 0 for
// a failed record.
func (r *AssessmentRecord) BehaviorAverage() float64 {
	if r.Failed() || len(r.BehavioralScores) == 0 {
		return 0
	}

	var sum int
	for _, key := range BehaviorKeys() {
		sum += r.BehavioralScores[key].Score
	}
	return float64(sum) / float64(len(BehaviorKeys()))
}
