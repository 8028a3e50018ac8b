package models

type TechnicalQuestion struct {
	Question   string `json:"question" validate:"required"`
	WhyAsk     string `json:"why_ask"`
	GoodAnswer string `json:"good_answer"`
}

type BehavioralQuestion struct {
	Behavior   string `json:"behavior" validate:"required"`
	Question   string `json:"question" validate:"required"`
	WhyAsk     string `json:"why_ask"`
	GoodAnswer string `json:"good_answer"`
}

type CaseStudy struct {
	Scenario           string   `json:"scenario" validate:"required"`
	WhatToAssess       []string `json:"what_to_assess"`
	EvaluationCriteria []string `json:"evaluation_criteria"`
}

// InterviewGuide is the question set generated for one shortlisted candidate.
type InterviewGuide struct {
	TechnicalQuestions  []TechnicalQuestion  `json:"technical_questions" validate:"required,min=1,dive"`
	BehavioralQuestions []BehavioralQuestion `json:"behavioral_questions" validate:"required,min=1,dive"`
	CaseStudy           CaseStudy            `json:"case_study" validate:"required"`
}
