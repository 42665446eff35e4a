package types

import "time"

// SkillMatch is the evaluation of a single required or nice-to-have skill.
type SkillMatch struct {
	Skill      string  `json:"skill"`
	Found      bool    `json:"found"`
	Confidence float64 `json:"confidence"`
	Context    string  `json:"context,omitempty"`
	Required   bool    `json:"required"`
}

// CandidateScore is the fit of one candidate against one job.
type CandidateScore struct {
	CandidateID           string       `json:"candidateId"`
	JobID                 string       `json:"jobId"`
	OverallScore          float64      `json:"overallScore"`
	RequiredSkillsScore   float64      `json:"requiredSkillsScore"`
	ExperienceScore       float64      `json:"experienceScore"`
	EducationScore        float64      `json:"educationScore"`
	NiceToHaveScore       float64      `json:"niceToHaveScore"`
	SkillMatches          []SkillMatch `json:"skillMatches"`
	MissingRequiredSkills []string     `json:"missingRequiredSkills"`
	Recommendations       []string     `json:"recommendations"`
}

// ScoreMetadata describes how a score was produced.
type ScoreMetadata struct {
	ProcessingTimeMs     int64  `json:"processingTimeMs"`
	CorrelationID        string `json:"correlationId"`
	ModelVersion         string `json:"modelVersion"`
	AutoRejected         bool   `json:"autoRejected"`
	AutoRejectionReason  string `json:"autoRejectionReason,omitempty"`
	FallbackRequirements bool   `json:"fallbackRequirements"`
}

// ScoreRecord is a persisted score keyed by (candidate, job).
type ScoreRecord struct {
	ID        string         `json:"id"`
	Score     CandidateScore `json:"score"`
	Metadata  ScoreMetadata  `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// JobScoreFilter narrows a job's score listing.
type JobScoreFilter struct {
	MinScore *float64
	Limit    int
}
