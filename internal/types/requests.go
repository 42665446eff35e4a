package types

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ScoreResumeRequest is the body accepted by the resume scoring endpoint.
type ScoreResumeRequest struct {
	CandidateID   string `json:"candidateId" validate:"required,max=128"`
	JobID         string `json:"jobId" validate:"required,max=128"`
	FileContent   string `json:"fileContent" validate:"required"`
	FileName      string `json:"fileName" validate:"required,max=255"`
	MIMEType      string `json:"mimeType,omitempty" validate:"omitempty,max=255"`
	CorrelationID string `json:"correlationId,omitempty" validate:"omitempty,max=128"`
}

// Validate validates the ScoreResumeRequest using the validator.
func (r *ScoreResumeRequest) Validate() error {
	return validate.Struct(r)
}

// ParseResumeRequest is the body accepted by the parse-only endpoint.
type ParseResumeRequest struct {
	FileContent string `json:"fileContent" validate:"required"`
	FileName    string `json:"fileName" validate:"required,max=255"`
	MIMEType    string `json:"mimeType,omitempty" validate:"omitempty,max=255"`
}

// Validate validates the ParseResumeRequest using the validator.
func (r *ParseResumeRequest) Validate() error {
	return validate.Struct(r)
}
