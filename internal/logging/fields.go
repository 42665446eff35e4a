package logging

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared by every component.
const (
	FieldCandidateID   = "candidate_id"
	FieldJobID         = "job_id"
	FieldCorrelationID = "correlation_id"
	FieldFileName      = "file_name"
	FieldProvider      = "ai_provider"
	FieldModel         = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace and
// dropping entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	logger = OrNop(logger)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// RequestFields returns the identifying fields of one scoring request.
func RequestFields(candidateID, jobID, correlationID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCandidateID, Value: candidateID},
		StringField{Key: FieldJobID, Value: jobID},
		StringField{Key: FieldCorrelationID, Value: correlationID},
	)
}

// ModelFields returns the provider and model fields for LLM calls.
func ModelFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}
