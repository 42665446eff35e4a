package scoring

import (
	"fmt"

	"github.com/jonathan/resume-intake/internal/config"
	"github.com/jonathan/resume-intake/internal/types"
)

// RejectionPolicy decides whether a score is flagged for automatic rejection.
type RejectionPolicy struct {
	// MinOverallScore rejects scores below it. 0 disables the threshold.
	MinOverallScore float64
	// RejectMissingAllRequired rejects a candidate lacking every required skill.
	RejectMissingAllRequired bool
}

// Decision is the outcome of a RejectionPolicy.
type Decision struct {
	Rejected bool
	Reason   string
}

// PolicyFromConfig builds the policy from the scoring config section.
func PolicyFromConfig(cfg config.ScoringConfig) RejectionPolicy {
	return RejectionPolicy{
		MinOverallScore:          cfg.AutoRejectBelow,
		RejectMissingAllRequired: true,
	}
}

// Evaluate applies the policy to s.
func (p RejectionPolicy) Evaluate(s types.CandidateScore) Decision {
	if p.RejectMissingAllRequired {
		required := 0
		for _, m := range s.SkillMatches {
			if m.Required {
				required++
			}
		}
		if required > 0 && len(s.MissingRequiredSkills) == required {
			return Decision{Rejected: true, Reason: "candidate has none of the required skills"}
		}
	}

	if p.MinOverallScore > 0 && s.OverallScore < p.MinOverallScore {
		return Decision{
			Rejected: true,
			Reason:   fmt.Sprintf("overall score %.1f is below the %.1f threshold", s.OverallScore, p.MinOverallScore),
		}
	}

	return Decision{}
}

// Apply records the decision in metadata.
func (d Decision) Apply(meta *types.ScoreMetadata) {
	meta.AutoRejected = d.Rejected
	meta.AutoRejectionReason = d.Reason
}
