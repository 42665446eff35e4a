package scoring

import (
	"testing"

	"github.com/jonathan/resume-intake/internal/config"
	"github.com/jonathan/resume-intake/internal/types"
	"github.com/stretchr/testify/assert"
)

func requiredMatches(found ...bool) ([]types.SkillMatch, []string) {
	matches := make([]types.SkillMatch, 0, len(found))
	var missing []string
	for i, f := range found {
		name := string(rune('A' + i))
		matches = append(matches, types.SkillMatch{Skill: name, Required: true, Found: f})
		if !f {
			missing = append(missing, name)
		}
	}
	return matches, missing
}

func TestRejectionPolicy_Evaluate(t *testing.T) {
	allMissing, allMissingNames := requiredMatches(false, false)
	someMissing, someMissingNames := requiredMatches(true, false)

	tests := []struct {
		name     string
		policy   RejectionPolicy
		score    types.CandidateScore
		rejected bool
		reason   string
	}{
		{
			name:     "every required skill missing",
			policy:   RejectionPolicy{RejectMissingAllRequired: true},
			score:    types.CandidateScore{OverallScore: 50, SkillMatches: allMissing, MissingRequiredSkills: allMissingNames},
			rejected: true,
			reason:   "candidate has none of the required skills",
		},
		{
			name:   "some required skills present",
			policy: RejectionPolicy{RejectMissingAllRequired: true},
			score:  types.CandidateScore{OverallScore: 50, SkillMatches: someMissing, MissingRequiredSkills: someMissingNames},
		},
		{
			name:   "no required skills declared",
			policy: RejectionPolicy{RejectMissingAllRequired: true},
			score:  types.CandidateScore{OverallScore: 90},
		},
		{
			name:     "below threshold",
			policy:   RejectionPolicy{MinOverallScore: 40},
			score:    types.CandidateScore{OverallScore: 39.9, SkillMatches: someMissing, MissingRequiredSkills: someMissingNames},
			rejected: true,
			reason:   "overall score 39.9 is below the 40.0 threshold",
		},
		{
			name:   "at threshold",
			policy: RejectionPolicy{MinOverallScore: 40},
			score:  types.CandidateScore{OverallScore: 40},
		},
		{
			name:   "rules disabled",
			policy: RejectionPolicy{},
			score:  types.CandidateScore{OverallScore: 1, SkillMatches: allMissing, MissingRequiredSkills: allMissingNames},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.policy.Evaluate(tt.score)
			assert.Equal(t, tt.rejected, d.Rejected)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestPolicyFromConfig(t *testing.T) {
	p := PolicyFromConfig(config.ScoringConfig{AutoRejectBelow: 25})

	assert.Equal(t, RejectionPolicy{MinOverallScore: 25, RejectMissingAllRequired: true}, p)
}

func TestDecision_Apply(t *testing.T) {
	meta := types.ScoreMetadata{}
	Decision{Rejected: true, Reason: "too low"}.Apply(&meta)

	assert.True(t, meta.AutoRejected)
	assert.Equal(t, "too low", meta.AutoRejectionReason)
}
