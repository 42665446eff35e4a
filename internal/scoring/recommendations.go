package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-intake/internal/types"
)

// Overall score bands used to summarize fit.
const (
	strongMatchScore  = 80.0
	goodMatchScore    = 60.0
	partialMatchScore = 40.0
	educationGapScore = 60.0
)

// recommend summarizes strengths and gaps as short display strings.
func recommend(s types.CandidateScore, years float64, reqs types.JobRequirements) []string {
	recs := []string{overallSummary(s.OverallScore, reqs.Title)}

	if len(s.MissingRequiredSkills) > 0 {
		recs = append(recs, "❌ Missing required skills: "+strings.Join(s.MissingRequiredSkills, ", "))
	} else if len(reqs.RequiredSkills) > 0 {
		recs = append(recs, "✅ Has all required skills")
	}

	if reqs.MinExperienceYears > 0 {
		if years < reqs.MinExperienceYears {
			recs = append(recs, fmt.Sprintf("📈 Experience gap: %.1f of %s required years",
				years, formatYears(reqs.MinExperienceYears)))
		} else {
			recs = append(recs, fmt.Sprintf("✅ Meets experience requirement: %.1f years (%s required)",
				years, formatYears(reqs.MinExperienceYears)))
		}
	}

	if len(reqs.EducationRequirements) > 0 && s.EducationScore < educationGapScore {
		recs = append(recs, "🎓 Education may not meet: "+reqs.EducationRequirements[0])
	}

	var bonus []string
	for _, m := range s.SkillMatches {
		if !m.Required && m.Found {
			bonus = append(bonus, m.Skill)
		}
	}
	if len(bonus) > 0 {
		recs = append(recs, "⭐ Nice-to-have skills: "+strings.Join(bonus, ", "))
	}

	return recs
}

func overallSummary(overall float64, title string) string {
	if title == "" {
		title = "this role"
	}
	switch {
	case overall >= strongMatchScore:
		return fmt.Sprintf("🌟 Strong match for %s (%.1f)", title, overall)
	case overall >= goodMatchScore:
		return fmt.Sprintf("👍 Good match for %s (%.1f)", title, overall)
	case overall >= partialMatchScore:
		return fmt.Sprintf("⚠️ Partial match for %s (%.1f)", title, overall)
	default:
		return fmt.Sprintf("🔻 Weak match for %s (%.1f)", title, overall)
	}
}

// formatYears prints whole years without a decimal.
func formatYears(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
