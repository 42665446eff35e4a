package scoring

import (
	"testing"
	"time"

	"github.com/jonathan/resume-intake/internal/config"
	"github.com/jonathan/resume-intake/internal/types"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func newTestEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithClock(testclock.NewClock(testNow))}, opts...)...)
}

func findMatch(t *testing.T, s types.CandidateScore, skill string) types.SkillMatch {
	t.Helper()
	for _, m := range s.SkillMatches {
		if m.Skill == skill {
			return m
		}
	}
	require.Failf(t, "skill match not found", "skill %q", skill)
	return types.SkillMatch{}
}

func TestScore_EndToEndExample(t *testing.T) {
	parsed := &types.ParsedResumeData{
		PersonalInfo: types.PersonalInfo{Name: "Jane Doe"},
		Skills:       []string{"React", "Node.js"},
		Experience: []types.ExperienceEntry{
			{Company: "Acme", Position: "Engineer", StartDate: "2021-01", EndDate: "2024-01",
				Description: "Built React frontends backed by Node.js services"},
		},
	}
	reqs := types.JobRequirements{
		ID:                 "job-1",
		Title:              "Full Stack Engineer",
		RequiredSkills:     []string{"React", "Node.js"},
		MinExperienceYears: 2,
	}

	score := newTestEngine().Score(parsed, reqs)

	assert.Equal(t, "job-1", score.JobID)
	assert.InDelta(t, 100, score.RequiredSkillsScore, 0.1)
	assert.Empty(t, score.MissingRequiredSkills)
	assert.Equal(t, 100.0, score.ExperienceScore)
	assert.Equal(t, 100.0, score.OverallScore)
	require.NotEmpty(t, score.Recommendations)
	assert.Equal(t, "🌟 Strong match for Full Stack Engineer (100.0)", score.Recommendations[0])
}

func TestScore_MatchConfidenceBySource(t *testing.T) {
	parsed := &types.ParsedResumeData{
		Skills: []string{"golang"},
		Experience: []types.ExperienceEntry{
			{Company: "Acme", Skills: []string{"k8s"}, Description: "Maintained PostgreSQL clusters for billing."},
		},
		Projects: []types.ProjectEntry{
			{Name: "dotfiles", Technologies: []string{"Terraform"}},
		},
	}
	reqs := types.JobRequirements{
		RequiredSkills: []string{"Go", "Kubernetes", "terraform", "Postgres", "Rust"},
	}

	score := newTestEngine().Score(parsed, reqs)

	goMatch := findMatch(t, score, "Go")
	assert.True(t, goMatch.Found)
	assert.Equal(t, 1.0, goMatch.Confidence)
	assert.Equal(t, "Listed in skills", goMatch.Context)

	k8s := findMatch(t, score, "Kubernetes")
	assert.Equal(t, 0.9, k8s.Confidence)
	assert.Equal(t, "Used at Acme", k8s.Context)

	tf := findMatch(t, score, "terraform")
	assert.Equal(t, 0.8, tf.Confidence)
	assert.Equal(t, "Used in project dotfiles", tf.Context)

	pg := findMatch(t, score, "Postgres")
	assert.Equal(t, 0.6, pg.Confidence)
	assert.Contains(t, pg.Context, "Mentioned in experience at Acme")
	assert.Contains(t, pg.Context, "PostgreSQL")

	rust := findMatch(t, score, "Rust")
	assert.False(t, rust.Found)
	assert.Zero(t, rust.Confidence)
	assert.True(t, rust.Required)

	assert.Equal(t, []string{"Rust"}, score.MissingRequiredSkills)
	assert.InDelta(t, (1.0+0.9+0.8+0.6+0)/5*100, score.RequiredSkillsScore, 0.05)
}

func TestScore_MissingSkillsKeepDeclarationOrder(t *testing.T) {
	reqs := types.JobRequirements{RequiredSkills: []string{"Scala", "Go", "Elixir", "scala"}}

	score := newTestEngine().Score(&types.ParsedResumeData{Skills: []string{"Go"}}, reqs)

	assert.Equal(t, []string{"Scala", "Elixir"}, score.MissingRequiredSkills)
	assert.Len(t, score.SkillMatches, 3)
}

func TestScore_EmptyRequirementsScoreFull(t *testing.T) {
	score := newTestEngine().Score(&types.ParsedResumeData{}, types.JobRequirements{})

	assert.Equal(t, 100.0, score.RequiredSkillsScore)
	assert.Equal(t, 100.0, score.NiceToHaveScore)
	assert.Equal(t, 100.0, score.ExperienceScore)
	assert.Equal(t, 100.0, score.EducationScore)
	assert.Equal(t, 100.0, score.OverallScore)
	assert.NotNil(t, score.SkillMatches)
	assert.NotNil(t, score.MissingRequiredSkills)
}

func TestScore_NilResume(t *testing.T) {
	score := newTestEngine().Score(nil, types.JobRequirements{RequiredSkills: []string{"Go"}, MinExperienceYears: 2})

	assert.Equal(t, 0.0, score.RequiredSkillsScore)
	assert.Equal(t, 0.0, score.ExperienceScore)
	assert.Equal(t, []string{"Go"}, score.MissingRequiredSkills)
}

func TestScore_WeightedOverall(t *testing.T) {
	parsed := &types.ParsedResumeData{Skills: []string{"Go"}}
	reqs := types.JobRequirements{RequiredSkills: []string{"Go", "Rust"}}

	score := newTestEngine().Score(parsed, reqs)

	// 0.5*50 + 0.25*100 + 0.15*100 + 0.10*100
	assert.Equal(t, 50.0, score.RequiredSkillsScore)
	assert.Equal(t, 75.0, score.OverallScore)
}

func TestScore_CustomWeights(t *testing.T) {
	parsed := &types.ParsedResumeData{Skills: []string{"Go"}}
	reqs := types.JobRequirements{RequiredSkills: []string{"Go", "Rust", "Zig"}}

	engine := newTestEngine(WithWeights(Weights{RequiredSkills: 1}))
	score := engine.Score(parsed, reqs)

	assert.Equal(t, 33.3, score.RequiredSkillsScore)
	assert.Equal(t, 33.3, score.OverallScore)
}

func TestWithWeights_IgnoresInvalid(t *testing.T) {
	assert.Equal(t, DefaultWeights(), NewEngine(WithWeights(Weights{})).Weights())
	assert.Equal(t, DefaultWeights(), NewEngine(WithWeights(Weights{RequiredSkills: 1, Experience: -1})).Weights())
}

func TestWeightsFromConfig(t *testing.T) {
	w := WeightsFromConfig(config.ScoringConfig{
		RequiredSkillsWeight: 0.4,
		ExperienceWeight:     0.3,
		EducationWeight:      0.2,
		NiceToHaveWeight:     0.1,
	})

	assert.Equal(t, Weights{RequiredSkills: 0.4, Experience: 0.3, Education: 0.2, NiceToHave: 0.1}, w)
}

func TestScore_NiceToHave(t *testing.T) {
	parsed := &types.ParsedResumeData{Skills: []string{"Go", "Docker"}}
	reqs := types.JobRequirements{
		RequiredSkills:   []string{"Go"},
		NiceToHaveSkills: []string{"Docker", "GraphQL"},
	}

	score := newTestEngine().Score(parsed, reqs)

	assert.Equal(t, 50.0, score.NiceToHaveScore)
	assert.Empty(t, score.MissingRequiredSkills)
	docker := findMatch(t, score, "Docker")
	assert.False(t, docker.Required)
	assert.Contains(t, score.Recommendations, "⭐ Nice-to-have skills: Docker")
}

func TestScore_Recommendations(t *testing.T) {
	parsed := &types.ParsedResumeData{
		Skills: []string{"Go"},
		Experience: []types.ExperienceEntry{
			{Company: "Acme", StartDate: "2024-06", EndDate: "present"},
		},
		Education: []types.EducationEntry{
			{Institution: "State", Degree: "Associate of Arts", Field: "Music"},
		},
	}
	reqs := types.JobRequirements{
		Title:                 "Backend Engineer",
		RequiredSkills:        []string{"Go", "Kafka"},
		MinExperienceYears:    3,
		EducationRequirements: []string{"BS in Computer Science"},
	}

	score := newTestEngine().Score(parsed, reqs)

	assert.Contains(t, score.Recommendations, "❌ Missing required skills: Kafka")
	assert.Contains(t, score.Recommendations, "📈 Experience gap: 1.0 of 3 required years")
	assert.Contains(t, score.Recommendations, "🎓 Education may not meet: BS in Computer Science")
	assert.Contains(t, score.Recommendations[0], "Backend Engineer")
}

func TestOverallSummary(t *testing.T) {
	assert.Equal(t, "🌟 Strong match for SRE (85.0)", overallSummary(85, "SRE"))
	assert.Equal(t, "👍 Good match for SRE (60.0)", overallSummary(60, "SRE"))
	assert.Equal(t, "⚠️ Partial match for SRE (45.5)", overallSummary(45.5, "SRE"))
	assert.Equal(t, "🔻 Weak match for this role (10.0)", overallSummary(10, ""))
}
