// Package scoring computes how well a parsed resume fits a job's declared requirements.
package scoring

import (
	"math"

	"github.com/jonathan/resume-intake/internal/config"
	"github.com/jonathan/resume-intake/internal/types"
	"github.com/juju/clock"
)

// Weights are the relative contributions of each sub-score to the overall score.
type Weights struct {
	RequiredSkills float64
	Experience     float64
	Education      float64
	NiceToHave     float64
}

// DefaultWeights weight required skills most heavily.
func DefaultWeights() Weights {
	return Weights{
		RequiredSkills: 0.5,
		Experience:     0.25,
		Education:      0.15,
		NiceToHave:     0.10,
	}
}

// WeightsFromConfig reads weights from the scoring config section.
func WeightsFromConfig(cfg config.ScoringConfig) Weights {
	return Weights{
		RequiredSkills: cfg.RequiredSkillsWeight,
		Experience:     cfg.ExperienceWeight,
		Education:      cfg.EducationWeight,
		NiceToHave:     cfg.NiceToHaveWeight,
	}
}

func (w Weights) total() float64 {
	return w.RequiredSkills + w.Experience + w.Education + w.NiceToHave
}

func (w Weights) valid() bool {
	return w.RequiredSkills >= 0 && w.Experience >= 0 && w.Education >= 0 && w.NiceToHave >= 0 && w.total() > 0
}

// Engine scores candidates. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	weights Weights
	clock   clock.Clock
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights overrides the default weights. Invalid weights are ignored.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		if w.valid() {
			e.weights = w
		}
	}
}

// WithClock sets the clock used as "now" for open-ended experience.
func WithClock(clk clock.Clock) Option {
	return func(e *Engine) {
		if clk != nil {
			e.clock = clk
		}
	}
}

// NewEngine creates an Engine with default weights and the wall clock.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{weights: DefaultWeights(), clock: clock.WallClock}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weights returns the weights in effect.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Score evaluates parsed against reqs. CandidateID is left for the caller to set.
func (e *Engine) Score(parsed *types.ParsedResumeData, reqs types.JobRequirements) types.CandidateScore {
	if parsed == nil {
		parsed = &types.ParsedResumeData{}
	}

	profile := newCandidateProfile(parsed)
	required := profile.matchAll(reqs.RequiredSkills, true)
	niceToHave := profile.matchAll(reqs.NiceToHaveSkills, false)
	years := CandidateYears(parsed.Experience, e.clock.Now())

	score := types.CandidateScore{
		JobID:                 reqs.ID,
		RequiredSkillsScore:   round1(coverage(required)),
		ExperienceScore:       round1(experienceScore(years, reqs.MinExperienceYears)),
		EducationScore:        round1(educationScore(parsed.Education, reqs.EducationRequirements)),
		NiceToHaveScore:       round1(coverage(niceToHave)),
		SkillMatches:          append(required, niceToHave...),
		MissingRequiredSkills: missingSkills(required),
	}
	score.OverallScore = e.overall(score)
	score.Recommendations = recommend(score, years, reqs)

	return score
}

func (e *Engine) overall(s types.CandidateScore) float64 {
	w := e.weights
	sum := w.RequiredSkills*s.RequiredSkillsScore +
		w.Experience*s.ExperienceScore +
		w.Education*s.EducationScore +
		w.NiceToHave*s.NiceToHaveScore
	return round1(clamp(sum/w.total(), 0, 100))
}

// coverage is the mean match confidence as a percentage; 100 when nothing is asked for.
func coverage(matches []types.SkillMatch) float64 {
	if len(matches) == 0 {
		return 100
	}
	total := 0.0
	for _, m := range matches {
		total += m.Confidence
	}
	return total / float64(len(matches)) * 100
}

func missingSkills(required []types.SkillMatch) []string {
	missing := []string{}
	for _, m := range required {
		if !m.Found {
			missing = append(missing, m.Skill)
		}
	}
	return missing
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
