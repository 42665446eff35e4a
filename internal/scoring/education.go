package scoring

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-intake/internal/types"
)

// degreeRank maps degree types to numeric ranks for comparison
var degreeRank = map[string]int{
	"associate": 1,
	"bachelor":  2,
	"master":    3,
	"phd":       4,
}

// degreePatterns recognize degree levels in free text.
var degreePatterns = map[string]*regexp.Regexp{
	"associate": regexp.MustCompile(`(?i)(?:^|[^a-z])(?:associate(?:'?s)?|a\.a\.|a\.s\.)(?:[^a-z]|$)`),
	"bachelor":  regexp.MustCompile(`(?i)(?:^|[^a-z])(?:bachelor(?:'?s)?|undergraduate|b\.?sc?|b\.?s\.|b\.?a\.?|b\.?eng|b\.?tech)(?:[^a-z]|$)`),
	"master":    regexp.MustCompile(`(?i)(?:^|[^a-z])(?:master(?:'?s)?|graduate degree|m\.?sc?|m\.?s\.|mba|m\.?eng|m\.?tech)(?:[^a-z]|$)`),
	"phd":       regexp.MustCompile(`(?i)(?:^|[^a-z])(?:ph\.?d|doctorate|doctoral|doctor of)(?:[^a-z]|$)`),
}

// knownFields are the fields of study recognized in requirement text.
var knownFields = []string{
	"computer science",
	"software engineering",
	"computer engineering",
	"information technology",
	"information systems",
	"data science",
	"machine learning",
	"statistics",
	"mathematics",
	"physics",
	"electrical engineering",
	"economics",
	"business",
}

// relatedFields earn partial credit against each preferred field.
var relatedFields = map[string][]string{
	"computer science":       {"software engineering", "computer engineering", "information technology", "information systems", "cs"},
	"software engineering":   {"computer science", "computer engineering", "cs"},
	"computer engineering":   {"computer science", "electrical engineering", "software engineering"},
	"information technology": {"information systems", "computer science"},
	"data science":           {"statistics", "mathematics", "computer science", "machine learning"},
	"statistics":             {"mathematics", "data science", "economics"},
	"mathematics":            {"statistics", "physics", "computer science"},
	"electrical engineering": {"computer engineering", "electronics"},
}

// educationRequirement is the rule-checkable part of a free-text requirement.
type educationRequirement struct {
	MinDegree       string
	PreferredFields []string
}

// parseEducationRequirement reads the lowest acceptable degree and the named
// fields from text such as "Bachelor's or Master's in Computer Science".
func parseEducationRequirement(text string) educationRequirement {
	req := educationRequirement{}
	for degree, rank := range degreeRank {
		if !degreePatterns[degree].MatchString(text) {
			continue
		}
		if req.MinDegree == "" || rank < degreeRank[req.MinDegree] {
			req.MinDegree = degree
		}
	}

	lower := strings.ToLower(text)
	for _, field := range knownFields {
		if containsPhrase(lower, field) {
			req.PreferredFields = append(req.PreferredFields, field)
		}
	}
	return req
}

// degreeLevel returns the highest degree named in text, or "".
func degreeLevel(text string) string {
	level := ""
	for degree, rank := range degreeRank {
		if degreePatterns[degree].MatchString(text) && rank > degreeRank[level] {
			level = degree
		}
	}
	return level
}

// educationScore averages, over the requirements, the best rule score any
// education entry achieves. 100 when nothing is required.
func educationScore(education []types.EducationEntry, requirements []string) float64 {
	reqs := make([]educationRequirement, 0, len(requirements))
	for _, text := range requirements {
		if strings.TrimSpace(text) != "" {
			reqs = append(reqs, parseEducationRequirement(text))
		}
	}
	if len(reqs) == 0 {
		return 100
	}

	total := 0.0
	for _, req := range reqs {
		best := 0.0
		for _, edu := range education {
			if s := computeEducationRuleScore(edu, req); s > best {
				best = s
			}
		}
		if len(education) == 0 && !req.hasRules() {
			best = 1.0
		}
		total += best
	}
	return total / float64(len(reqs)) * 100
}

func (r educationRequirement) hasRules() bool {
	return r.MinDegree != "" || len(r.PreferredFields) > 0
}

// computeEducationRuleScore computes rule-based score for education
func computeEducationRuleScore(edu types.EducationEntry, req educationRequirement) float64 {
	if !req.hasRules() {
		return 1.0 // No requirements = full score
	}

	score := 0.0
	weights := 0.0

	// Degree level matching (60% weight)
	if req.MinDegree != "" {
		weights += 0.6
		reqRank := degreeRank[req.MinDegree]
		eduRank := degreeRank[degreeLevel(edu.Degree)]

		if eduRank >= reqRank {
			// Meets or exceeds requirement
			score += 0.6
		} else if eduRank > 0 && eduRank == reqRank-1 {
			// One level below
			score += 0.3
		}
	}

	// Field matching (40% weight)
	if len(req.PreferredFields) > 0 {
		weights += 0.4
		score += 0.4 * computeFieldMatchScore(edu.Field, req.PreferredFields)
	}

	return score / weights
}

// computeFieldMatchScore computes how well the education field matches preferred fields.
// Fields match on whole words only, so "cs" says nothing about "Physics" and a
// bare "Science" does not stand in for "computer science".
func computeFieldMatchScore(field string, preferredFields []string) float64 {
	fieldLower := strings.Join(strings.Fields(strings.ToLower(field)), " ")
	if fieldLower == "" {
		return 0
	}

	for _, preferred := range preferredFields {
		if containsPhrase(fieldLower, strings.ToLower(preferred)) {
			return 1.0
		}
	}

	for _, preferred := range preferredFields {
		for _, r := range relatedFields[strings.ToLower(preferred)] {
			if containsPhrase(fieldLower, r) {
				return 0.7 // Related field
			}
		}
	}

	return 0.2 // Unrelated field
}

// containsPhrase reports whether phrase occurs in s as whole words.
func containsPhrase(s, phrase string) bool {
	if phrase == "" {
		return false
	}
	for from := 0; from <= len(s)-len(phrase); {
		i := strings.Index(s[from:], phrase)
		if i < 0 {
			return false
		}
		start, end := from+i, from+i+len(phrase)
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		after, _ := utf8.DecodeRuneInString(s[end:])
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		from = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
