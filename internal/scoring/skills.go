package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-intake/internal/parsing"
	"github.com/jonathan/resume-intake/internal/types"
)

// Match confidence by where a skill was found.
const (
	confidenceListed     = 1.0
	confidenceExperience = 0.9
	confidenceProject    = 0.8
	confidenceMention    = 0.6
)

// snippetRadius is how many bytes of text surround a mention in its context snippet.
const snippetRadius = 40

// minAliasLength keeps short variants like "js" out of free-text search.
const minAliasLength = 3

type textSource struct {
	label string
	text  string
}

// candidateProfile indexes a resume for skill lookups. Keys are lowercased canonical names.
type candidateProfile struct {
	skills           map[string]bool
	experienceSkills map[string]string // key -> company
	projectSkills    map[string]string // key -> project name
	texts            []textSource
}

func skillKey(skill string) string {
	return strings.ToLower(parsing.NormalizeSkillName(skill))
}

func newCandidateProfile(p *types.ParsedResumeData) *candidateProfile {
	c := &candidateProfile{
		skills:           make(map[string]bool, len(p.Skills)),
		experienceSkills: make(map[string]string),
		projectSkills:    make(map[string]string),
	}

	for _, s := range p.Skills {
		if key := skillKey(s); key != "" {
			c.skills[key] = true
		}
	}

	if strings.TrimSpace(p.Summary) != "" {
		c.texts = append(c.texts, textSource{label: "summary", text: p.Summary})
	}

	for _, exp := range p.Experience {
		for _, s := range exp.Skills {
			key := skillKey(s)
			if _, seen := c.experienceSkills[key]; key != "" && !seen {
				c.experienceSkills[key] = exp.Company
			}
		}
		if strings.TrimSpace(exp.Description) != "" {
			c.texts = append(c.texts, textSource{label: "experience at " + exp.Company, text: exp.Description})
		}
	}

	for _, proj := range p.Projects {
		for _, s := range proj.Technologies {
			key := skillKey(s)
			if _, seen := c.projectSkills[key]; key != "" && !seen {
				c.projectSkills[key] = proj.Name
			}
		}
		if strings.TrimSpace(proj.Description) != "" {
			c.texts = append(c.texts, textSource{label: "project " + proj.Name, text: proj.Description})
		}
	}

	return c
}

// matchAll evaluates skills in declaration order, skipping blanks and duplicates.
func (c *candidateProfile) matchAll(skills []string, required bool) []types.SkillMatch {
	matches := make([]types.SkillMatch, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		key := skillKey(skill)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		matches = append(matches, c.match(skill, required))
	}
	return matches
}

func (c *candidateProfile) match(skill string, required bool) types.SkillMatch {
	m := types.SkillMatch{Skill: skill, Required: required}
	key := skillKey(skill)

	found := func(confidence float64, context string) types.SkillMatch {
		m.Found = true
		m.Confidence = confidence
		m.Context = context
		return m
	}

	if c.skills[key] {
		return found(confidenceListed, "Listed in skills")
	}
	if company, ok := c.experienceSkills[key]; ok {
		if company == "" {
			return found(confidenceExperience, "Used in work experience")
		}
		return found(confidenceExperience, "Used at "+company)
	}
	if project, ok := c.projectSkills[key]; ok {
		if project == "" {
			return found(confidenceProject, "Used in a project")
		}
		return found(confidenceProject, "Used in project "+project)
	}
	if context, ok := c.mention(skill); ok {
		return found(confidenceMention, context)
	}

	return m
}

// mention searches free text for skill or any of its known spellings.
func (c *candidateProfile) mention(skill string) (string, bool) {
	if len(c.texts) == 0 {
		return "", false
	}

	variants := parsing.SkillVariants(skill)
	patterns := make([]*regexp.Regexp, 0, len(variants))
	for i, v := range variants {
		switch {
		case len(v) >= minAliasLength:
			patterns = append(patterns, termPattern(v))
		case i == 0:
			patterns = append(patterns, exactTermPattern(v))
		}
	}

	for _, src := range c.texts {
		for _, re := range patterns {
			loc := re.FindStringSubmatchIndex(src.text)
			if loc == nil {
				continue
			}
			return "Mentioned in " + src.label + ": " + snippet(src.text, loc[2], loc[3]), true
		}
	}
	return "", false
}

// termPattern matches term as a whole word. Characters such as '+' and '#' count
// as part of a word so "C" does not match inside "C++" or "C#".
func termPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + wordPattern(term))
}

// exactTermPattern is termPattern with case preserved. Short names such as
// "Go" or "R" are ordinary words in lowercase prose.
func exactTermPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(wordPattern(term))
}

func wordPattern(term string) string {
	return `(?:^|[^\pL\pN_+#])(` + regexp.QuoteMeta(term) + `)(?:$|[^\pL\pN_+#])`
}

// snippet returns the text around [start, end) with collapsed whitespace.
func snippet(text string, start, end int) string {
	from := max(0, start-snippetRadius)
	to := min(len(text), end+snippetRadius)
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}

	s := strings.Join(strings.Fields(text[from:to]), " ")
	if from > 0 {
		s = "..." + s
	}
	if to < len(text) {
		s += "..."
	}
	return s
}
