package parsing

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-intake/internal/types"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":              "Go",
	"go lang":             "Go",
	"javascript":          "JavaScript",
	"js":                  "JavaScript",
	"ecmascript":          "JavaScript",
	"typescript":          "TypeScript",
	"ts":                  "TypeScript",
	"k8s":                 "Kubernetes",
	"kubernetes":          "Kubernetes",
	"react":               "React",
	"react.js":            "React",
	"reactjs":             "React",
	"react js":            "React",
	"vue.js":              "Vue",
	"vuejs":               "Vue",
	"angular.js":          "Angular",
	"angularjs":           "Angular",
	"node":                "Node.js",
	"node.js":             "Node.js",
	"nodejs":              "Node.js",
	"node js":             "Node.js",
	"next.js":             "Next.js",
	"nextjs":              "Next.js",
	"express.js":          "Express",
	"expressjs":           "Express",
	"postgres":            "PostgreSQL",
	"postgresql":          "PostgreSQL",
	"psql":                "PostgreSQL",
	"mysql":               "MySQL",
	"mongo":               "MongoDB",
	"mongodb":             "MongoDB",
	"aws":                 "AWS",
	"amazon web services": "AWS",
	"gcp":                 "GCP",
	"google cloud":        "GCP",
	"docker":              "Docker",
	"graphql":             "GraphQL",
	"sql":                 "SQL",
	"git":                 "Git",
	"html5":               "HTML",
	"css3":                "CSS",
	"c#":                  "C#",
	"csharp":              "C#",
	"c++":                 "C++",
	"cpp":                 "C++",
	"python":              "Python",
	"python3":             "Python",
	"py":                  "Python",
	"ci/cd":               "CI/CD",
	"rest":                "REST",
	"restful":             "REST",
	"rest api":            "REST",
	"rest apis":           "REST",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	normalized := strings.Join(strings.Fields(skillName), " ")
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// Mixed case is taken as intentional (e.g. "FastAPI", "gRPC")
	if normalized != strings.ToUpper(normalized) && normalized != strings.ToLower(normalized) {
		return normalized
	}

	// All lowercase single word: capitalize first letter
	if normalized == lower && !strings.Contains(normalized, " ") {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// SkillVariants returns the canonical name of skill followed by every known
// spelling that normalizes to it, in sorted order.
func SkillVariants(skill string) []string {
	canonical := NormalizeSkillName(skill)
	if canonical == "" {
		return nil
	}

	variants := []string{}
	for variant, name := range skillNormalizations {
		if name == canonical && !strings.EqualFold(variant, canonical) {
			variants = append(variants, variant)
		}
	}
	sort.Strings(variants)
	return append([]string{canonical}, variants...)
}

// NormalizeSkills canonicalizes names and removes duplicates, keeping first occurrence order.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		name := NormalizeSkillName(skill)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

// dedupeStrings trims entries and removes case-insensitive duplicates.
func dedupeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// normalizeResume canonicalizes skill names throughout the record and makes
// every collection non-nil.
func normalizeResume(r *types.ParsedResumeData) {
	r.Skills = NormalizeSkills(r.Skills)
	r.Languages = dedupeStrings(r.Languages)

	if r.Experience == nil {
		r.Experience = []types.ExperienceEntry{}
	}
	for i := range r.Experience {
		r.Experience[i].Skills = NormalizeSkills(r.Experience[i].Skills)
	}

	if r.Projects == nil {
		r.Projects = []types.ProjectEntry{}
	}
	for i := range r.Projects {
		r.Projects[i].Technologies = NormalizeSkills(r.Projects[i].Technologies)
	}

	if r.Education == nil {
		r.Education = []types.EducationEntry{}
	}
	if r.Certifications == nil {
		r.Certifications = []types.Certification{}
	}
}
