package requirements

import "github.com/jonathan/resume-intake/internal/types"

// Default values substituted for missing or malformed fields.
const (
	DefaultTitle                 = "Software Engineer"
	DefaultMinExperienceYears    = 3.0
	DefaultEducationRequirement  = "Bachelor's degree in Computer Science or related field"
	DefaultExperienceRequirement = "3+ years of professional software development experience"
)

// DefaultRequiredSkills is the required skill set of the fallback requirements.
func DefaultRequiredSkills() []string {
	return []string{"JavaScript", "TypeScript", "React", "Node.js", "SQL", "Git"}
}

// DefaultNiceToHaveSkills is the nice-to-have skill set of the fallback requirements.
func DefaultNiceToHaveSkills() []string {
	return []string{"AWS", "Docker", "GraphQL"}
}

// Fallback returns the fixed requirements used when a job cannot be resolved.
func Fallback(jobID string) types.JobRequirements {
	return types.JobRequirements{
		ID:                     jobID,
		Title:                  DefaultTitle,
		RequiredSkills:         DefaultRequiredSkills(),
		NiceToHaveSkills:       DefaultNiceToHaveSkills(),
		MinExperienceYears:     DefaultMinExperienceYears,
		EducationRequirements:  []string{DefaultEducationRequirement},
		ExperienceRequirements: []string{DefaultExperienceRequirement},
	}
}
