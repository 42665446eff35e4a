package types

// JobRequirements are the declared requirements of a job posting used for scoring.
type JobRequirements struct {
	ID                     string   `json:"id"`
	Title                  string   `json:"title"`
	RequiredSkills         []string `json:"required_skills"`
	NiceToHaveSkills       []string `json:"nice_to_have_skills"`
	MinExperienceYears     float64  `json:"min_experience_years"`
	EducationRequirements  []string `json:"education_requirements"`
	ExperienceRequirements []string `json:"experience_requirements"`
}

// JobPosting is the stored job record requirements are resolved from.
// Content is the posting's declared requirements as raw JSON.
type JobPosting struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content []byte `json:"content"`
}
