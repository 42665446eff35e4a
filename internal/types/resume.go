package types

// ParsedResumeData is the structured record extracted from a resume by the model.
// Optional fields are omitted rather than guessed.
type ParsedResumeData struct {
	PersonalInfo   PersonalInfo      `json:"personalInfo"`
	Summary        string            `json:"summary,omitempty"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Skills         []string          `json:"skills"`
	Projects       []ProjectEntry    `json:"projects"`
	Certifications []Certification   `json:"certifications"`
	Languages      []string          `json:"languages"`
}

// PersonalInfo holds candidate contact details. Name is required.
type PersonalInfo struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Location     string `json:"location,omitempty"`
	LinkedinURL  string `json:"linkedinUrl,omitempty"`
	GithubURL    string `json:"githubUrl,omitempty"`
	PortfolioURL string `json:"portfolioUrl,omitempty"`
}

// ExperienceEntry is a single position held by the candidate.
type ExperienceEntry struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate,omitempty"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Location    string   `json:"location,omitempty"`
}

// EducationEntry is a degree or program attended.
type EducationEntry struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduationDate,omitempty"`
	GPA            string `json:"gpa,omitempty"`
}

// ProjectEntry is a personal or professional project.
type ProjectEntry struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
	GithubURL    string   `json:"githubUrl,omitempty"`
}

// Certification is a professional certificate.
type Certification struct {
	Name           string `json:"name"`
	Issuer         string `json:"issuer"`
	IssueDate      string `json:"issueDate,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	CredentialID   string `json:"credentialId,omitempty"`
	URL            string `json:"url,omitempty"`
}

// SkillsCount returns the number of distinct top-level skills.
func (p *ParsedResumeData) SkillsCount() int {
	if p == nil {
		return 0
	}
	return len(p.Skills)
}

// ExperienceCount returns the number of experience entries.
func (p *ParsedResumeData) ExperienceCount() int {
	if p == nil {
		return 0
	}
	return len(p.Experience)
}

// FillProfileURLs copies URLs found in the raw text into empty profile slots.
// Values the model already returned are kept.
func (p *ParsedResumeData) FillProfileURLs(urls ExtractedURLs) {
	if p == nil {
		return
	}
	if p.PersonalInfo.LinkedinURL == "" {
		p.PersonalInfo.LinkedinURL = urls.LinkedinURL
	}
	if p.PersonalInfo.GithubURL == "" {
		p.PersonalInfo.GithubURL = urls.GithubURL
	}
	if p.PersonalInfo.PortfolioURL == "" {
		p.PersonalInfo.PortfolioURL = urls.PortfolioURL
	}
}
