package parsing

import "github.com/jonathan/resume-intake/internal/llm"

// ResumeSchema is the response schema sent with every parse request.
// It mirrors types.ParsedResumeData.
func ResumeSchema() *llm.Schema {
	optional := func(description string) *llm.Schema {
		s := llm.String(description)
		s.Nullable = true
		return s
	}

	return llm.Object("Structured resume data", map[string]*llm.Schema{
		"personalInfo": llm.Object("Candidate contact details", map[string]*llm.Schema{
			"name":         llm.String("Full name of the candidate"),
			"email":        optional("Email address"),
			"phone":        optional("Phone number"),
			"location":     optional("City, region or country"),
			"linkedinUrl":  optional("LinkedIn profile URL"),
			"githubUrl":    optional("GitHub profile URL"),
			"portfolioUrl": optional("Personal website or portfolio URL"),
		}, "name"),
		"summary": optional("Professional summary"),
		"experience": llm.ArrayOf("Positions, most recent first", llm.Object("", map[string]*llm.Schema{
			"company":     llm.String("Employer name"),
			"position":    llm.String("Job title"),
			"startDate":   optional("Start date, YYYY-MM when known"),
			"endDate":     optional("End date; empty for a current position"),
			"description": optional("Responsibilities and achievements"),
			"skills":      llm.StringArray("Technologies and skills used in this position"),
			"location":    optional("Work location"),
		}, "company", "position")),
		"education": llm.ArrayOf("Degrees and programs", llm.Object("", map[string]*llm.Schema{
			"institution":    llm.String("School or university"),
			"degree":         llm.String("Degree, e.g. Bachelor of Science"),
			"field":          llm.String("Field of study"),
			"graduationDate": optional("Graduation date"),
			"gpa":            optional("GPA as written"),
		})),
		"skills": llm.StringArray("Distinct skills, normalized names"),
		"projects": llm.ArrayOf("Projects", llm.Object("", map[string]*llm.Schema{
			"name":         llm.String("Project name"),
			"description":  llm.String("What the project does"),
			"technologies": llm.StringArray("Technologies used"),
			"url":          optional("Project URL"),
			"githubUrl":    optional("Repository URL"),
		})),
		"certifications": llm.ArrayOf("Certifications", llm.Object("", map[string]*llm.Schema{
			"name":           llm.String("Certification name"),
			"issuer":         llm.String("Issuing organization"),
			"issueDate":      optional("Issue date"),
			"expirationDate": optional("Expiration date"),
			"credentialId":   optional("Credential ID"),
			"url":            optional("Verification URL"),
		})),
		"languages": llm.StringArray("Spoken languages"),
	}, "personalInfo", "skills", "experience")
}
