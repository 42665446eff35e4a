package parsing

import (
	"html"
	"strings"

	"github.com/jonathan/resume-intake/internal/types"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// sanitizeText strips any markup the model echoed from the document and
// restores the entities the policy escapes.
func sanitizeText(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<>&") {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

func sanitizeAll(values []string) []string {
	for i, v := range values {
		values[i] = sanitizeText(v)
	}
	return values
}

// sanitizeResume applies sanitizeText to every string field of r.
func sanitizeResume(r *types.ParsedResumeData) {
	p := &r.PersonalInfo
	p.Name = sanitizeText(p.Name)
	p.Email = sanitizeText(p.Email)
	p.Phone = sanitizeText(p.Phone)
	p.Location = sanitizeText(p.Location)
	p.LinkedinURL = sanitizeText(p.LinkedinURL)
	p.GithubURL = sanitizeText(p.GithubURL)
	p.PortfolioURL = sanitizeText(p.PortfolioURL)

	r.Summary = sanitizeText(r.Summary)
	r.Skills = sanitizeAll(r.Skills)
	r.Languages = sanitizeAll(r.Languages)

	for i := range r.Experience {
		e := &r.Experience[i]
		e.Company = sanitizeText(e.Company)
		e.Position = sanitizeText(e.Position)
		e.StartDate = sanitizeText(e.StartDate)
		e.EndDate = sanitizeText(e.EndDate)
		e.Description = sanitizeText(e.Description)
		e.Location = sanitizeText(e.Location)
		e.Skills = sanitizeAll(e.Skills)
	}
	for i := range r.Education {
		e := &r.Education[i]
		e.Institution = sanitizeText(e.Institution)
		e.Degree = sanitizeText(e.Degree)
		e.Field = sanitizeText(e.Field)
		e.GraduationDate = sanitizeText(e.GraduationDate)
		e.GPA = sanitizeText(e.GPA)
	}
	for i := range r.Projects {
		p := &r.Projects[i]
		p.Name = sanitizeText(p.Name)
		p.Description = sanitizeText(p.Description)
		p.URL = sanitizeText(p.URL)
		p.GithubURL = sanitizeText(p.GithubURL)
		p.Technologies = sanitizeAll(p.Technologies)
	}
	for i := range r.Certifications {
		c := &r.Certifications[i]
		c.Name = sanitizeText(c.Name)
		c.Issuer = sanitizeText(c.Issuer)
		c.IssueDate = sanitizeText(c.IssueDate)
		c.ExpirationDate = sanitizeText(c.ExpirationDate)
		c.CredentialID = sanitizeText(c.CredentialID)
		c.URL = sanitizeText(c.URL)
	}
}
