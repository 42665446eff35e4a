package requirements

import (
	"strings"

	"github.com/jonathan/resume-intake/internal/types"
	"github.com/mitchellh/mapstructure"
)

// fieldKeys lists the accepted spellings of each expected field.
var fieldKeys = map[string][]string{
	"title":                   {"title"},
	"required_skills":         {"required_skills", "requiredSkills"},
	"nice_to_have_skills":     {"nice_to_have_skills", "niceToHaveSkills"},
	"min_experience_years":    {"min_experience_years", "minExperienceYears"},
	"education_requirements":  {"education_requirements", "educationRequirements"},
	"experience_requirements": {"experience_requirements", "experienceRequirements"},
}

// lookup returns the first present spelling of field.
func lookup(fields map[string]any, field string) (any, bool) {
	for _, key := range fieldKeys[field] {
		if v, ok := fields[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// decodeStrict decodes input into out without weak type conversion.
func decodeStrict(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func stringList(fields map[string]any, field string) ([]string, bool) {
	raw, ok := lookup(fields, field)
	if !ok {
		return nil, false
	}
	var out []string
	if err := decodeStrict(raw, &out); err != nil {
		return nil, false
	}
	cleaned := make([]string, 0, len(out))
	for _, s := range out {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned, true
}

func number(fields map[string]any, field string) (float64, bool) {
	raw, ok := lookup(fields, field)
	if !ok {
		return 0, false
	}
	var out float64
	if err := decodeStrict(raw, &out); err != nil || out < 0 {
		return 0, false
	}
	return out, true
}

// extract decodes each expected field independently. Fields that are absent
// or mistyped get their default and are reported in defaulted. found counts
// the expected fields that decoded.
func extract(fields map[string]any) (reqs types.JobRequirements, defaulted []string, found int) {
	if raw, ok := lookup(fields, "title"); ok {
		var title string
		if decodeStrict(raw, &title) == nil {
			reqs.Title = strings.TrimSpace(title)
		}
	}

	lists := []struct {
		field    string
		target   *[]string
		fallback func() []string
	}{
		{"required_skills", &reqs.RequiredSkills, DefaultRequiredSkills},
		{"nice_to_have_skills", &reqs.NiceToHaveSkills, DefaultNiceToHaveSkills},
		{"education_requirements", &reqs.EducationRequirements, func() []string { return []string{DefaultEducationRequirement} }},
		{"experience_requirements", &reqs.ExperienceRequirements, func() []string { return []string{DefaultExperienceRequirement} }},
	}
	for _, l := range lists {
		if v, ok := stringList(fields, l.field); ok {
			*l.target = v
			found++
			continue
		}
		*l.target = l.fallback()
		defaulted = append(defaulted, l.field)
	}

	if years, ok := number(fields, "min_experience_years"); ok {
		reqs.MinExperienceYears = years
		found++
	} else {
		reqs.MinExperienceYears = DefaultMinExperienceYears
		defaulted = append(defaulted, "min_experience_years")
	}

	return reqs, defaulted, found
}
