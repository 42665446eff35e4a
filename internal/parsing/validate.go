package parsing

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/jonathan/resume-intake/internal/types"
)

// checkInvariants reports every required field left empty by the model.
func checkInvariants(r *types.ParsedResumeData) error {
	var result *multierror.Error

	if strings.TrimSpace(r.PersonalInfo.Name) == "" {
		result = multierror.Append(result, &ValidationError{
			Field:   "personalInfo.name",
			Message: "name is required",
		})
	}

	for i, exp := range r.Experience {
		if strings.TrimSpace(exp.Company) == "" {
			result = multierror.Append(result, &ValidationError{
				Field:   fmt.Sprintf("experience[%d].company", i),
				Message: "company is required",
			})
		}
		if strings.TrimSpace(exp.Position) == "" {
			result = multierror.Append(result, &ValidationError{
				Field:   fmt.Sprintf("experience[%d].position", i),
				Message: "position is required",
			})
		}
	}

	return result.ErrorOrNil()
}
