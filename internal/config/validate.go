package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// paramRules constrain known parameters. Unknown keys pass through to the
// engine untouched.
var paramRules = map[string]string{
	"N":        "gte=0",
	"I0":       "gte=0",
	"R0":       "gte=0",
	"D":        "gte=0",
	"beta":     "gte=0",
	"gamma":    "gte=0",
	"sigma":    "gte=0",
	"mu":       "gte=0",
	"nu":       "gte=0",
	"measures": "gte=0,lte=1",
	"dt":       "gte=0",
	"T":        "gte=0",
}

// Validate checks the scenario structure and the ranges of known params.
func (s *Scenario) Validate() error {
	var problems []string

	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, e := range verrs {
			problems = append(problems, formatFieldError(strings.ToLower(e.Field()), e))
		}
	}

	for _, key := range keysOf(s.Params) {
		if v := s.Params[key]; math.IsNaN(v) || math.IsInf(v, 0) {
			problems = append(problems, fmt.Sprintf("%s must be finite", key))
			continue
		}
		rule, ok := paramRules[key]
		if !ok {
			continue
		}
		if err := validate.Var(s.Params[key], rule); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, e := range verrs {
					problems = append(problems, formatFieldError(key, e))
				}
				continue
			}
			return err
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid scenario: %s", strings.Join(problems, "; "))
	}
	return nil
}

func formatFieldError(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
