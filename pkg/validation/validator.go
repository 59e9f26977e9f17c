package validation

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxRecords bounds a single layout run; the simulation is quadratic
	// in node count.
	MaxRecords = 2000
)

func init() {
	validate = validator.New()
}

// ValidateRecord validates a single input record against its struct tags
func ValidateRecord(r *graph.Record) error {
	if r == nil {
		return errors.New("record cannot be nil")
	}
	if err := validate.Struct(r); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateRecords validates every record and the batch size. Cross-record
// checks (unique ids, vector length) are left to graph.New.
func ValidateRecords(records []graph.Record) error {
	if len(records) > MaxRecords {
		return fmt.Errorf("too many records: maximum %d, got %d", MaxRecords, len(records))
	}
	for i := range records {
		if err := ValidateRecord(&records[i]); err != nil {
			if records[i].ID != "" {
				return fmt.Errorf("record %d (%s): %w", i, records[i].ID, err)
			}
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gte":
			return fmt.Errorf("%s: must be greater than or equal to %s", field, param)
		case "lte":
			return fmt.Errorf("%s: must be less than or equal to %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
