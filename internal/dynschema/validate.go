package dynschema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError is a single validation violation against one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a candidate's free-form data payload against a field
// schema and returns every violation, in schema order, so callers can report
// all problems in one response. A nil return means the payload is valid.
//
// Required fields must be present and non-empty (nil and blank strings count
// as absent). Email and number fields get a format check when present.
// Date, select, text and textarea fields get no extra check beyond presence,
// and keys in data with no matching field definition are ignored.
func Validate(data map[string]any, fields []FieldDefinition) []FieldError {
	var violations []FieldError

	for _, field := range fields {
		value, present := data[field.Key]
		if absent(value) {
			present = false
		}

		if field.Required && !present {
			violations = append(violations, FieldError{
				Field:   field.Key,
				Message: fmt.Sprintf("Field '%s' is required", field.Key),
			})
			continue
		}

		if !present {
			continue
		}

		switch field.Type {
		case TypeEmail:
			if s, ok := value.(string); !ok || !emailPattern.MatchString(s) {
				violations = append(violations, FieldError{
					Field:   field.Key,
					Message: fmt.Sprintf("Field '%s' must be a valid email", field.Key),
				})
			}
		case TypeNumber:
			if !numeric(value) {
				violations = append(violations, FieldError{
					Field:   field.Key,
					Message: fmt.Sprintf("Field '%s' must be a number", field.Key),
				})
			}
		}
		// date, select, text, textarea: presence only. Select options are
		// declared in the schema but membership is deliberately not checked.
	}

	return violations
}

func absent(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func numeric(value any) bool {
	switch v := value.(type) {
	case float64, float32, int, int32, int64, uint, uint32, uint64:
		return true
	case json.Number:
		_, err := v.Float64()
		return err == nil
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err == nil
	default:
		return false
	}
}
