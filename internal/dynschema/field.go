// Package dynschema implements the runtime form-field schema that job
// templates define and job vacancies carry: snapshotting a template's field
// list and validating free-form candidate data against it.
package dynschema

// Supported field types for dynamic form fields.
const (
	TypeText     = "text"
	TypeEmail    = "email"
	TypeNumber   = "number"
	TypeDate     = "date"
	TypeSelect   = "select"
	TypeTextarea = "textarea"
)

var validTypes = []string{TypeText, TypeEmail, TypeNumber, TypeDate, TypeSelect, TypeTextarea}

// FieldDefinition describes a single dynamic form field. It is a value
// object, compared and copied by value. Options is only meaningful for
// select fields.
type FieldDefinition struct {
	Key      string   `json:"key"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// ValidType reports whether the field's type is one of the supported ones.
func (f FieldDefinition) ValidType() bool {
	for _, t := range validTypes {
		if f.Type == t {
			return true
		}
	}
	return false
}

// CheckFields verifies a field list is well formed: non-empty unique keys
// and known types. Used by template and vacancy write paths before saving.
func CheckFields(fields []FieldDefinition) error {
	seen := map[string]bool{}
	for _, f := range fields {
		if f.Key == "" {
			return ErrEmptyFieldKey
		}
		if seen[f.Key] {
			return &DuplicateKeyError{Key: f.Key}
		}
		seen[f.Key] = true
		if !f.ValidType() {
			return &UnknownTypeError{Key: f.Key, Type: f.Type}
		}
	}
	return nil
}
