package dynschema

// Snapshot returns a deep, independent copy of a template's field list.
// It is taken exactly once, when a vacancy is created; editing the template
// afterwards must never reach into vacancies created before the edit.
func Snapshot(fields []FieldDefinition) []FieldDefinition {
	if fields == nil {
		return []FieldDefinition{}
	}
	copied := make([]FieldDefinition, len(fields))
	for i, f := range fields {
		copied[i] = f
		if f.Options != nil {
			copied[i].Options = make([]string, len(f.Options))
			copy(copied[i].Options, f.Options)
		}
	}
	return copied
}
