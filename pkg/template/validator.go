package template

import "github.com/okapen/inkwell/pkg/domain"

// MissingRequired returns the required fields of tmpl that are absent from
// fields, preserving the template's declaration order. Pure function.
func MissingRequired(tmpl domain.Template, fields map[string]string) []string {
	var missing []string
	for _, f := range tmpl.Required {
		if _, ok := fields[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// IsComplete reports whether every required field of tmpl has a value.
func IsComplete(tmpl domain.Template, fields map[string]string) bool {
	return len(MissingRequired(tmpl, fields)) == 0
}
