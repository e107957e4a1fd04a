package template

import (
	"regexp"
	"strings"

	"github.com/okapen/inkwell/pkg/domain"
)

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Placeholders returns the placeholder names referenced by a skeleton, in
// order of first appearance.
func Placeholders(skeleton string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(skeleton, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Render substitutes identity and field values into the template skeleton.
// Declared fields without a value receive a visible stand-in of the form
// "[Field Name - TO BE COMPLETED]", so a partially filled draft always
// renders. A skeleton placeholder outside the declared and reserved sets
// yields a *domain.TemplateMismatchError.
//
// Rendering is deterministic: identical inputs produce identical bytes.
func Render(tmpl domain.Template, identity domain.Identity, fields map[string]string) (string, error) {
	values := make(map[string]string, len(tmpl.Required)+len(tmpl.Optional)+2)
	values[domain.FieldCourseCode] = identity.CourseCode
	values[domain.FieldTitle] = identity.Title

	for _, f := range tmpl.Fields() {
		if v, ok := fields[f]; ok {
			values[f] = v
		} else {
			values[f] = "[" + humanize(f) + " - TO BE COMPLETED]"
		}
	}

	var mismatch *domain.TemplateMismatchError
	out := placeholderRe.ReplaceAllStringFunc(tmpl.Skeleton, func(token string) string {
		name := token[1 : len(token)-1]
		v, ok := values[name]
		if !ok {
			if mismatch == nil {
				mismatch = &domain.TemplateMismatchError{Kind: tmpl.Kind, Placeholder: name}
			}
			return token
		}
		return v
	})
	if mismatch != nil {
		return "", mismatch
	}
	return out, nil
}

// humanize turns a snake_case field name into a title-cased label,
// e.g. "instructor_name" -> "Instructor Name".
func humanize(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
