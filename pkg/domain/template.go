package domain

// Reserved identity placeholders. Every skeleton may reference them; they
// are set once at session creation and never appear in Required/Optional.
const (
	FieldCourseCode = "course_code"
	FieldTitle      = "title"
)

// Template describes one document kind: an ordered markdown skeleton with
// named {placeholder} tokens, and the split between fields the caller must
// supply and fields that may be left unset.
type Template struct {
	Kind        string   `json:"kind" yaml:"kind"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Skeleton    string   `json:"skeleton" yaml:"skeleton"`
	Required    []string `json:"required" yaml:"required"`
	Optional    []string `json:"optional" yaml:"optional"`
}

// Fields returns all caller-settable field names, required first, in
// declaration order.
func (t Template) Fields() []string {
	fields := make([]string, 0, len(t.Required)+len(t.Optional))
	fields = append(fields, t.Required...)
	fields = append(fields, t.Optional...)
	return fields
}

// KnownField reports whether name is a declared required or optional field.
func (t Template) KnownField(name string) bool {
	for _, f := range t.Required {
		if f == name {
			return true
		}
	}
	for _, f := range t.Optional {
		if f == name {
			return true
		}
	}
	return false
}

// IsReserved reports whether name is one of the identity placeholders.
func IsReserved(name string) bool {
	return name == FieldCourseCode || name == FieldTitle
}
