package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okapen/inkwell/pkg/domain"
)

func TestNewRegistry_BuiltinCatalog(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	kinds := r.Kinds()
	assert.Equal(t, []string{"syllabus", "exam", "assignment", "lecture", "class_content", "lab"}, kinds)

	tmpl, err := r.Get("syllabus")
	require.NoError(t, err)
	assert.Equal(t, "Course Syllabus", tmpl.Name)
	assert.Equal(t, []string{"instructor_name", "semester", "credits", "description"}, tmpl.Required)
}

func TestNewRegistry_UnknownKind(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	_, err = r.Get("thesis")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestNewRegistry_DuplicateKind(t *testing.T) {
	_, err := NewRegistry(WithTemplates(domain.Template{
		Kind:     "syllabus",
		Name:     "Shadowing Syllabus",
		Skeleton: "# {course_code}\n",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate template kind")
}

func TestNewRegistry_UndeclaredPlaceholder(t *testing.T) {
	_, err := NewRegistry(WithTemplates(domain.Template{
		Kind:     "memo",
		Name:     "Memo",
		Skeleton: "# {course_code}\n{body}\n",
		Required: []string{"subject"},
	}))
	require.Error(t, err)

	var mismatch *domain.TemplateMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "memo", mismatch.Kind)
	assert.Equal(t, "body", mismatch.Placeholder)
}

func TestNewRegistry_FieldDeclaredTwice(t *testing.T) {
	_, err := NewRegistry(WithTemplates(domain.Template{
		Kind:     "memo",
		Name:     "Memo",
		Skeleton: "{subject}\n",
		Required: []string{"subject"},
		Optional: []string{"subject"},
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both required and optional")
}

func TestWithDir_LoadsYAMLTemplates(t *testing.T) {
	dir := t.TempDir()

	memo := `kind: memo
name: Course Memo
description: Short announcement to students
skeleton: |
  # {course_code} - {title}

  {subject}

  {body}
required:
  - subject
optional:
  - body
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "memo.yaml"), []byte(memo), 0o644))

	r, err := NewRegistry(WithDir(dir))
	require.NoError(t, err)

	tmpl, err := r.Get("memo")
	require.NoError(t, err)
	assert.Equal(t, "Course Memo", tmpl.Name)
	assert.Equal(t, []string{"subject"}, tmpl.Required)
	assert.Equal(t, []string{"body"}, tmpl.Optional)

	// Builtin kinds survive alongside loaded ones.
	_, err = r.Get("syllabus")
	assert.NoError(t, err)
}

func TestDescribe(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	desc, err := r.Describe("syllabus")
	require.NoError(t, err)
	assert.Equal(t, "syllabus", desc.Kind)
	assert.Equal(t, "Course Syllabus", desc.Name)
	assert.Len(t, desc.Required, 4)
	assert.Len(t, desc.Optional, 5)
	// course_code, title, and all nine fields appear in the skeleton.
	assert.Equal(t, 11, desc.SkeletonArity)
}
