package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okapen/inkwell/pkg/domain"
)

var memoTmpl = domain.Template{
	Kind:     "memo",
	Name:     "Memo",
	Skeleton: "# {course_code} - {title}\n\n{subject}\n\n{body}\n",
	Required: []string{"subject"},
	Optional: []string{"body"},
}

func TestRender_FilledFields(t *testing.T) {
	out, err := Render(memoTmpl, domain.Identity{CourseCode: "CS101", Title: "Intro"}, map[string]string{
		"subject": "Midterm moved",
		"body":    "The midterm is now on Friday.",
	})
	require.NoError(t, err)
	assert.Equal(t, "# CS101 - Intro\n\nMidterm moved\n\nThe midterm is now on Friday.\n", out)
}

func TestRender_UnsetFieldsGetPlaceholders(t *testing.T) {
	out, err := Render(memoTmpl, domain.Identity{CourseCode: "CS101", Title: "Intro"}, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "[Subject - TO BE COMPLETED]")
	// Optional fields are marked too, so the draft always reads completely.
	assert.Contains(t, out, "[Body - TO BE COMPLETED]")
}

func TestRender_Deterministic(t *testing.T) {
	identity := domain.Identity{CourseCode: "CS101", Title: "Intro"}
	fields := map[string]string{"subject": "Hello"}

	first, err := Render(memoTmpl, identity, fields)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Render(memoTmpl, identity, fields)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRender_UndeclaredPlaceholder(t *testing.T) {
	broken := domain.Template{
		Kind:     "memo",
		Skeleton: "{course_code}\n{mystery}\n",
	}

	_, err := Render(broken, domain.Identity{CourseCode: "CS101"}, nil)
	require.Error(t, err)

	var mismatch *domain.TemplateMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "mystery", mismatch.Placeholder)
}

func TestRender_ValueContainingBraces(t *testing.T) {
	// A substituted value that itself looks like a placeholder must not be
	// re-expanded.
	out, err := Render(memoTmpl, domain.Identity{CourseCode: "CS101", Title: "Intro"}, map[string]string{
		"subject": "literal {body} stays",
		"body":    "actual body",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "literal {body} stays")
}

func TestPlaceholders_OrderAndDedup(t *testing.T) {
	names := Placeholders("{b} {a} {b} {c}")
	assert.Equal(t, []string{"b", "a", "c"}, names)
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Instructor Name", humanize("instructor_name"))
	assert.Equal(t, "Credits", humanize("credits"))
	assert.Equal(t, "Main Content", humanize("main_content"))
}
