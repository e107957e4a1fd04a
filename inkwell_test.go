package inkwell_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okapen/inkwell"
	"github.com/okapen/inkwell/pkg/adapters/memory"
	"github.com/okapen/inkwell/pkg/domain"
)

// New must come up with the builtin catalog intact; the registry seeds
// the builtins itself, so the engine must not register them a second time.
func TestNew_InMemory(t *testing.T) {
	eng, err := inkwell.New(
		inkwell.WithEventLog(memory.NewLog()),
		inkwell.WithSink(memory.NewSink()),
	)
	require.NoError(t, err)

	kinds := eng.Registry().Kinds()
	assert.Equal(t, []string{"syllabus", "exam", "assignment", "lecture", "class_content", "lab"}, kinds)

	ctx := context.Background()
	created, err := eng.Create(ctx, "syllabus", domain.Identity{
		CourseCode: "CS101",
		Title:      "Intro to Programming",
	})
	require.NoError(t, err)

	status, err := eng.Status(ctx, created.SessionID)
	require.NoError(t, err)
	assert.False(t, status.Complete)
	assert.Equal(t, 4, status.RequiredTotal)
}

func TestNew_WithTemplateDir(t *testing.T) {
	dir := t.TempDir()
	memo := `kind: memo
name: Course Memo
description: Short announcement to students
skeleton: |
  # {course_code} - {title}

  {subject}
required:
  - subject
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "memo.yaml"), []byte(memo), 0o644))

	eng, err := inkwell.New(
		inkwell.WithEventLog(memory.NewLog()),
		inkwell.WithSink(memory.NewSink()),
		inkwell.WithTemplateDir(dir),
	)
	require.NoError(t, err)

	// Loaded kinds extend the builtin catalog.
	assert.Len(t, eng.Registry().Kinds(), 7)

	_, err = eng.Create(context.Background(), "memo", domain.Identity{
		CourseCode: "CS101",
		Title:      "Midterm Moved",
	})
	assert.NoError(t, err)
}
