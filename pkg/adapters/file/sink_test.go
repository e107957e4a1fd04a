package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okapen/inkwell/pkg/domain"
)

func TestSink_PutTextAndRemove(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sink := NewSink(dir)

	require.NoError(t, sink.PutText(ctx, "CS101_Syllabus_Intro_DRAFT.md", "# CS101\n"))

	data, err := os.ReadFile(filepath.Join(dir, "CS101_Syllabus_Intro_DRAFT.md"))
	require.NoError(t, err)
	assert.Equal(t, "# CS101\n", string(data))

	require.NoError(t, sink.Remove(ctx, "CS101_Syllabus_Intro_DRAFT.md"))
	err = sink.Remove(ctx, "CS101_Syllabus_Intro_DRAFT.md")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestSink_PutBinary(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sink := NewSink(dir)

	require.NoError(t, sink.PutBinary(ctx, "CS101_Syllabus_Intro_FINAL.html", []byte("<html></html>")))

	data, err := os.ReadFile(filepath.Join(dir, "CS101_Syllabus_Intro_FINAL.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}

func TestSink_AccessURL(t *testing.T) {
	ctx := context.Background()
	sink := NewSink(t.TempDir())

	_, err := sink.AccessURL(ctx, "missing.md", time.Minute)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)

	require.NoError(t, sink.PutText(ctx, "present.md", "hi"))
	url, err := sink.AccessURL(ctx, "present.md", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"))
	assert.True(t, strings.HasSuffix(url, "present.md"))
}

func TestSink_EmptyLocationRejected(t *testing.T) {
	sink := NewSink(t.TempDir())
	assert.Error(t, sink.PutText(context.Background(), "", "content"))
}
