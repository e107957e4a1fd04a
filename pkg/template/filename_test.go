package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name       string
		courseCode string
		kind       string
		title      string
		final      bool
		want       string
	}{
		{
			name:       "draft",
			courseCode: "CS101",
			kind:       "syllabus",
			title:      "Intro to Programming",
			want:       "CS101_Syllabus_Intro_to_Programming_DRAFT.md",
		},
		{
			name:       "final",
			courseCode: "CS101",
			kind:       "syllabus",
			title:      "Intro to Programming",
			final:      true,
			want:       "CS101_Syllabus_Intro_to_Programming_FINAL.md",
		},
		{
			name:       "kind underscores collapse",
			courseCode: "CS200",
			kind:       "class_content",
			title:      "Week 1",
			want:       "CS200_Classcontent_Week_1_DRAFT.md",
		},
		{
			name:       "unsafe characters dropped",
			courseCode: "CS300",
			kind:       "exam",
			title:      "Final: Part/2 (v1.5)",
			want:       "CS300_Exam_Final_Part2_v15_DRAFT.md",
		},
		{
			name:       "long title truncated",
			courseCode: "CS400",
			kind:       "lab",
			title:      "An Exceedingly Verbose Laboratory Session Title",
			want:       "CS400_Lab_An_Exceedingly_Verbose_Laborat_DRAFT.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filename(tt.courseCode, tt.kind, tt.title, tt.final)
			assert.Equal(t, tt.want, got)
		})
	}
}
