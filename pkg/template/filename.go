package template

import "strings"

const maxTitleLen = 30

// Filename builds the standard artifact name for a document:
// {CourseCode}_{Kind}_{Title}_DRAFT.md, or _FINAL.md once finalized.
// The title is reduced to filesystem-safe characters and truncated.
func Filename(courseCode, kind, title string, final bool) string {
	cleanKind := strings.ReplaceAll(kind, "_", "")
	if cleanKind != "" {
		cleanKind = strings.ToUpper(cleanKind[:1]) + cleanKind[1:]
	}

	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	cleanTitle := b.String()
	if len(cleanTitle) > maxTitleLen {
		cleanTitle = cleanTitle[:maxTitleLen]
	}

	stage := "DRAFT"
	if final {
		stage = "FINAL"
	}
	return courseCode + "_" + cleanKind + "_" + cleanTitle + "_" + stage + ".md"
}
