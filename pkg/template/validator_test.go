package template

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okapen/inkwell/pkg/domain"
)

func TestMissingRequired_PreservesDeclarationOrder(t *testing.T) {
	tmpl := domain.Template{
		Kind:     "memo",
		Skeleton: "x",
		Required: []string{"alpha", "beta", "gamma"},
	}

	missing := MissingRequired(tmpl, map[string]string{"beta": "set"})
	assert.Equal(t, []string{"alpha", "gamma"}, missing)
}

func TestMissingRequired_IgnoresOptional(t *testing.T) {
	tmpl := domain.Template{
		Kind:     "memo",
		Skeleton: "x",
		Required: []string{"alpha"},
		Optional: []string{"beta"},
	}

	assert.Equal(t, []string{"alpha"}, MissingRequired(tmpl, nil))
	assert.Empty(t, MissingRequired(tmpl, map[string]string{"alpha": "set"}))
}

func TestIsComplete(t *testing.T) {
	tmpl := domain.Template{
		Kind:     "memo",
		Skeleton: "x",
		Required: []string{"alpha", "beta"},
		Optional: []string{"gamma"},
	}

	assert.False(t, IsComplete(tmpl, nil))
	assert.False(t, IsComplete(tmpl, map[string]string{"alpha": "a"}))
	assert.True(t, IsComplete(tmpl, map[string]string{"alpha": "a", "beta": "b"}))
}
