package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/okapen/inkwell/pkg/domain"
)

// Registry is a fixed catalog of document templates. It is built once at
// startup and offers no mutation API.
type Registry struct {
	kinds     []string
	templates map[string]domain.Template
}

// Description summarizes a template for discovery surfaces.
type Description struct {
	Kind          string   `json:"kind"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Required      []string `json:"required"`
	Optional      []string `json:"optional"`
	SkeletonArity int      `json:"skeleton_arity"`
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*registryConfig) error

type registryConfig struct {
	templates []domain.Template
}

// WithTemplates adds extra template definitions to the catalog.
func WithTemplates(tmpls ...domain.Template) RegistryOption {
	return func(c *registryConfig) error {
		c.templates = append(c.templates, tmpls...)
		return nil
	}
}

// WithDir loads additional kinds from *.yaml files in dir. Files are read
// in lexical order so the catalog order is reproducible.
func WithDir(dir string) RegistryOption {
	return func(c *registryConfig) error {
		matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
		if err != nil {
			return fmt.Errorf("failed to scan template dir: %w", err)
		}
		sort.Strings(matches)
		for _, path := range matches {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read template file %s: %w", path, err)
			}
			var tmpl domain.Template
			if err := yaml.Unmarshal(data, &tmpl); err != nil {
				return fmt.Errorf("failed to parse template file %s: %w", path, err)
			}
			c.templates = append(c.templates, tmpl)
		}
		return nil
	}
}

// NewRegistry builds a registry from the builtin catalog plus any options.
// Every template is checked for internal consistency: disjoint field sets
// and a skeleton that only references declared or reserved placeholders.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	cfg := &registryConfig{templates: Builtin()}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	r := &Registry{templates: make(map[string]domain.Template, len(cfg.templates))}
	for _, tmpl := range cfg.templates {
		if err := validateTemplate(tmpl); err != nil {
			return nil, err
		}
		if _, dup := r.templates[tmpl.Kind]; dup {
			return nil, fmt.Errorf("duplicate template kind %q", tmpl.Kind)
		}
		r.templates[tmpl.Kind] = tmpl
		r.kinds = append(r.kinds, tmpl.Kind)
	}
	return r, nil
}

// Get returns the template for kind, or domain.ErrTemplateNotFound.
func (r *Registry) Get(kind string) (domain.Template, error) {
	tmpl, ok := r.templates[kind]
	if !ok {
		return domain.Template{}, fmt.Errorf("kind %q: %w", kind, domain.ErrTemplateNotFound)
	}
	return tmpl, nil
}

// Kinds returns all known kinds in catalog order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, len(r.kinds))
	copy(kinds, r.kinds)
	return kinds
}

// Describe returns the discovery summary for kind.
func (r *Registry) Describe(kind string) (Description, error) {
	tmpl, err := r.Get(kind)
	if err != nil {
		return Description{}, err
	}
	return Description{
		Kind:          tmpl.Kind,
		Name:          tmpl.Name,
		Description:   tmpl.Description,
		Required:      tmpl.Required,
		Optional:      tmpl.Optional,
		SkeletonArity: len(Placeholders(tmpl.Skeleton)),
	}, nil
}

func validateTemplate(tmpl domain.Template) error {
	if tmpl.Kind == "" {
		return fmt.Errorf("template is missing a kind")
	}
	if tmpl.Skeleton == "" {
		return fmt.Errorf("template %q has an empty skeleton", tmpl.Kind)
	}

	seen := make(map[string]bool, len(tmpl.Required)+len(tmpl.Optional))
	for _, f := range tmpl.Required {
		if seen[f] {
			return fmt.Errorf("template %q declares field %q twice", tmpl.Kind, f)
		}
		seen[f] = true
	}
	for _, f := range tmpl.Optional {
		if seen[f] {
			return fmt.Errorf("template %q declares field %q as both required and optional", tmpl.Kind, f)
		}
		seen[f] = true
	}

	for _, ph := range Placeholders(tmpl.Skeleton) {
		if !seen[ph] && !domain.IsReserved(ph) {
			return &domain.TemplateMismatchError{Kind: tmpl.Kind, Placeholder: ph}
		}
	}
	return nil
}
