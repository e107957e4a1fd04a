// Package template provides the document template registry, the
// required-field validator, and the deterministic content renderer.
//
// A template is pure data (skeleton + field lists), so new document kinds
// can be added from YAML files without touching the renderer or validator.
package template
