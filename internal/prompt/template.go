// internal/prompt/template.go
package prompt

import (
	"regexp"
	"strings"

	commonerrors "venture-agents/internal/common/errors"
)

// Template is a named instruction template. Placeholders use the
// {{name}} form and are replaced verbatim at render time.
type Template struct {
	ID   string
	Text string
}

var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z0-9_]+)\}\}`)

// Variables returns the distinct placeholder names the template references.
func (t Template) Variables() []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range placeholderPattern.FindAllStringSubmatch(t.Text, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}
	return names
}

// Registry holds the known templates. It is populated once at startup
// and read-only afterwards, so concurrent renders need no locking.
type Registry struct {
	templates map[string]Template
}

func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Template)}
	for _, t := range builtinTemplates {
		r.Register(t)
	}
	return r
}

// NewEmptyRegistry returns a registry with no templates registered.
func NewEmptyRegistry() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

func (r *Registry) Register(t Template) {
	r.templates[t.ID] = t
}

// Get returns the template for the given id.
func (r *Registry) Get(templateID string) (Template, error) {
	t, ok := r.templates[templateID]
	if !ok {
		return Template{}, commonerrors.NewTemplateNotFoundError(templateID)
	}
	return t, nil
}

// IDs returns all registered template ids.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	return ids
}

// Render substitutes vars into the named template. Every placeholder the
// template references must be present in vars; the first missing one
// fails the whole render and no partially substituted string is ever
// returned. Extra vars are ignored. Rendering is deterministic.
func (r *Registry) Render(templateID string, vars map[string]string) (string, error) {
	t, err := r.Get(templateID)
	if err != nil {
		return "", err
	}

	for _, name := range t.Variables() {
		if _, ok := vars[name]; !ok {
			return "", commonerrors.NewMissingVariableError(templateID, name)
		}
	}

	rendered := placeholderPattern.ReplaceAllStringFunc(t.Text, func(match string) string {
		name := strings.Trim(match, "{}")
		return vars[name]
	})

	return rendered, nil
}
