package item

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownItem is returned when an item code is not registered.
var ErrUnknownItem = errors.New("unknown item code")

// Registry is the read-only item template table, indexed by code.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// LoadRegistry loads every template under dir into a new Registry.
func LoadRegistry(dir string) (*Registry, error) {
	tmpls, err := LoadTemplates(dir)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, t := range tmpls {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds t to the registry.
//
// Precondition: t must not be nil and must be valid.
// Postcondition: Template(t.Code) returns (t, true); returns error if t.Code already registered.
func (r *Registry) Register(t *Template) error {
	if _, exists := r.templates[t.Code]; exists {
		return fmt.Errorf("item code %q already registered", t.Code)
	}
	r.templates[t.Code] = t
	return nil
}

// Template returns the template for code and whether it was found.
func (r *Registry) Template(code string) (*Template, bool) {
	t, ok := r.templates[code]
	return t, ok
}

// NewItem instantiates the template registered under code.
//
// Postcondition: every call returns an Item with a distinct ID.
func (r *Registry) NewItem(code string) (*Item, error) {
	t, ok := r.templates[code]
	if !ok {
		return nil, fmt.Errorf("new item %q: %w", code, ErrUnknownItem)
	}
	return t.Instantiate(), nil
}

// MustNewItem is NewItem that panics on an unknown code.
func (r *Registry) MustNewItem(code string) *Item {
	it, err := r.NewItem(code)
	if err != nil {
		panic(err)
	}
	return it
}

// Codes returns every registered code in ascending order.
func (r *Registry) Codes() []string {
	out := make([]string, 0, len(r.templates))
	for code := range r.templates {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered templates.
func (r *Registry) Len() int { return len(r.templates) }
