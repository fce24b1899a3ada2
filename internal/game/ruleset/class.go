// Package ruleset defines playable hero classes and builds starting heroes
// from them.
package ruleset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/item"
)

// KitEntry is one line of a class's starter kit.
type KitEntry struct {
	Item  string `yaml:"item"`
	Qty   int    `yaml:"qty"`
	Equip bool   `yaml:"equip"`
}

// Class defines a playable hero class.
//
// Precondition: ID and Name must be non-empty after loading.
type Class struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Spellcaster bool             `yaml:"spellcaster"`
	Base        actor.Attributes `yaml:"base"`
	StarterKit  []KitEntry       `yaml:"starter_kit"`
}

// Validate checks the class invariants. A kit entry without qty grants one.
//
// Postcondition: Returns nil iff the class can build a hero.
func (c *Class) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if err := c.Base.Validate(); err != nil {
		errs = append(errs, err)
	}
	for i := range c.StarterKit {
		e := &c.StarterKit[i]
		if e.Item == "" {
			errs = append(errs, fmt.Errorf("starter_kit[%d]: item must not be empty", i))
		}
		if e.Qty == 0 {
			e.Qty = 1
		}
		if e.Qty < 0 {
			errs = append(errs, fmt.Errorf("starter_kit[%d]: qty must be >= 1, got %d", i, e.Qty))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("class %q: %w", c.ID, errors.Join(errs...))
	}
	return nil
}

// LoadClasses reads all .yaml files in dir and parses each as a Class.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed and validated classes (may be empty
// slice) or a non-nil error.
func LoadClasses(dir string) ([]*Class, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	classes := make([]*Class, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var c Class
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing class file %s: %w", path, err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		classes = append(classes, &c)
	}
	return classes, nil
}

// yamlFiles returns the .yaml and .yml files directly under dir.
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}

// ErrUnknownClass is returned when a class id is not registered.
var ErrUnknownClass = errors.New("unknown class")

// Registry provides lookup of classes by id.
type Registry struct {
	classes map[string]*Class
}

// NewRegistry indexes classes by id.
//
// Postcondition: Returns an error if an id repeats.
func NewRegistry(classes []*Class) (*Registry, error) {
	r := &Registry{classes: make(map[string]*Class, len(classes))}
	for _, c := range classes {
		if _, dup := r.classes[c.ID]; dup {
			return nil, fmt.Errorf("class %q already registered", c.ID)
		}
		r.classes[c.ID] = c
	}
	return r, nil
}

// LoadRegistry loads every class under dir.
func LoadRegistry(dir string) (*Registry, error) {
	classes, err := LoadClasses(dir)
	if err != nil {
		return nil, err
	}
	return NewRegistry(classes)
}

// Class returns the class registered under id.
//
// Postcondition: the error wraps ErrUnknownClass when id is not registered.
func (r *Registry) Class(id string) (*Class, error) {
	c, ok := r.classes[id]
	if !ok {
		return nil, fmt.Errorf("class %q: %w", id, ErrUnknownClass)
	}
	return c, nil
}

// IDs returns every class id in ascending order.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.classes))
	for id := range r.classes {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// CheckItems reports every starter kit code that items does not define.
func (r *Registry) CheckItems(items *item.Registry) error {
	var errs []error
	for _, id := range r.IDs() {
		for _, k := range r.classes[id].StarterKit {
			if _, ok := items.Template(k.Item); !ok {
				errs = append(errs, fmt.Errorf("class %q starter kit %q: %w", id, k.Item, item.ErrUnknownItem))
			}
		}
	}
	return errors.Join(errs...)
}
