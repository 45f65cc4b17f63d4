// Package entity declares the console's entities: where their grid and
// CRUD endpoints live and how an API view model maps to a form value and
// back.
package entity

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/faciam-dev/atelie/pkg/cfg"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Meta locates an entity on the backend.
type Meta struct {
	Key        string `yaml:"key"`
	Label      string `yaml:"label"`
	Resource   string `yaml:"resource"`
	Identifier string `yaml:"identifier"`
	PageSize   int    `yaml:"pageSize"`
}

type catalogFile struct {
	Entities []Meta `yaml:"entities"`
}

// ParseCatalog decodes and checks a catalog document. A missing page size
// becomes cfg.DefaultPageSize.
func ParseCatalog(b []byte) ([]Meta, error) {
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	seen := map[string]bool{}
	for i := range f.Entities {
		m := &f.Entities[i]
		if m.Key == "" || m.Resource == "" || m.Identifier == "" {
			return nil, fmt.Errorf("catalog entry %d: key, resource and identifier are required", i)
		}
		if seen[m.Key] {
			return nil, fmt.Errorf("catalog entry %d: duplicate key %q", i, m.Key)
		}
		seen[m.Key] = true
		if m.PageSize <= 0 {
			m.PageSize = cfg.DefaultPageSize
		}
	}
	return f.Entities, nil
}

var catalog = mustLoad()

func mustLoad() []Meta {
	metas, err := ParseCatalog(catalogYAML)
	if err != nil {
		panic(err)
	}
	return metas
}

// Catalog returns the entities in display order.
func Catalog() []Meta {
	return append([]Meta(nil), catalog...)
}

// Lookup finds an entity by key.
func Lookup(key string) (Meta, bool) {
	for _, m := range catalog {
		if m.Key == key {
			return m, true
		}
	}
	return Meta{}, false
}

func mustLookup(key string) Meta {
	m, ok := Lookup(key)
	if !ok {
		panic("entity: " + key + " missing from catalog")
	}
	return m
}

// Directory returns the grid query of m bound to q.
func (m Meta) Directory(q cfg.Querier) cfg.Directory {
	return cfg.Directory{Identifier: m.Identifier, PageSize: m.PageSize, Querier: q}
}

// Descriptor ties an entity's view model VM, form value FV and API input
// In together.
type Descriptor[VM, FV, In any] struct {
	Meta     Meta
	Defaults func() FV
	ToForm   func(VM) FV
	ToInput  func(FV) In
	ID       func(VM) int64
}
