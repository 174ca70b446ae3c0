// Package prompts holds the prompt templates sent to the model. Templates
// are versioned data: an embedded manifest maps each prompt name to one or
// more semantic versions, and each version is a pongo2 template file.
package prompts

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/mod/semver"
)

//go:embed manifest.yaml templates/*.tmpl
var embedded embed.FS

// ErrNotFound is returned when no template matches a name or version.
var ErrNotFound = errors.New("prompt template not found")

// Template is one compiled version of a prompt. It is immutable and safe
// for concurrent use.
type Template struct {
	Entry
	source string
	tpl    *pongo2.Template
}

// Source returns the raw template text.
func (t *Template) Source() string { return t.source }

// Render executes the template with data. Structs are flattened through
// their JSON form so template variables use the same names as the flow
// schemas; integers stay integers.
func (t *Template) Render(data any) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("render %s@%s: %w", t.Name, t.Version, err)
	}
	out, err := t.tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("render %s@%s: %w", t.Name, t.Version, err)
	}
	return strings.TrimSpace(out), nil
}

// Registry serves compiled templates by name and version.
type Registry struct {
	byName map[string][]*Template // sorted newest first
}

// Load reads manifest.yaml from fsys and compiles every template it lists.
func Load(fsys fs.FS) (*Registry, error) {
	data, err := fs.ReadFile(fsys, "manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}

	set := pongo2.NewSet("tutorflow-prompts", pongo2.NewFSLoader(fsys))
	set.Options = &pongo2.Options{TrimBlocks: true, LStripBlocks: true}

	r := &Registry{byName: make(map[string][]*Template)}
	for _, e := range manifest.Prompts {
		src, err := fs.ReadFile(fsys, e.File)
		if err != nil {
			return nil, fmt.Errorf("read template %s@%s: %w", e.Name, e.Version, err)
		}
		tpl, err := set.FromBytes(src)
		if err != nil {
			return nil, fmt.Errorf("compile template %s@%s: %w", e.Name, e.Version, err)
		}
		r.byName[e.Name] = append(r.byName[e.Name], &Template{Entry: e, source: string(src), tpl: tpl})
	}
	for _, versions := range r.byName {
		slices.SortFunc(versions, func(a, b *Template) int {
			return semver.Compare(b.Version, a.Version)
		})
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry built from the embedded templates.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Load(embedded)
	})
	return defaultRegistry, defaultErr
}

// Latest returns the highest version of the named template.
func (r *Registry) Latest(name string) (*Template, error) {
	versions := r.byName[name]
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return versions[0], nil
}

// Get returns a specific version of the named template. An empty version
// means the latest.
func (r *Registry) Get(name, version string) (*Template, error) {
	if version == "" {
		return r.Latest(name)
	}
	for _, t := range r.byName[name] {
		if semver.Compare(t.Version, version) == 0 {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s@%s", ErrNotFound, name, version)
}

// List returns every entry, ordered by name and then newest version first.
func (r *Registry) List() []Entry {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)

	var out []Entry
	for _, name := range names {
		for _, t := range r.byName[name] {
			out = append(out, t.Entry)
		}
	}
	return out
}

// toContext converts template data into a pongo2 context. Numbers are
// decoded as json.Number so they print without a float suffix.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode template data: %w", err)
	}
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("template data must be a JSON object: %w", err)
	}
	return pongo2.Context(m), nil
}
