// Package index is myxa's in-memory package index: a content-addressed
// store of published package versions, mutated solely by Insert and
// otherwise read-only (spec.md §4.4, §5). Grounded on
// original_source/src/myxa/index.py's Index/Namespace split, with the
// concurrency discipline (sync.RWMutex guarding a registration map) of
// git-pkgs-registries/internal/core/registry.go's factory registry.
package index

import (
	"sort"
	"sync"

	"github.com/gregorybchris/myxa/myxaerr"
	"github.com/gregorybchris/myxa/schema"
	"github.com/gregorybchris/myxa/version"
)

// Index stores every published version of every package, keyed by
// package name then version. The zero value is ready to use.
type Index struct {
	mu       sync.RWMutex
	packages map[string]map[version.Version]*schema.Package
}

// New constructs an empty index.
func New() *Index {
	return &Index{packages: map[string]map[version.Version]*schema.Package{}}
}

// Insert stores a deep snapshot of pkg, keyed by its current
// (name, version). Fails with AlreadyPublished if that pair is already
// present — the index never overwrites a published version.
func (idx *Index) Insert(pkg *schema.Package) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.packages == nil {
		idx.packages = map[string]map[version.Version]*schema.Package{}
	}
	name := pkg.Info.Name
	v := pkg.Info.Version
	versions, ok := idx.packages[name]
	if !ok {
		versions = map[version.Version]*schema.Package{}
		idx.packages[name] = versions
	}
	if _, exists := versions[v]; exists {
		return &myxaerr.AlreadyPublishedError{Name: name, Version: v}
	}

	snapshot, err := pkg.Clone()
	if err != nil {
		return err
	}
	versions[v] = snapshot
	return nil
}

// Get returns every published version of name, keyed by version, or
// NotFound if the package has never been published.
func (idx *Index) Get(name string) (map[version.Version]*schema.Package, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	versions, ok := idx.packages[name]
	if !ok {
		return nil, &myxaerr.NotFoundError{Name: name}
	}
	return cloneVersionMap(versions)
}

// GetVersion returns one specific published version of name.
func (idx *Index) GetVersion(name string, v version.Version) (*schema.Package, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	versions, ok := idx.packages[name]
	if !ok {
		return nil, &myxaerr.NotFoundError{Name: name}
	}
	pkg, ok := versions[v]
	if !ok {
		return nil, &myxaerr.NotFoundError{Name: name, Version: &v}
	}
	return pkg.Clone()
}

// Latest returns the highest-cmp published version of name.
func (idx *Index) Latest(name string) (*schema.Package, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	versions, ok := idx.packages[name]
	if !ok || len(versions) == 0 {
		return nil, &myxaerr.NotFoundError{Name: name}
	}

	var best version.Version
	first := true
	for v := range versions {
		if first || best.Less(v) {
			best = v
			first = false
		}
	}
	return versions[best].Clone()
}

// LatestMajor returns the highest version of name with the given major,
// or NotFound if no such version is published.
func (idx *Index) LatestMajor(name string, major int) (*schema.Package, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	versions, ok := idx.packages[name]
	if !ok {
		return nil, &myxaerr.NotFoundError{Name: name}
	}

	var best version.Version
	found := false
	for v := range versions {
		if v.Major != major {
			continue
		}
		if !found || best.Less(v) {
			best = v
			found = true
		}
	}
	if !found {
		majorVersion := version.New(major, 0)
		return nil, &myxaerr.NotFoundError{Name: name, Version: &majorVersion}
	}
	return versions[best].Clone()
}

// Versions returns every version of name present in the index, in
// descending order (the candidate order spec.md §4.5.2 fixes for the
// resolver's work-list iteration).
func (idx *Index) Versions(name string) ([]version.Version, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	versions, ok := idx.packages[name]
	if !ok {
		return nil, &myxaerr.NotFoundError{Name: name}
	}

	out := make([]version.Version, 0, len(versions))
	for v := range versions {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Less(out[i]) })
	return out, nil
}

// List returns every published package name and its known versions,
// each version list descending. The map carries no name order; Names
// gives the names ascending.
func (idx *Index) List() map[string][]version.Version {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := map[string][]version.Version{}
	for name, versions := range idx.packages {
		vs := make([]version.Version, 0, len(versions))
		for v := range versions {
			vs = append(vs, v)
		}
		sort.Slice(vs, func(i, j int) bool { return vs[j].Less(vs[i]) })
		out[name] = vs
	}
	return out
}

// Names returns every published package name, ascending.
func (idx *Index) Names() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	names := make([]string, 0, len(idx.packages))
	for name := range idx.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cloneVersionMap(versions map[version.Version]*schema.Package) (map[version.Version]*schema.Package, error) {
	out := make(map[version.Version]*schema.Package, len(versions))
	for v, pkg := range versions {
		clone, err := pkg.Clone()
		if err != nil {
			return nil, err
		}
		out[v] = clone
	}
	return out, nil
}
