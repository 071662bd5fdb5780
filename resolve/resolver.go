// Package resolve implements myxa's dependency resolver: a backtracking
// search over the index that picks one version per required package,
// admitting a higher major version only when a restricted diff over the
// paths actually used shows no breaking change (spec.md §4.5, the
// selective major-crossing rule of §4.5.1). Grounded on
// original_source/src/myxa/solver.py's Solver/Solution backtracking
// shape, generalized with the diff-based admissibility check spec.md
// adds on top of the original's bare "same major, minor >=" test.
package resolve

import (
	"sort"

	"github.com/gregorybchris/myxa/diff"
	"github.com/gregorybchris/myxa/index"
	"github.com/gregorybchris/myxa/myxaerr"
	"github.com/gregorybchris/myxa/schema"
	"github.com/gregorybchris/myxa/version"
)

// Result is the resolver's output: one version chosen per transitively
// required package, plus (a supplement over spec.md's bare deps map —
// see SPEC_FULL.md §12, mirroring original_source's Lock.sources and
// Lock.children) the requirer that first introduced each package and
// the dependency edges actually walked.
type Result struct {
	Deps     map[string]version.Version
	Origins  map[string]string
	Children map[string][]string
}

type workItem struct {
	name       string
	minVersion version.Version
	requirer   string
}

type resolverState struct {
	idx         *index.Index
	assignment  map[string]version.Version
	usedMembers map[string]map[string]bool
	origins     map[string]string
	children    map[string][]string
	cache       map[string]*schema.Package // name@version -> snapshot, memoized per resolve call
}

// Resolve computes a Result satisfying every transitive requirement of
// root against idx (spec.md §4.5). Fails with Unresolvable if no
// assignment exists.
func Resolve(root *schema.Package, idx *index.Index) (*Result, error) {
	state := &resolverState{
		idx:         idx,
		assignment:  map[string]version.Version{},
		usedMembers: map[string]map[string]bool{},
		origins:     map[string]string{},
		children:    map[string][]string{},
		cache:       map[string]*schema.Package{},
	}

	seedUsedMembers(state, root)

	work := workListFor(root, root.Info.Name)
	ok, err := state.solve(work)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &myxaerr.UnresolvableError{Package: root.Info.Name, Reason: "no satisfying assignment found"}
	}

	if cyc := detectCycle(state.children, root.Info.Name); cyc != nil {
		return nil, &myxaerr.CycleError{Path: cyc}
	}

	return &Result{Deps: state.assignment, Origins: state.origins, Children: state.children}, nil
}

// detectCycle walks the requirer->required edges recorded in children,
// depth-first from start, and returns the closing path the first time a
// node still on the active stack is reached again — an acyclic result
// is one of spec.md §4.5's explicit postconditions. children edges
// already include root.Info.Name itself (solve records
// item.requirer -> item.name for every assignment, including the root's
// own requirements), so a self-referential cycle among already-
// published packages surfaces here even though nothing in solve's
// per-item admissibility check would otherwise notice it.
func detectCycle(children map[string][]string, start string) []string {
	const (
		unvisited = 0
		active    = 1
		done      = 2
	)
	state := map[string]int{}
	var path []string

	var visit func(name string) []string
	visit = func(name string) []string {
		state[name] = active
		path = append(path, name)
		for _, next := range children[name] {
			switch state[next] {
			case active:
				cycleStart := indexInPath(path, next)
				return append(append([]string{}, path[cycleStart:]...), next)
			case unvisited:
				if cyc := visit(next); cyc != nil {
					return cyc
				}
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		return nil
	}

	return visit(start)
}

func indexInPath(path []string, name string) int {
	for i, n := range path {
		if n == name {
			return i
		}
	}
	return 0
}

func workListFor(pkg *schema.Package, requirer string) []workItem {
	names := pkg.SortedRequirementNames() // ascending, spec.md §4.5.2's work-list order
	items := make([]workItem, len(names))
	for i, name := range names {
		req := pkg.Requirements[name]
		items[i] = workItem{name: req.Name, minVersion: req.MinVersion, requirer: requirer}
	}
	return items
}

func (s *resolverState) solve(work []workItem) (bool, error) {
	if len(work) == 0 {
		return true, nil
	}
	item := work[0]
	rest := work[1:]

	if assigned, ok := s.assignment[item.name]; ok {
		// Record the requirer edge even though item.name was assigned
		// earlier by a different requirer, so a cycle that only closes
		// through an already-satisfied requirement is still visible to
		// detectCycle's walk over children.
		s.children[item.requirer] = appendUnique(s.children[item.requirer], item.name)

		compatible, err := s.satisfiesAssigned(item, assigned)
		if err != nil {
			return false, err
		}
		if !compatible {
			return false, nil
		}
		return s.solve(rest)
	}

	versions, err := s.idx.Versions(item.name)
	if err != nil {
		return false, &myxaerr.UnknownDependencyError{Name: item.name}
	}

	for _, candidateVersion := range versions {
		qualifies, err := s.qualifies(item, candidateVersion)
		if err != nil {
			return false, err
		}
		if !qualifies {
			continue
		}

		candidate, err := s.packageAt(item.name, candidateVersion)
		if err != nil {
			return false, err
		}

		s.assignment[item.name] = candidateVersion
		s.origins[item.name] = item.requirer
		s.children[item.requirer] = appendUnique(s.children[item.requirer], item.name)
		recordUsedMembers(s, candidate)

		childWork := append(append([]workItem{}, rest...), workListFor(candidate, item.name)...)
		ok, err := s.solve(childWork)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}

		delete(s.assignment, item.name)
		delete(s.origins, item.name)
	}

	return false, nil
}

// satisfiesAssigned checks whether an already-assigned version still
// satisfies a later, possibly-conflicting requirement for the same
// package (spec.md §4.5's "for each chosen version... acyclic" and the
// determinism of a single shared assignment per name).
func (s *resolverState) satisfiesAssigned(item workItem, assigned version.Version) (bool, error) {
	if assigned.Major == item.minVersion.Major {
		return !assigned.Less(item.minVersion), nil
	}
	return s.qualifies(item, assigned)
}

// qualifies reports whether candidateVersion is an admissible choice
// for item: either same-major and at-or-above the requested minimum, or
// a higher major that passes the selective major-crossing restricted
// diff (spec.md §4.5.1).
func (s *resolverState) qualifies(item workItem, candidateVersion version.Version) (bool, error) {
	if candidateVersion.Major == item.minVersion.Major {
		return !candidateVersion.Less(item.minVersion), nil
	}
	if candidateVersion.Major < item.minVersion.Major {
		return false, nil
	}

	base, ok, err := s.crossingBase(item)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	candidate, err := s.packageAt(item.name, candidateVersion)
	if err != nil {
		return false, err
	}

	paths := s.usedMembers[item.name]
	restricted := diff.ComputeRestricted(base, candidate, paths)
	return !restricted.IsBreaking(), nil
}

// crossingBase resolves the comparison base spec.md §4.5.1 defines:
// P@v0 if v0 is published, else the highest published V' <= v0's
// would-be major with the same major as v0.
func (s *resolverState) crossingBase(item workItem) (*schema.Package, bool, error) {
	if exact, err := s.idx.GetVersion(item.name, item.minVersion); err == nil {
		return exact, true, nil
	}

	pkg, err := s.idx.LatestMajor(item.name, item.minVersion.Major)
	if err != nil {
		return nil, false, nil
	}
	return pkg, true, nil
}

func (s *resolverState) packageAt(name string, v version.Version) (*schema.Package, error) {
	key := name + "@" + v.String()
	if pkg, ok := s.cache[key]; ok {
		return pkg, nil
	}
	pkg, err := s.idx.GetVersion(name, v)
	if err != nil {
		return nil, err
	}
	s.cache[key] = pkg
	return pkg, nil
}

// seedUsedMembers records every Ref in root's own interface tree,
// grouped by the package it points into — the initial used_members set
// spec.md §4.5's algorithm description maintains.
func seedUsedMembers(s *resolverState, pkg *schema.Package) {
	recordUsedMembers(s, pkg)
}

// recordUsedMembers walks pkg's interface tree collecting every Ref's
// absolute name into usedMembers, keyed by the Ref's leading package
// component. This is the resolver's approximation of "members that the
// root package and its already-chosen deps transitively reference" —
// real call-site usage analysis is an external collaborator (source
// parsing is explicitly out of scope, spec.md §2's Non-goals); Refs
// embedded in the published interface are the structural proxy for it.
func recordUsedMembers(s *resolverState, pkg *schema.Package) {
	collectRefs(&pkg.Root, s.usedMembers)
}

func collectRefs(mod *schema.Module, used map[string]map[string]bool) {
	for _, name := range mod.SortedMemberNames() {
		collectMemberRefs(mod.Members[name], used)
	}
	for _, name := range mod.SortedModuleNames() {
		collectRefs(mod.Modules[name], used)
	}
}

func collectMemberRefs(member schema.Member, used map[string]map[string]bool) {
	switch member.Kind {
	case schema.KindFunc:
		for _, p := range member.Func.Params {
			collectTypeRefs(p.Type, used)
		}
		collectTypeRefs(member.Func.Return, used)
	case schema.KindStruct:
		for _, t := range member.Struct.Fields {
			collectTypeRefs(t, used)
		}
	case schema.KindEnum:
		for _, payload := range member.Enum.Variants {
			if payload != nil {
				collectTypeRefs(*payload, used)
			}
		}
	}
}

func collectTypeRefs(t schema.Type, used map[string]map[string]bool) {
	switch t.Kind {
	case schema.KindList, schema.KindSet:
		collectTypeRefs(*t.Elem, used)
	case schema.KindDict:
		collectTypeRefs(*t.Key, used)
		collectTypeRefs(*t.Elem, used)
	case schema.KindTuple:
		for _, elem := range t.Elems {
			collectTypeRefs(elem, used)
		}
	case schema.KindRef:
		pkgName := refPackageName(t.Ref)
		if used[pkgName] == nil {
			used[pkgName] = map[string]bool{}
		}
		used[pkgName][t.Ref] = true
	}
}

func refPackageName(ref string) string {
	for i, c := range ref {
		if c == '.' {
			return ref[:i]
		}
	}
	return ref
}

func appendUnique(list []string, name string) []string {
	for _, n := range list {
		if n == name {
			return list
		}
	}
	return append(list, name)
}

// sortedNames is a small helper kept for callers (e.g. CLI rendering)
// that want a Result's dependency names in a stable order.
func sortedNames(deps map[string]version.Version) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedDepNames returns the Result's package names in ascending order.
func (r *Result) SortedDepNames() []string {
	return sortedNames(r.Deps)
}
