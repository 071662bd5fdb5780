package schema

import (
	"sort"

	"github.com/gregorybchris/myxa/version"
)

// PackageInfo carries a package's identity: name, human description,
// current version, and (a supplement over spec.md's bare
// {name, description, version} — see SPEC_FULL.md §11) an optional
// SPDX license expression.
type PackageInfo struct {
	Name        string
	Description string
	Version     version.Version
	License     string // SPDX expression, empty if unset
}

// DepReq is an unlocked dependency requirement: the minimum version a
// package declares it needs. It carries no upper bound (a non-goal).
type DepReq struct {
	Name       string
	MinVersion version.Version
}

// Dep is a locked dependency: the concrete version chosen by the
// resolver for a DepReq of the same name.
type Dep struct {
	Name    string
	Version version.Version
}

// Package is the full draft or published interface of one package
// version: its info, its root module (the recursive interface tree),
// its unlocked requirements, and — once locked — its concrete deps.
//
// A package in isolation has Requirements only; Deps is nil until
// Lock/Update populates it. A published package always has both, with
// Deps[r].Major == Requirements[r].MinVersion.Major and
// Deps[r] >= Requirements[r].MinVersion for every r.
type Package struct {
	Info         PackageInfo
	Root         Module
	Requirements map[string]DepReq
	Deps         map[string]Dep
}

// New constructs a fresh draft package at version.Initial, the state
// `init` produces (spec.md §4.6 step 2 requires this for a package's
// very first publish).
func New(name, description string) *Package {
	return &Package{
		Info: PackageInfo{
			Name:        name,
			Description: description,
			Version:     version.Initial,
		},
		Root:         *NewModule(name),
		Requirements: map[string]DepReq{},
	}
}

// AddRequirement declares a dependency requirement.
func (p *Package) AddRequirement(name string, minVersion version.Version) {
	if p.Requirements == nil {
		p.Requirements = map[string]DepReq{}
	}
	p.Requirements[name] = DepReq{Name: name, MinVersion: minVersion}
}

// RemoveRequirement drops a dependency requirement, returning whether
// one was present to remove.
func (p *Package) RemoveRequirement(name string) bool {
	if _, ok := p.Requirements[name]; !ok {
		return false
	}
	delete(p.Requirements, name)
	delete(p.Deps, name)
	return true
}

// SortedRequirementNames returns requirement names in ascending order —
// the work-list order spec.md §4.5.2 fixes for deterministic
// resolution.
func (p *Package) SortedRequirementNames() []string {
	names := make([]string, 0, len(p.Requirements))
	for name := range p.Requirements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedDepNames returns locked dependency names in ascending order.
func (p *Package) SortedDepNames() []string {
	names := make([]string, 0, len(p.Deps))
	for name := range p.Deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsLocked reports whether every requirement has a matching, compatible
// locked Dep (spec.md §3's lock consistency invariant).
func (p *Package) IsLocked() bool {
	if len(p.Requirements) > 0 && p.Deps == nil {
		return false
	}
	for name, req := range p.Requirements {
		dep, ok := p.Deps[name]
		if !ok {
			return false
		}
		if dep.Version.Major != req.MinVersion.Major {
			return false
		}
		if dep.Version.Less(req.MinVersion) {
			return false
		}
	}
	return true
}

// Clone returns a deep, independent copy of the package, by way of its
// JSON round trip (see DESIGN.md's index/ notes for why this single
// mechanism also backs the index's immutability guarantee).
func (p *Package) Clone() (*Package, error) {
	data, err := MarshalPackage(p)
	if err != nil {
		return nil, err
	}
	return UnmarshalPackage(data)
}
