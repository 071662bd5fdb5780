// Package publish implements myxa's publish gate: the single place
// where a diff's classification becomes an enforced contract on the
// version a package may publish at (spec.md §4.6). Grounded on
// original_source/src/myxa/manager.py's Manager.publish, whose
// version-bump enforcement is left as a TODO there — the enforcement
// itself is this package's addition, built from the diff engine and
// the index it already has both halves of.
package publish

import (
	"github.com/gregorybchris/myxa/diff"
	"github.com/gregorybchris/myxa/index"
	"github.com/gregorybchris/myxa/myxaerr"
	"github.com/gregorybchris/myxa/schema"
	"github.com/gregorybchris/myxa/version"
)

// Publish runs pkg through the publish gate against idx and, if it
// passes, inserts it (spec.md §4.6's five-step sequence).
func Publish(pkg *schema.Package, idx *index.Index) error {
	if err := schema.Validate(pkg, lockedDeps(pkg, idx)); err != nil {
		return err
	}
	if !pkg.IsLocked() {
		return &myxaerr.InvalidInterfaceError{Path: pkg.Info.Name, Reason: "requirements are not fully locked"}
	}
	if err := checkAcyclic(pkg, idx); err != nil {
		return err
	}

	if _, err := idx.Latest(pkg.Info.Name); err != nil {
		if pkg.Info.Version != version.Initial {
			return &myxaerr.InvalidInitialVersionError{Name: pkg.Info.Name, Got: pkg.Info.Version}
		}
		return idx.Insert(pkg)
	}

	if _, err := idx.GetVersion(pkg.Info.Name, pkg.Info.Version); err == nil {
		return &myxaerr.AlreadyPublishedError{Name: pkg.Info.Name, Version: pkg.Info.Version}
	}

	old, err := idx.Latest(pkg.Info.Name)
	if err != nil {
		return err
	}

	d := diff.Compute(old, pkg)
	required := diff.RequiredBump(old.Info.Version, d)
	if pkg.Info.Version != required {
		return &myxaerr.VersionBumpRequiredError{Name: pkg.Info.Name, Required: required, Actual: pkg.Info.Version}
	}

	return idx.Insert(pkg)
}

// checkAcyclic walks pkg's locked dependency closure through idx and
// fails with CycleError the moment it finds an edge back to pkg's own
// name (spec.md §3's acyclic-deps invariant, enforced here at publish
// time since a cycle among already-published packages can't be caught
// any earlier than the package that closes it).
func checkAcyclic(pkg *schema.Package, idx *index.Index) error {
	return walkDepClosure(pkg.Info.Name, pkg, idx, map[string]bool{}, []string{pkg.Info.Name})
}

func walkDepClosure(root string, pkg *schema.Package, idx *index.Index, visited map[string]bool, path []string) error {
	for _, name := range pkg.SortedDepNames() {
		if name == root {
			return &myxaerr.CycleError{Path: append(append([]string{}, path...), name)}
		}
		if visited[name] {
			continue
		}
		visited[name] = true

		dep := pkg.Deps[name]
		depPkg, err := idx.GetVersion(name, dep.Version)
		if err != nil {
			continue // a dep missing from the index has no closure to walk
		}
		if err := walkDepClosure(root, depPkg, idx, visited, append(path, name)); err != nil {
			return err
		}
	}
	return nil
}

// lockedDeps resolves pkg's locked dependencies against idx, for
// Validate's Ref resolution against dependency interfaces.
func lockedDeps(pkg *schema.Package, idx *index.Index) map[string]*schema.Package {
	if len(pkg.Deps) == 0 {
		return nil
	}
	locked := map[string]*schema.Package{}
	for name, dep := range pkg.Deps {
		if depPkg, err := idx.GetVersion(name, dep.Version); err == nil {
			locked[name] = depPkg
		}
	}
	return locked
}
