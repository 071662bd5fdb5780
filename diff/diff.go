// Package diff implements structural comparison between two package
// interfaces: the engine that classifies every difference as Breaking
// or NonBreaking and drives both the publish gate's version-bump
// enforcement and the resolver's selective major-crossing admissibility
// check. Grounded on original_source/src/myxa/checker.py's Checker,
// generalized to walk schema's tagged-union Module/Member/Type trees
// instead of Python's isinstance-matched TreeNode hierarchy.
package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gregorybchris/myxa/schema"
	"github.com/gregorybchris/myxa/version"
)

// Category classifies a Change as Breaking or NonBreaking per
// spec.md §4.3's classification table.
type Category int

const (
	NonBreaking Category = iota
	Breaking
)

func (c Category) String() string {
	if c == Breaking {
		return "Breaking"
	}
	return "NonBreaking"
}

// ChangeKind names the shape of one Change; classification itself
// lives on Category.
type ChangeKind int

const (
	KindAddModule ChangeKind = iota
	KindRemoveModule
	KindAddMember
	KindRemoveMember
	KindMemberKindChanged
	KindAddParam
	KindRemoveParam
	KindReorderParams
	KindParamTypeChanged
	KindReturnTypeChanged
	KindAddField
	KindRemoveField
	KindFieldTypeChanged
	KindAddVariant
	KindRemoveVariant
	KindVariantTypeChanged
	KindAddDep
	KindRemoveDep
	KindDepMajorChanged
	KindDepMinorChanged
)

// Change is one classified difference between two interfaces, anchored
// to a stable dotted path (spec.md §4.3).
type Change struct {
	Kind     ChangeKind
	Category Category
	Path     string
	Detail   string
}

// Description renders a human-readable summary of the change, in the
// form the CLI's diff rendering uses.
func (c Change) Description() string {
	if c.Detail == "" {
		return fmt.Sprintf("%s: %s", c.Path, c.Category)
	}
	return fmt.Sprintf("%s: %s (%s)", c.Path, c.Category, c.Detail)
}

// Diff is an ordered, path-sorted list of Changes between two package
// interfaces.
type Diff struct {
	Changes []Change
}

// IsBreaking reports whether any change in the diff is Breaking.
func (d Diff) IsBreaking() bool {
	for _, c := range d.Changes {
		if c.Category == Breaking {
			return true
		}
	}
	return false
}

// RequiredBump returns the version bump old must take to legally
// publish new, given diff: bump_major if the diff is Breaking, else
// bump_minor (spec.md §4.3's required_bump helper).
func RequiredBump(old version.Version, d Diff) version.Version {
	if d.IsBreaking() {
		return old.BumpMajor()
	}
	return old.BumpMinor()
}

// Compute diffs two whole package interfaces, depth-first, path-sorted
// (spec.md §4.3). The root path is the package name, matching
// checker.py's _diff seeding package_path with [package_name].
func Compute(oldPkg, newPkg *schema.Package) Diff {
	var changes []Change
	diffModule(&oldPkg.Root, &newPkg.Root, []string{oldPkg.Info.Name}, &changes)
	diffDeps(oldPkg.Deps, newPkg.Deps, []string{oldPkg.Info.Name, "deps"}, &changes)
	sortChanges(changes)
	return Diff{Changes: changes}
}

// diffDeps compares a package's own dependency locks between two
// snapshots (spec.md §4.3's dependency rows): a dep added, removed, or
// bumped to a new major is Breaking for consumers that transitively
// inherit it; a minor bump is NonBreaking.
func diffDeps(oldDeps, newDeps map[string]schema.Dep, path []string, changes *[]Change) {
	oldSet := map[string]bool{}
	for name := range oldDeps {
		oldSet[name] = true
	}
	newSet := map[string]bool{}
	for name := range newDeps {
		newSet[name] = true
	}

	for _, name := range unionSorted(oldSet, newSet) {
		depPath := append(append([]string{}, path...), name)
		switch {
		case oldSet[name] && newSet[name]:
			oldDep, newDep := oldDeps[name], newDeps[name]
			switch {
			case oldDep.Version.Equal(newDep.Version):
			case oldDep.Version.Major != newDep.Version.Major:
				*changes = append(*changes, Change{
					Kind:     KindDepMajorChanged,
					Category: Breaking,
					Path:     joinPath(depPath),
					Detail:   fmt.Sprintf("%s -> %s", oldDep.Version, newDep.Version),
				})
			default:
				*changes = append(*changes, Change{
					Kind:     KindDepMinorChanged,
					Category: NonBreaking,
					Path:     joinPath(depPath),
					Detail:   fmt.Sprintf("%s -> %s", oldDep.Version, newDep.Version),
				})
			}
		case oldSet[name]:
			*changes = append(*changes, Change{Kind: KindRemoveDep, Category: Breaking, Path: joinPath(depPath)})
		default:
			*changes = append(*changes, Change{Kind: KindAddDep, Category: Breaking, Path: joinPath(depPath)})
		}
	}
}

// ComputeRestricted runs the same engine but only emits changes whose
// path is within, or nested under, one of paths — the "restricted
// diff" spec.md §4.5.1 defines for the resolver's major-crossing
// admissibility check. Changes outside paths are computed but dropped,
// matching §4.5.1's "ignored for admissibility but still reported"
// framing: callers that want the full picture should call Compute too.
func ComputeRestricted(oldPkg, newPkg *schema.Package, paths map[string]bool) Diff {
	full := Compute(oldPkg, newPkg)
	var kept []Change
	for _, c := range full.Changes {
		if pathIsRelevant(c.Path, paths) {
			kept = append(kept, c)
		}
	}
	return Diff{Changes: kept}
}

func pathIsRelevant(changePath string, paths map[string]bool) bool {
	for p := range paths {
		if changePath == p || strings.HasPrefix(changePath, p+".") || strings.HasPrefix(p, changePath+".") {
			return true
		}
	}
	return false
}

func sortChanges(changes []Change) {
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
}

func joinPath(path []string) string {
	return strings.Join(path, ".")
}

func diffModule(oldMod, newMod *schema.Module, path []string, changes *[]Change) {
	oldModNames := map[string]bool{}
	for _, n := range oldMod.SortedModuleNames() {
		oldModNames[n] = true
	}
	newModNames := map[string]bool{}
	for _, n := range newMod.SortedModuleNames() {
		newModNames[n] = true
	}

	names := unionSorted(oldModNames, newModNames)
	for _, name := range names {
		childPath := append(append([]string{}, path...), name)
		switch {
		case oldModNames[name] && newModNames[name]:
			diffModule(oldMod.Modules[name], newMod.Modules[name], childPath, changes)
		case oldModNames[name]:
			*changes = append(*changes, Change{Kind: KindRemoveModule, Category: Breaking, Path: joinPath(childPath)})
		default:
			*changes = append(*changes, Change{Kind: KindAddModule, Category: NonBreaking, Path: joinPath(childPath)})
		}
	}

	oldMemberNames := map[string]bool{}
	for _, n := range oldMod.SortedMemberNames() {
		oldMemberNames[n] = true
	}
	newMemberNames := map[string]bool{}
	for _, n := range newMod.SortedMemberNames() {
		newMemberNames[n] = true
	}

	memberNames := unionSorted(oldMemberNames, newMemberNames)
	for _, name := range memberNames {
		memberPath := append(append([]string{}, path...), name)
		switch {
		case oldMemberNames[name] && newMemberNames[name]:
			diffMember(oldMod.Members[name], newMod.Members[name], memberPath, changes)
		case oldMemberNames[name]:
			*changes = append(*changes, Change{Kind: KindRemoveMember, Category: Breaking, Path: joinPath(memberPath)})
		default:
			*changes = append(*changes, Change{Kind: KindAddMember, Category: NonBreaking, Path: joinPath(memberPath)})
		}
	}
}

func unionSorted(a, b map[string]bool) []string {
	set := map[string]bool{}
	for n := range a {
		set[n] = true
	}
	for n := range b {
		set[n] = true
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func diffMember(oldMember, newMember schema.Member, path []string, changes *[]Change) {
	if oldMember.Kind != newMember.Kind {
		*changes = append(*changes, Change{
			Kind:     KindMemberKindChanged,
			Category: Breaking,
			Path:     joinPath(path),
			Detail:   fmt.Sprintf("%s -> %s", oldMember.Kind, newMember.Kind),
		})
		return
	}

	switch oldMember.Kind {
	case schema.KindFunc:
		diffFunc(*oldMember.Func, *newMember.Func, path, changes)
	case schema.KindStruct:
		diffStruct(*oldMember.Struct, *newMember.Struct, path, changes)
	case schema.KindEnum:
		diffEnum(*oldMember.Enum, *newMember.Enum, path, changes)
	}
}

func diffFunc(oldFunc, newFunc schema.Func, path []string, changes *[]Change) {
	if !schema.TypeEqual(oldFunc.Return, newFunc.Return) {
		*changes = append(*changes, Change{
			Kind:     KindReturnTypeChanged,
			Category: Breaking,
			Path:     joinPath(path),
			Detail:   fmt.Sprintf("%s -> %s", oldFunc.Return, newFunc.Return),
		})
	}

	oldNames := make([]string, len(oldFunc.Params))
	for i, p := range oldFunc.Params {
		oldNames[i] = p.Name
	}
	newNames := make([]string, len(newFunc.Params))
	for i, p := range newFunc.Params {
		newNames[i] = p.Name
	}

	oldSet := map[string]bool{}
	for _, n := range oldNames {
		oldSet[n] = true
	}
	newSet := map[string]bool{}
	for _, n := range newNames {
		newSet[n] = true
	}

	// Reorder: same name set, different order — reported once at the
	// function's own path rather than per-parameter, since no single
	// parameter "changed".
	sameSet := len(oldNames) == len(newNames)
	if sameSet {
		for i := range oldNames {
			if !newSet[oldNames[i]] {
				sameSet = false
				break
			}
		}
	}
	if sameSet {
		reordered := false
		for i := range oldNames {
			if oldNames[i] != newNames[i] {
				reordered = true
				break
			}
		}
		if reordered {
			*changes = append(*changes, Change{
				Kind:     KindReorderParams,
				Category: Breaking,
				Path:     joinPath(path),
				Detail:   "parameter order changed",
			})
		}
	}

	allNames := unionSorted(oldSet, newSet)
	var oldByName, newByName map[string]schema.Param
	oldByName = map[string]schema.Param{}
	for _, p := range oldFunc.Params {
		oldByName[p.Name] = p
	}
	newByName = map[string]schema.Param{}
	for _, p := range newFunc.Params {
		newByName[p.Name] = p
	}

	for _, name := range allNames {
		paramPath := append(append([]string{}, path...), name)
		switch {
		case oldSet[name] && newSet[name]:
			oldP, newP := oldByName[name], newByName[name]
			if !schema.TypeEqual(oldP.Type, newP.Type) {
				*changes = append(*changes, Change{
					Kind:     KindParamTypeChanged,
					Category: Breaking,
					Path:     joinPath(paramPath),
					Detail:   fmt.Sprintf("%s -> %s", oldP.Type, newP.Type),
				})
			}
		case oldSet[name]:
			*changes = append(*changes, Change{Kind: KindRemoveParam, Category: Breaking, Path: joinPath(paramPath)})
		default:
			*changes = append(*changes, Change{Kind: KindAddParam, Category: Breaking, Path: joinPath(paramPath)})
		}
	}
}

func diffStruct(oldStruct, newStruct schema.Struct, path []string, changes *[]Change) {
	oldSet := map[string]bool{}
	for name := range oldStruct.Fields {
		oldSet[name] = true
	}
	newSet := map[string]bool{}
	for name := range newStruct.Fields {
		newSet[name] = true
	}

	for _, name := range unionSorted(oldSet, newSet) {
		fieldPath := append(append([]string{}, path...), name)
		switch {
		case oldSet[name] && newSet[name]:
			oldType, newType := oldStruct.Fields[name], newStruct.Fields[name]
			if !schema.TypeEqual(oldType, newType) {
				*changes = append(*changes, Change{
					Kind:     KindFieldTypeChanged,
					Category: Breaking,
					Path:     joinPath(fieldPath),
					Detail:   fmt.Sprintf("%s -> %s", oldType, newType),
				})
			}
		case oldSet[name]:
			*changes = append(*changes, Change{Kind: KindRemoveField, Category: Breaking, Path: joinPath(fieldPath)})
		default:
			*changes = append(*changes, Change{Kind: KindAddField, Category: Breaking, Path: joinPath(fieldPath)})
		}
	}
}

func diffEnum(oldEnum, newEnum schema.Enum, path []string, changes *[]Change) {
	oldSet := map[string]bool{}
	for name := range oldEnum.Variants {
		oldSet[name] = true
	}
	newSet := map[string]bool{}
	for name := range newEnum.Variants {
		newSet[name] = true
	}

	for _, name := range unionSorted(oldSet, newSet) {
		variantPath := append(append([]string{}, path...), name)
		switch {
		case oldSet[name] && newSet[name]:
			oldPayload, newPayload := oldEnum.Variants[name], newEnum.Variants[name]
			if !payloadEqual(oldPayload, newPayload) {
				*changes = append(*changes, Change{
					Kind:     KindVariantTypeChanged,
					Category: Breaking,
					Path:     joinPath(variantPath),
					Detail:   "variant payload type changed",
				})
			}
		case oldSet[name]:
			*changes = append(*changes, Change{Kind: KindRemoveVariant, Category: Breaking, Path: joinPath(variantPath)})
		default:
			// Adding a variant is Breaking, per spec.md §4.3: consumers
			// may exhaustively match and a new case breaks them.
			*changes = append(*changes, Change{Kind: KindAddVariant, Category: Breaking, Path: joinPath(variantPath)})
		}
	}
}

func payloadEqual(a, b *schema.Type) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return schema.TypeEqual(*a, *b)
}
