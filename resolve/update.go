package resolve

import (
	"github.com/gregorybchris/myxa/diff"
	"github.com/gregorybchris/myxa/index"
	"github.com/gregorybchris/myxa/schema"
)

// UpdatePlan records one dependency's proposed replacement: the
// currently-locked version and the higher version the planner found
// admissible, per spec.md §4.7.
type UpdatePlan struct {
	Name string
	From schema.Dep
	To   schema.Dep
}

// PlanUpdates inspects every locked dependency in pkg and proposes
// replacing it with index.latest(name) wherever the higher version
// qualifies under the selective major-crossing rule against the
// dependency's currently recorded used members (spec.md §4.7).
// Re-running PlanUpdates with no index change yields the same plans
// (idempotent): it only reads pkg and idx, it never mutates either.
func PlanUpdates(pkg *schema.Package, idx *index.Index) ([]UpdatePlan, error) {
	used := map[string]map[string]bool{}
	collectRefs(&pkg.Root, used)
	for _, dep := range pkg.Deps {
		if depPkg, err := idx.GetVersion(dep.Name, dep.Version); err == nil {
			collectRefs(&depPkg.Root, used)
		}
	}

	var plans []UpdatePlan
	for _, name := range pkg.SortedRequirementNames() {
		current, ok := pkg.Deps[name]
		if !ok {
			continue
		}

		latest, err := idx.Latest(name)
		if err != nil {
			continue
		}
		if !current.Version.Less(latest.Info.Version) {
			continue
		}

		admissible, err := updateQualifies(idx, current, latest, used[name])
		if err != nil {
			return nil, err
		}
		if !admissible {
			continue
		}

		plans = append(plans, UpdatePlan{
			Name: name,
			From: current,
			To:   schema.Dep{Name: name, Version: latest.Info.Version},
		})
	}
	return plans, nil
}

func updateQualifies(idx *index.Index, current schema.Dep, latest *schema.Package, used map[string]bool) (bool, error) {
	if current.Version.Major == latest.Info.Version.Major {
		return true, nil
	}

	currentPkg, err := idx.GetVersion(current.Name, current.Version)
	if err != nil {
		return false, nil
	}
	restricted := diff.ComputeRestricted(currentPkg, latest, used)
	return !restricted.IsBreaking(), nil
}

// Apply returns a copy of pkg with every plan's replacement locked in.
func Apply(pkg *schema.Package, plans []UpdatePlan) (*schema.Package, error) {
	updated, err := pkg.Clone()
	if err != nil {
		return nil, err
	}
	if updated.Deps == nil {
		updated.Deps = map[string]schema.Dep{}
	}
	for _, plan := range plans {
		updated.Deps[plan.Name] = plan.To
	}
	return updated, nil
}
