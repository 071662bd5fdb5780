package resolve

import (
	"errors"
	"testing"

	"github.com/gregorybchris/myxa/index"
	"github.com/gregorybchris/myxa/myxaerr"
	"github.com/gregorybchris/myxa/schema"
	"github.com/gregorybchris/myxa/version"
)

func publish(t *testing.T, idx *index.Index, pkg *schema.Package) {
	t.Helper()
	if err := idx.Insert(pkg); err != nil {
		t.Fatalf("Insert(%s@%s) returned error: %v", pkg.Info.Name, pkg.Info.Version, err)
	}
}

func libAt(name string, v version.Version) *schema.Package {
	pkg := schema.New(name, "a library")
	pkg.Info.Version = v
	return pkg
}

func appRequiring(name string, minVersion version.Version) *schema.Package {
	app := schema.New("app", "an application")
	app.AddRequirement(name, minVersion)
	return app
}

func TestResolveSameMajorPicksHighestMinor(t *testing.T) {
	idx := index.New()
	publish(t, idx, libAt("lib", version.New(1, 0)))
	publish(t, idx, libAt("lib", version.New(1, 5)))

	app := appRequiring("lib", version.New(1, 0))
	result, err := Resolve(app, idx)
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if result.Deps["lib"] != version.New(1, 5) {
		t.Errorf("Resolve() picked %v, want 1.5", result.Deps["lib"])
	}
}

func TestResolveUnknownDependencyWhenIndexLacksPackage(t *testing.T) {
	idx := index.New()
	app := appRequiring("lib", version.New(1, 0))

	_, err := Resolve(app, idx)
	if !errors.Is(err, myxaerr.ErrUnknownDependency) {
		t.Errorf("Resolve() = %v, want ErrUnknownDependency", err)
	}
}

func TestResolveUnresolvableWhenOnlyLowerVersionsExist(t *testing.T) {
	idx := index.New()
	publish(t, idx, libAt("lib", version.New(1, 0)))

	app := appRequiring("lib", version.New(2, 0))
	_, err := Resolve(app, idx)
	if !errors.Is(err, myxaerr.ErrUnresolvable) {
		t.Errorf("Resolve() = %v, want ErrUnresolvable", err)
	}
}

func TestResolveCrossesMajorWhenNoBreakingChangeOnUsedPaths(t *testing.T) {
	idx := index.New()

	v1 := libAt("lib", version.New(1, 0))
	v1.Root.SetMember("compute", schema.NewFunc(schema.IntType(), schema.Param{Name: "x", Type: schema.IntType()}))
	publish(t, idx, v1)

	// v2.0 adds an unrelated member "extra"; the used path
	// "lib.compute" is untouched, so the restricted diff over it alone
	// shows no Breaking change.
	v2 := libAt("lib", version.New(2, 0))
	v2.Root.SetMember("compute", schema.NewFunc(schema.IntType(), schema.Param{Name: "x", Type: schema.IntType()}))
	v2.Root.SetMember("extra", schema.NewFunc(schema.IntType()))
	publish(t, idx, v2)

	app := appRequiring("lib", version.New(1, 0))
	app.Root.SetMember("use_lib", schema.NewFunc(schema.RefType("lib.compute")))

	result, err := Resolve(app, idx)
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if result.Deps["lib"] != version.New(2, 0) {
		t.Errorf("Resolve() = %v, want 2.0 (selective major-crossing should admit it)", result.Deps["lib"])
	}
}

func TestResolveRefusesMajorCrossingWithBreakingChangeOnUsedPath(t *testing.T) {
	idx := index.New()

	v1 := libAt("lib", version.New(1, 0))
	v1.Root.SetMember("compute", schema.NewFunc(schema.IntType(), schema.Param{Name: "x", Type: schema.IntType()}))
	publish(t, idx, v1)

	v2 := libAt("lib", version.New(2, 0))
	v2.Root.SetMember("compute", schema.NewFunc(schema.StrType(), schema.Param{Name: "x", Type: schema.IntType()}))
	publish(t, idx, v2)

	app := appRequiring("lib", version.New(1, 0))
	app.Root.SetMember("use_lib", schema.NewFunc(schema.RefType("lib.compute")))

	result, err := Resolve(app, idx)
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if result.Deps["lib"] != version.New(1, 0) {
		t.Errorf("Resolve() = %v, want 1.0 (return type changed on a used path, so 2.0 is not admissible)", result.Deps["lib"])
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	idx := index.New()
	publish(t, idx, libAt("lib", version.New(1, 0)))
	publish(t, idx, libAt("lib", version.New(1, 3)))

	app := appRequiring("lib", version.New(1, 0))

	first, err := Resolve(app, idx)
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	second, err := Resolve(app, idx)
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if first.Deps["lib"] != second.Deps["lib"] {
		t.Errorf("Resolve() not deterministic: %v vs %v", first.Deps["lib"], second.Deps["lib"])
	}
}

func TestResolveTransitiveRequirement(t *testing.T) {
	idx := index.New()

	base := libAt("base", version.New(1, 0))
	publish(t, idx, base)

	lib := libAt("lib", version.New(1, 0))
	lib.AddRequirement("base", version.New(1, 0))
	publish(t, idx, lib)

	app := appRequiring("lib", version.New(1, 0))
	result, err := Resolve(app, idx)
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if _, ok := result.Deps["base"]; !ok {
		t.Error("Resolve() did not include the transitive requirement \"base\"")
	}
	if result.Origins["base"] != "lib" {
		t.Errorf("Origins[\"base\"] = %q, want \"lib\"", result.Origins["base"])
	}
}

func TestResolveDetectsCycle(t *testing.T) {
	idx := index.New()

	libA := libAt("libA", version.New(1, 0))
	libA.AddRequirement("libB", version.New(1, 0))
	publish(t, idx, libA)

	libB := libAt("libB", version.New(1, 0))
	libB.AddRequirement("libA", version.New(1, 0))
	publish(t, idx, libB)

	app := appRequiring("libA", version.New(1, 0))
	_, err := Resolve(app, idx)
	if !errors.Is(err, myxaerr.ErrCycle) {
		t.Errorf("Resolve() = %v, want ErrCycle", err)
	}
}

func TestPlanUpdatesProposesSameMajorBump(t *testing.T) {
	idx := index.New()
	publish(t, idx, libAt("lib", version.New(1, 0)))
	publish(t, idx, libAt("lib", version.New(1, 4)))

	app := schema.New("app", "an application")
	app.AddRequirement("lib", version.New(1, 0))
	app.Deps = map[string]schema.Dep{"lib": {Name: "lib", Version: version.New(1, 0)}}

	plans, err := PlanUpdates(app, idx)
	if err != nil {
		t.Fatalf("PlanUpdates() returned error: %v", err)
	}
	if len(plans) != 1 || plans[0].To.Version != version.New(1, 4) {
		t.Errorf("PlanUpdates() = %v, want one plan to 1.4", plans)
	}
}

func TestPlanUpdatesIdempotent(t *testing.T) {
	idx := index.New()
	publish(t, idx, libAt("lib", version.New(1, 0)))
	publish(t, idx, libAt("lib", version.New(1, 4)))

	app := schema.New("app", "an application")
	app.AddRequirement("lib", version.New(1, 0))
	app.Deps = map[string]schema.Dep{"lib": {Name: "lib", Version: version.New(1, 0)}}

	first, err := PlanUpdates(app, idx)
	if err != nil {
		t.Fatalf("PlanUpdates() returned error: %v", err)
	}
	updated, err := Apply(app, first)
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}

	second, err := PlanUpdates(updated, idx)
	if err != nil {
		t.Fatalf("PlanUpdates() returned error: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("PlanUpdates() after Apply() = %v, want no further plans", second)
	}
}
