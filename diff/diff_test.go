package diff

import (
	"testing"

	"github.com/gregorybchris/myxa/schema"
	"github.com/gregorybchris/myxa/version"
)

func newEulerPackage(returnType schema.Type, params ...schema.Param) *schema.Package {
	pkg := schema.New("euler", "math utilities")
	pkg.Root.SetMember("compute", schema.NewFunc(returnType, params...))
	return pkg
}

func TestComputeNoChanges(t *testing.T) {
	pkg := newEulerPackage(schema.IntType(), schema.Param{Name: "x", Type: schema.IntType()})
	d := Compute(pkg, pkg)
	if len(d.Changes) != 0 {
		t.Errorf("Compute() on identical packages = %v, want no changes", d.Changes)
	}
	if d.IsBreaking() {
		t.Error("IsBreaking() = true for identical packages, want false")
	}
}

func TestComputeAddMemberIsNonBreaking(t *testing.T) {
	oldPkg := schema.New("euler", "math utilities")
	newPkg := schema.New("euler", "math utilities")
	newPkg.Root.SetMember("compute", schema.NewFunc(schema.IntType()))

	d := Compute(oldPkg, newPkg)
	if len(d.Changes) != 1 {
		t.Fatalf("Compute() = %v changes, want 1", len(d.Changes))
	}
	if d.Changes[0].Category != NonBreaking {
		t.Errorf("add member change = %v, want NonBreaking", d.Changes[0].Category)
	}
	if d.IsBreaking() {
		t.Error("IsBreaking() = true for an added member, want false")
	}
}

func TestComputeRemoveMemberIsBreaking(t *testing.T) {
	oldPkg := newEulerPackage(schema.IntType())
	newPkg := schema.New("euler", "math utilities")

	d := Compute(oldPkg, newPkg)
	if !d.IsBreaking() {
		t.Error("IsBreaking() = false for a removed member, want true")
	}
}

func TestComputeStructFieldAdditionIsBreaking(t *testing.T) {
	oldStruct := schema.NewStruct()
	oldStruct.AddField("x", schema.IntType())
	newStruct := schema.NewStruct()
	newStruct.AddField("x", schema.IntType())
	newStruct.AddField("y", schema.IntType())

	oldPkg := schema.New("euler", "math utilities")
	oldPkg.Root.SetMember("Point", schema.StructMember(*oldStruct))
	newPkg := schema.New("euler", "math utilities")
	newPkg.Root.SetMember("Point", schema.StructMember(*newStruct))

	d := Compute(oldPkg, newPkg)
	if !d.IsBreaking() {
		t.Error("IsBreaking() = false for an added struct field, want true (spec.md §4.3)")
	}
}

func TestComputeParamReorderIsBreaking(t *testing.T) {
	oldPkg := newEulerPackage(schema.IntType(),
		schema.Param{Name: "x", Type: schema.IntType()},
		schema.Param{Name: "y", Type: schema.IntType()})
	newPkg := newEulerPackage(schema.IntType(),
		schema.Param{Name: "y", Type: schema.IntType()},
		schema.Param{Name: "x", Type: schema.IntType()})

	d := Compute(oldPkg, newPkg)
	if !d.IsBreaking() {
		t.Error("IsBreaking() = false for reordered parameters, want true")
	}
}

func TestComputeReturnTypeChangeIsBreaking(t *testing.T) {
	oldPkg := newEulerPackage(schema.IntType())
	newPkg := newEulerPackage(schema.StrType())

	d := Compute(oldPkg, newPkg)
	if !d.IsBreaking() {
		t.Error("IsBreaking() = false for a changed return type, want true")
	}
}

func TestComputeEnumVariantAdditionIsBreaking(t *testing.T) {
	oldEnum := schema.NewEnum()
	oldEnum.AddVariant("A", nil)
	newEnum := schema.NewEnum()
	newEnum.AddVariant("A", nil)
	newEnum.AddVariant("B", nil)

	oldPkg := schema.New("euler", "math utilities")
	oldPkg.Root.SetMember("Status", schema.EnumMember(*oldEnum))
	newPkg := schema.New("euler", "math utilities")
	newPkg.Root.SetMember("Status", schema.EnumMember(*newEnum))

	d := Compute(oldPkg, newPkg)
	if !d.IsBreaking() {
		t.Error("IsBreaking() = false for an added enum variant, want true (exhaustive match risk)")
	}
}

func TestComputeMemberKindChangeIsBreaking(t *testing.T) {
	oldPkg := newEulerPackage(schema.IntType())
	newPkg := schema.New("euler", "math utilities")
	s := schema.NewStruct()
	s.AddField("x", schema.IntType())
	newPkg.Root.SetMember("compute", schema.StructMember(*s))

	d := Compute(oldPkg, newPkg)
	if !d.IsBreaking() {
		t.Error("IsBreaking() = false for a member kind change (Func -> Struct), want true")
	}
}

func TestComputeOrderIsPathSorted(t *testing.T) {
	oldPkg := schema.New("euler", "math utilities")
	newPkg := schema.New("euler", "math utilities")
	newPkg.Root.SetMember("zeta", schema.NewFunc(schema.IntType()))
	newPkg.Root.SetMember("alpha", schema.NewFunc(schema.IntType()))

	d := Compute(oldPkg, newPkg)
	if len(d.Changes) != 2 {
		t.Fatalf("Compute() = %v changes, want 2", len(d.Changes))
	}
	if d.Changes[0].Path > d.Changes[1].Path {
		t.Errorf("changes not path-sorted: %v", d.Changes)
	}
}

func TestRequiredBump(t *testing.T) {
	old := version.New(1, 3)

	breakingDiff := Diff{Changes: []Change{{Category: Breaking, Path: "p.m"}}}
	if got := RequiredBump(old, breakingDiff); got != version.New(2, 0) {
		t.Errorf("RequiredBump(breaking) = %v, want 2.0", got)
	}

	nonBreakingDiff := Diff{Changes: []Change{{Category: NonBreaking, Path: "p.m"}}}
	if got := RequiredBump(old, nonBreakingDiff); got != version.New(1, 4) {
		t.Errorf("RequiredBump(non-breaking) = %v, want 1.4", got)
	}

	emptyDiff := Diff{}
	if got := RequiredBump(old, emptyDiff); got != version.New(1, 4) {
		t.Errorf("RequiredBump(empty) = %v, want 1.4", got)
	}
}

func TestComputeAddedDepIsBreaking(t *testing.T) {
	oldPkg := schema.New("euler", "math utilities")
	newPkg := schema.New("euler", "math utilities")
	newPkg.Deps = map[string]schema.Dep{"stats": {Name: "stats", Version: version.New(1, 0)}}

	d := Compute(oldPkg, newPkg)
	if !d.IsBreaking() {
		t.Error("IsBreaking() = false for an added dependency lock, want true")
	}
}

func TestComputeRemovedDepIsBreaking(t *testing.T) {
	oldPkg := schema.New("euler", "math utilities")
	oldPkg.Deps = map[string]schema.Dep{"stats": {Name: "stats", Version: version.New(1, 0)}}
	newPkg := schema.New("euler", "math utilities")

	d := Compute(oldPkg, newPkg)
	if !d.IsBreaking() {
		t.Error("IsBreaking() = false for a removed dependency lock, want true")
	}
}

func TestComputeDepMajorBumpIsBreaking(t *testing.T) {
	oldPkg := schema.New("euler", "math utilities")
	oldPkg.Deps = map[string]schema.Dep{"stats": {Name: "stats", Version: version.New(1, 0)}}
	newPkg := schema.New("euler", "math utilities")
	newPkg.Deps = map[string]schema.Dep{"stats": {Name: "stats", Version: version.New(2, 0)}}

	d := Compute(oldPkg, newPkg)
	if !d.IsBreaking() {
		t.Error("IsBreaking() = false for a dependency major bump, want true")
	}
}

func TestComputeDepMinorBumpIsNonBreaking(t *testing.T) {
	oldPkg := schema.New("euler", "math utilities")
	oldPkg.Deps = map[string]schema.Dep{"stats": {Name: "stats", Version: version.New(1, 0)}}
	newPkg := schema.New("euler", "math utilities")
	newPkg.Deps = map[string]schema.Dep{"stats": {Name: "stats", Version: version.New(1, 1)}}

	d := Compute(oldPkg, newPkg)
	if d.IsBreaking() {
		t.Error("IsBreaking() = true for a dependency minor bump, want false")
	}
	if len(d.Changes) != 1 || d.Changes[0].Kind != KindDepMinorChanged {
		t.Errorf("Compute() changes = %v, want one KindDepMinorChanged", d.Changes)
	}
}

func TestComputeRestrictedDropsIrrelevantChanges(t *testing.T) {
	oldPkg := schema.New("euler", "math utilities")
	oldPkg.Root.SetMember("compute", schema.NewFunc(schema.IntType()))
	oldPkg.Root.SetMember("other", schema.NewFunc(schema.IntType()))

	newPkg := schema.New("euler", "math utilities")
	newPkg.Root.SetMember("compute", schema.NewFunc(schema.StrType()))
	// "other" removed entirely; not in the restricted path set.

	restricted := ComputeRestricted(oldPkg, newPkg, map[string]bool{"euler.compute": true})
	if !restricted.IsBreaking() {
		t.Error("ComputeRestricted() = non-breaking, want breaking (return type change on watched path)")
	}
	for _, c := range restricted.Changes {
		if c.Path != "euler.compute" {
			t.Errorf("ComputeRestricted() leaked unrelated path %q", c.Path)
		}
	}
}
