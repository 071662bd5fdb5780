package publish

import (
	"errors"
	"testing"

	"github.com/gregorybchris/myxa/index"
	"github.com/gregorybchris/myxa/myxaerr"
	"github.com/gregorybchris/myxa/schema"
	"github.com/gregorybchris/myxa/version"
)

func TestPublishFirstVersionMustBeInitial(t *testing.T) {
	idx := index.New()
	pkg := schema.New("euler", "math utilities")
	pkg.Info.Version = version.New(2, 0)

	err := Publish(pkg, idx)
	if !errors.Is(err, myxaerr.ErrInvalidInitialVersion) {
		t.Errorf("Publish() = %v, want ErrInvalidInitialVersion", err)
	}
}

func TestPublishFirstVersionSucceeds(t *testing.T) {
	idx := index.New()
	pkg := schema.New("euler", "math utilities")

	if err := Publish(pkg, idx); err != nil {
		t.Fatalf("Publish() returned error: %v", err)
	}

	latest, err := idx.Latest("euler")
	if err != nil {
		t.Fatalf("Latest() returned error: %v", err)
	}
	if latest.Info.Version != version.Initial {
		t.Errorf("published version = %v, want %v", latest.Info.Version, version.Initial)
	}
}

func TestPublishRejectsDoublePublish(t *testing.T) {
	idx := index.New()
	pkg := schema.New("euler", "math utilities")
	if err := Publish(pkg, idx); err != nil {
		t.Fatalf("Publish() returned error: %v", err)
	}

	err := Publish(pkg, idx)
	if !errors.Is(err, myxaerr.ErrAlreadyPublished) {
		t.Errorf("Publish() of the same version twice = %v, want ErrAlreadyPublished", err)
	}
}

func TestPublishRequiresMinorBumpForNonBreakingChange(t *testing.T) {
	idx := index.New()
	v1 := schema.New("euler", "math utilities")
	if err := Publish(v1, idx); err != nil {
		t.Fatalf("Publish() returned error: %v", err)
	}

	v2 := schema.New("euler", "math utilities")
	v2.Root.SetMember("compute", schema.NewFunc(schema.IntType()))
	v2.Info.Version = version.New(2, 0) // wrong: only a minor bump is required

	err := Publish(v2, idx)
	var bumpErr *myxaerr.VersionBumpRequiredError
	if !errors.As(err, &bumpErr) {
		t.Fatalf("Publish() = %v, want VersionBumpRequiredError", err)
	}
	if bumpErr.Required != version.New(1, 1) {
		t.Errorf("VersionBumpRequiredError.Required = %v, want 1.1", bumpErr.Required)
	}
}

func TestPublishAcceptsCorrectMinorBump(t *testing.T) {
	idx := index.New()
	v1 := schema.New("euler", "math utilities")
	if err := Publish(v1, idx); err != nil {
		t.Fatalf("Publish() returned error: %v", err)
	}

	v2 := schema.New("euler", "math utilities")
	v2.Root.SetMember("compute", schema.NewFunc(schema.IntType()))
	v2.Info.Version = version.New(1, 1)

	if err := Publish(v2, idx); err != nil {
		t.Errorf("Publish() returned error for a correctly minor-bumped non-breaking change: %v", err)
	}
}

func TestPublishRequiresMajorBumpForBreakingChange(t *testing.T) {
	idx := index.New()
	v1 := schema.New("euler", "math utilities")
	v1.Root.SetMember("compute", schema.NewFunc(schema.IntType()))
	if err := Publish(v1, idx); err != nil {
		t.Fatalf("Publish() returned error: %v", err)
	}

	v2 := schema.New("euler", "math utilities")
	v2.Info.Version = version.New(1, 1) // wrong: compute was removed, a breaking change

	err := Publish(v2, idx)
	var bumpErr *myxaerr.VersionBumpRequiredError
	if !errors.As(err, &bumpErr) {
		t.Fatalf("Publish() = %v, want VersionBumpRequiredError", err)
	}
	if bumpErr.Required != version.New(2, 0) {
		t.Errorf("VersionBumpRequiredError.Required = %v, want 2.0", bumpErr.Required)
	}
}

func TestPublishRejectsSelfReferentialCycle(t *testing.T) {
	idx := index.New()

	libB1 := schema.New("libB", "a library")
	if err := Publish(libB1, idx); err != nil {
		t.Fatalf("Publish(libB@1.0) returned error: %v", err)
	}

	libA := schema.New("libA", "a library")
	libA.AddRequirement("libB", version.New(1, 0))
	libA.Deps = map[string]schema.Dep{"libB": {Name: "libB", Version: version.New(1, 0)}}
	if err := Publish(libA, idx); err != nil {
		t.Fatalf("Publish(libA@1.0) returned error: %v", err)
	}

	libB2 := schema.New("libB", "a library")
	libB2.Info.Version = version.New(1, 1)
	libB2.AddRequirement("libA", version.New(1, 0))
	libB2.Deps = map[string]schema.Dep{"libA": {Name: "libA", Version: version.New(1, 0)}}

	err := Publish(libB2, idx)
	if !errors.Is(err, myxaerr.ErrCycle) {
		t.Errorf("Publish() = %v, want ErrCycle", err)
	}
}

func TestPublishRejectsUnlockedRequirements(t *testing.T) {
	idx := index.New()
	pkg := schema.New("app", "an application")
	pkg.AddRequirement("lib", version.New(1, 0))
	// no Deps set: requirements are unlocked

	err := Publish(pkg, idx)
	var ifaceErr *myxaerr.InvalidInterfaceError
	if !errors.As(err, &ifaceErr) {
		t.Errorf("Publish() = %v, want InvalidInterfaceError for unlocked requirements", err)
	}
}
