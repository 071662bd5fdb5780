// Package myxaerr defines the error kinds shared across myxa's core
// packages: sentinel values plus detail-carrying wrapper types, in the
// same shape as the teacher's internal/core/errors.go (ErrNotFound +
// *NotFoundError with Unwrap). None of these are retried internally;
// they all surface to whatever collaborator (CLI, test) called in.
package myxaerr

import (
	"errors"
	"fmt"

	"github.com/gregorybchris/myxa/version"
)

// Sentinel errors. Wrapper types below all Unwrap to one of these, so
// callers can use errors.Is against the sentinel without caring about
// which detail type was returned.
var (
	ErrNotFound              = errors.New("not found")
	ErrAlreadyPublished      = errors.New("already published")
	ErrInvalidInitialVersion = errors.New("invalid initial version")
	ErrVersionBumpRequired   = errors.New("version bump required")
	ErrUnresolvable          = errors.New("unresolvable")
	ErrInvalidInterface      = errors.New("invalid interface")
	ErrUnknownDependency     = errors.New("unknown dependency")
	ErrCycle                 = errors.New("dependency cycle")
)

// NotFoundError reports a package or version missing from an index.
type NotFoundError struct {
	Name    string
	Version *version.Version // nil if the whole package name is missing
}

func (e *NotFoundError) Error() string {
	if e.Version != nil {
		return fmt.Sprintf("package %s version %s not found", e.Name, e.Version)
	}
	return fmt.Sprintf("package %s not found", e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// AlreadyPublishedError reports a duplicate (name, version) insert.
type AlreadyPublishedError struct {
	Name    string
	Version version.Version
}

func (e *AlreadyPublishedError) Error() string {
	return fmt.Sprintf("package %s version %s already published", e.Name, e.Version)
}

func (e *AlreadyPublishedError) Unwrap() error { return ErrAlreadyPublished }

// InvalidInitialVersionError reports a first publish at a version other
// than (1, 0).
type InvalidInitialVersionError struct {
	Name string
	Got  version.Version
}

func (e *InvalidInitialVersionError) Error() string {
	return fmt.Sprintf("package %s: first publish must be version %s, got %s", e.Name, version.Initial, e.Got)
}

func (e *InvalidInitialVersionError) Unwrap() error { return ErrInvalidInitialVersion }

// VersionBumpRequiredError reports a publish whose version doesn't match
// the bump the diff against the previously published version requires.
type VersionBumpRequiredError struct {
	Name     string
	Required version.Version
	Actual   version.Version
}

func (e *VersionBumpRequiredError) Error() string {
	return fmt.Sprintf("package %s: version bump to %s required, got %s", e.Name, e.Required, e.Actual)
}

func (e *VersionBumpRequiredError) Unwrap() error { return ErrVersionBumpRequired }

// UnresolvableError reports a dependency graph the resolver could not
// satisfy, naming the last package it failed on and why.
type UnresolvableError struct {
	Package string
	Reason  string
}

func (e *UnresolvableError) Error() string {
	return fmt.Sprintf("cannot resolve %s: %s", e.Package, e.Reason)
}

func (e *UnresolvableError) Unwrap() error { return ErrUnresolvable }

// InvalidInterfaceError reports a structural integrity failure in a
// package's interface model: an unresolved Ref, a name collision, or a
// malformed container type.
type InvalidInterfaceError struct {
	Path   string
	Reason string
}

func (e *InvalidInterfaceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid interface: %s", e.Reason)
	}
	return fmt.Sprintf("invalid interface at %s: %s", e.Path, e.Reason)
}

func (e *InvalidInterfaceError) Unwrap() error { return ErrInvalidInterface }

// UnknownDependencyError reports a DepReq naming a package absent from
// the index.
type UnknownDependencyError struct {
	Name string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("unknown dependency: %s", e.Name)
}

func (e *UnknownDependencyError) Unwrap() error { return ErrUnknownDependency }

// CycleError reports a dependency cycle, naming the path that closes it.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", joinArrow(e.Path))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

func joinArrow(path []string) string {
	s := ""
	for i, p := range path {
		if i > 0 {
			s += " -> "
		}
		s += p
	}
	return s
}
