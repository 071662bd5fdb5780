package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/github/go-spdx/v2/spdxexp"

	"github.com/gregorybchris/myxa/myxaerr"
)

var nameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks a package's structural integrity: every name is a
// well-formed identifier, every container type is well-shaped, every
// Ref resolves (within the package itself or a locked dependency at
// its locked version), and (a supplement — see SPEC_FULL.md §11) the
// license expression, if set, is valid SPDX. Refs are validated last,
// per spec.md §9, since they may point anywhere in the fully-populated
// tree.
func Validate(pkg *Package, locked map[string]*Package) error {
	if !nameRe.MatchString(pkg.Info.Name) {
		return &myxaerr.InvalidInterfaceError{Path: pkg.Info.Name, Reason: "invalid package name"}
	}
	if pkg.Info.License != "" {
		valid, err := spdxexp.ValidateLicenses([]string{pkg.Info.License})
		if err != nil || !valid {
			return &myxaerr.InvalidInterfaceError{
				Path:   pkg.Info.Name,
				Reason: fmt.Sprintf("invalid SPDX license expression %q: %v", pkg.Info.License, err),
			}
		}
	}

	refs := map[string]bool{}
	if err := validateModule(&pkg.Root, []string{pkg.Info.Name}, refs); err != nil {
		return err
	}

	for absName := range refs {
		if err := resolveRef(absName, pkg, locked); err != nil {
			return err
		}
	}
	return nil
}

func validateModule(m *Module, path []string, refs map[string]bool) error {
	if !nameRe.MatchString(m.Name) {
		return &myxaerr.InvalidInterfaceError{Path: strings.Join(path, "."), Reason: "invalid module name"}
	}

	for name, child := range m.Modules {
		if !nameRe.MatchString(name) {
			return &myxaerr.InvalidInterfaceError{Path: strings.Join(path, "."), Reason: "invalid module name " + name}
		}
		if err := validateModule(child, append(path, name), refs); err != nil {
			return err
		}
	}

	for name, member := range m.Members {
		if !nameRe.MatchString(name) {
			return &myxaerr.InvalidInterfaceError{Path: strings.Join(path, "."), Reason: "invalid member name " + name}
		}
		if err := validateMember(member, append(path, name), refs); err != nil {
			return err
		}
	}
	return nil
}

func validateMember(member Member, path []string, refs map[string]bool) error {
	pathStr := strings.Join(path, ".")
	switch member.Kind {
	case KindFunc:
		seen := map[string]bool{}
		for _, param := range member.Func.Params {
			if !nameRe.MatchString(param.Name) {
				return &myxaerr.InvalidInterfaceError{Path: pathStr, Reason: "invalid parameter name " + param.Name}
			}
			if seen[param.Name] {
				return &myxaerr.InvalidInterfaceError{Path: pathStr, Reason: "duplicate parameter name " + param.Name}
			}
			seen[param.Name] = true
			if err := validateType(param.Type, pathStr, refs); err != nil {
				return err
			}
		}
		return validateType(member.Func.Return, pathStr, refs)
	case KindStruct:
		for name, t := range member.Struct.Fields {
			if !nameRe.MatchString(name) {
				return &myxaerr.InvalidInterfaceError{Path: pathStr, Reason: "invalid field name " + name}
			}
			if err := validateType(t, pathStr, refs); err != nil {
				return err
			}
		}
		return nil
	case KindEnum:
		for name, payload := range member.Enum.Variants {
			if !nameRe.MatchString(name) {
				return &myxaerr.InvalidInterfaceError{Path: pathStr, Reason: "invalid variant name " + name}
			}
			if payload != nil {
				if err := validateType(*payload, pathStr, refs); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return &myxaerr.InvalidInterfaceError{Path: pathStr, Reason: "unknown member kind"}
	}
}

func validateType(t Type, pathStr string, refs map[string]bool) error {
	switch t.Kind {
	case KindPrim:
		return nil
	case KindList, KindSet:
		if t.Elem == nil {
			return &myxaerr.InvalidInterfaceError{Path: pathStr, Reason: "container missing element type"}
		}
		return validateType(*t.Elem, pathStr, refs)
	case KindDict:
		if t.Key == nil || t.Elem == nil {
			return &myxaerr.InvalidInterfaceError{Path: pathStr, Reason: "Dict requires exactly two type arguments"}
		}
		if err := validateType(*t.Key, pathStr, refs); err != nil {
			return err
		}
		return validateType(*t.Elem, pathStr, refs)
	case KindTuple:
		for _, elem := range t.Elems {
			if err := validateType(elem, pathStr, refs); err != nil {
				return err
			}
		}
		return nil
	case KindRef:
		if t.Ref == "" {
			return &myxaerr.InvalidInterfaceError{Path: pathStr, Reason: "empty Ref"}
		}
		refs[t.Ref] = true
		return nil
	default:
		return &myxaerr.InvalidInterfaceError{Path: pathStr, Reason: "malformed type"}
	}
}

// resolveRef checks that an absolute Ref name resolves to a Struct or
// Enum member, either within pkg itself or within one of its locked
// dependencies (looked up in locked, keyed by package name).
func resolveRef(absName string, pkg *Package, locked map[string]*Package) error {
	segments := strings.Split(absName, ".")
	if len(segments) < 2 {
		return &myxaerr.InvalidInterfaceError{Path: absName, Reason: "malformed Ref"}
	}

	pkgName := segments[0]
	var target *Package
	if pkgName == pkg.Info.Name {
		target = pkg
	} else if locked != nil {
		target = locked[pkgName]
	}
	if target == nil {
		return &myxaerr.InvalidInterfaceError{Path: absName, Reason: "Ref does not resolve: unknown package " + pkgName}
	}

	mod := &target.Root
	rest := segments[1:]
	for len(rest) > 1 {
		next, ok := mod.Modules[rest[0]]
		if !ok {
			return &myxaerr.InvalidInterfaceError{Path: absName, Reason: "Ref does not resolve: no module " + rest[0]}
		}
		mod = next
		rest = rest[1:]
	}

	member, ok := mod.Members[rest[0]]
	if !ok {
		return &myxaerr.InvalidInterfaceError{Path: absName, Reason: "Ref does not resolve: no member " + rest[0]}
	}
	if member.Kind != KindStruct && member.Kind != KindEnum {
		return &myxaerr.InvalidInterfaceError{Path: absName, Reason: "Ref must point at a Struct or Enum"}
	}
	return nil
}
