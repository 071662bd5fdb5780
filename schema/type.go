// Package schema is myxa's interface model: the recursive algebraic
// data model of packages, modules, and members (functions, structs,
// enums, fields, parameters, types) spec.md §3 defines. It carries no
// business logic beyond structural integrity (Validate); diffing,
// resolving, and publishing live in sibling packages.
package schema

import "fmt"

// PrimKind enumerates the primitive types.
type PrimKind int

const (
	Int PrimKind = iota
	Str
	Float
	Bool
	Null
)

func (p PrimKind) String() string {
	switch p {
	case Int:
		return "Int"
	case Str:
		return "Str"
	case Float:
		return "Float"
	case Bool:
		return "Bool"
	case Null:
		return "Null"
	default:
		return "Unknown"
	}
}

// TypeKind discriminates the Type sum: which of Type's fields is
// meaningful. Go has no native sum type, so Type is a tagged struct —
// the "union with discriminator" spec.md §9 asks for, kept flat rather
// than modeled as an interface hierarchy so the diff engine can switch
// exhaustively on Kind.
type TypeKind int

const (
	KindPrim TypeKind = iota
	KindList
	KindSet
	KindDict
	KindTuple
	KindRef
)

// Type is a member's type: a primitive, a container, or a named
// reference to a Struct or Enum member elsewhere in the package graph.
// Exactly one group of fields is populated, selected by Kind:
//
//	KindPrim:  Prim
//	KindList:  Elem
//	KindSet:   Elem
//	KindDict:  Key, Elem (value)
//	KindTuple: Elems
//	KindRef:   Ref
type Type struct {
	Kind TypeKind

	Prim PrimKind // KindPrim

	Elem *Type // KindList, KindSet element; KindDict value

	Key *Type // KindDict key

	Elems []Type // KindTuple, in order, arity may be 0

	Ref string // KindRef: absolute "package.module.path.MemberName"
}

// Primitive constructors.
func PrimType(p PrimKind) Type { return Type{Kind: KindPrim, Prim: p} }
func IntType() Type            { return PrimType(Int) }
func StrType() Type            { return PrimType(Str) }
func FloatType() Type          { return PrimType(Float) }
func BoolType() Type           { return PrimType(Bool) }
func NullType() Type           { return PrimType(Null) }

// ListType builds List<elem>.
func ListType(elem Type) Type { return Type{Kind: KindList, Elem: &elem} }

// SetType builds Set<elem>.
func SetType(elem Type) Type { return Type{Kind: KindSet, Elem: &elem} }

// DictType builds Dict<key, value>.
func DictType(key, value Type) Type { return Type{Kind: KindDict, Key: &key, Elem: &value} }

// TupleType builds Tuple<elems...>, n >= 0.
func TupleType(elems ...Type) Type { return Type{Kind: KindTuple, Elems: elems} }

// RefType builds a named reference to an absolute member path.
func RefType(absoluteName string) Type { return Type{Kind: KindRef, Ref: absoluteName} }

// TypeEqual reports structural equality between two types: same
// constructor and recursively equal arguments. Refs are equal iff their
// absolute names are equal; tuples are equal iff same arity and
// pairwise equal element types. This is the equality the diff engine
// uses to decide whether a parameter/return/field/variant type changed.
func TypeEqual(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindPrim:
		return a.Prim == b.Prim
	case KindList, KindSet:
		return TypeEqual(*a.Elem, *b.Elem)
	case KindDict:
		return TypeEqual(*a.Key, *b.Key) && TypeEqual(*a.Elem, *b.Elem)
	case KindTuple:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !TypeEqual(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case KindRef:
		return a.Ref == b.Ref
	default:
		return false
	}
}

// String renders a type for display in diff descriptions and CLI
// rendering (e.g. "List<Dict<Str, Int>>", "pkg.mod.Point").
func (t Type) String() string {
	switch t.Kind {
	case KindPrim:
		return t.Prim.String()
	case KindList:
		return fmt.Sprintf("List<%s>", t.Elem.String())
	case KindSet:
		return fmt.Sprintf("Set<%s>", t.Elem.String())
	case KindDict:
		return fmt.Sprintf("Dict<%s, %s>", t.Key.String(), t.Elem.String())
	case KindTuple:
		s := "Tuple<"
		for i, e := range t.Elems {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + ">"
	case KindRef:
		return t.Ref
	default:
		return "?"
	}
}
