package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gregorybchris/myxa/version"
)

// This file implements the logical JSON schema spec.md §6 defines for
// the one bit-significant artifact in the system: the persisted index.
// Type and Member are tagged unions with no native Go JSON mapping, so
// they get hand-written MarshalJSON/UnmarshalJSON; Module and Package
// are plain enough to ride on struct tags.

type typeWire struct {
	Kind  string     `json:"kind"`
	Name  string     `json:"name,omitempty"`
	Arg   *Type      `json:"arg,omitempty"`
	Key   *Type      `json:"key,omitempty"`
	Value *Type      `json:"value,omitempty"`
	Args  []Type     `json:"args,omitempty"`
}

// MarshalJSON renders a Type per spec.md §6's Type schema.
func (t Type) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case KindPrim:
		return json.Marshal(typeWire{Kind: "Prim", Name: t.Prim.String()})
	case KindList:
		return json.Marshal(typeWire{Kind: "List", Arg: t.Elem})
	case KindSet:
		return json.Marshal(typeWire{Kind: "Set", Arg: t.Elem})
	case KindDict:
		return json.Marshal(typeWire{Kind: "Dict", Key: t.Key, Value: t.Elem})
	case KindTuple:
		args := t.Elems
		if args == nil {
			args = []Type{}
		}
		return json.Marshal(typeWire{Kind: "Tuple", Args: args})
	case KindRef:
		return json.Marshal(typeWire{Kind: "Ref", Name: t.Ref})
	default:
		return nil, fmt.Errorf("schema: unknown type kind %d", t.Kind)
	}
}

// UnmarshalJSON parses a Type per spec.md §6's Type schema.
func (t *Type) UnmarshalJSON(data []byte) error {
	var w typeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "Prim":
		prim, err := parsePrimKind(w.Name)
		if err != nil {
			return err
		}
		*t = PrimType(prim)
	case "List":
		if w.Arg == nil {
			return fmt.Errorf("schema: List type missing arg")
		}
		*t = ListType(*w.Arg)
	case "Set":
		if w.Arg == nil {
			return fmt.Errorf("schema: Set type missing arg")
		}
		*t = SetType(*w.Arg)
	case "Dict":
		if w.Key == nil || w.Value == nil {
			return fmt.Errorf("schema: Dict type requires exactly key and value")
		}
		*t = DictType(*w.Key, *w.Value)
	case "Tuple":
		*t = TupleType(w.Args...)
	case "Ref":
		*t = RefType(w.Name)
	default:
		return fmt.Errorf("schema: unknown type kind %q", w.Kind)
	}
	return nil
}

func parsePrimKind(name string) (PrimKind, error) {
	switch name {
	case "Int":
		return Int, nil
	case "Str":
		return Str, nil
	case "Float":
		return Float, nil
	case "Bool":
		return Bool, nil
	case "Null":
		return Null, nil
	default:
		return 0, fmt.Errorf("schema: unknown primitive type %q", name)
	}
}

type paramWire struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

type memberWire struct {
	Kind     string             `json:"kind"`
	Params   []paramWire        `json:"params,omitempty"`
	Return   *Type              `json:"return,omitempty"`
	Fields   map[string]Type    `json:"fields,omitempty"`
	Variants map[string]*Type   `json:"variants,omitempty"`
}

// MarshalJSON renders a Member per spec.md §6's Member schema. Struct
// and enum declaration order (FieldOrder/VariantOrder) isn't part of
// the wire schema — it's display-only per spec.md §3 — so it's dropped
// here and reconstructed alphabetically on read.
func (m Member) MarshalJSON() ([]byte, error) {
	switch m.Kind {
	case KindFunc:
		params := make([]paramWire, len(m.Func.Params))
		for i, p := range m.Func.Params {
			params[i] = paramWire{Name: p.Name, Type: p.Type}
		}
		ret := m.Func.Return
		return json.Marshal(memberWire{Kind: "Func", Params: params, Return: &ret})
	case KindStruct:
		return json.Marshal(memberWire{Kind: "Struct", Fields: m.Struct.Fields})
	case KindEnum:
		return json.Marshal(memberWire{Kind: "Enum", Variants: m.Enum.Variants})
	default:
		return nil, fmt.Errorf("schema: unknown member kind %d", m.Kind)
	}
}

// UnmarshalJSON parses a Member per spec.md §6's Member schema.
func (m *Member) UnmarshalJSON(data []byte) error {
	var w memberWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "Func":
		if w.Return == nil {
			return fmt.Errorf("schema: Func member missing return type")
		}
		params := make([]Param, len(w.Params))
		for i, p := range w.Params {
			params[i] = Param{Name: p.Name, Type: p.Type}
		}
		*m = FuncMember(Func{Params: params, Return: *w.Return})
	case "Struct":
		s := NewStruct()
		for _, name := range sortedKeys(w.Fields) {
			s.AddField(name, w.Fields[name])
		}
		*m = StructMember(*s)
	case "Enum":
		e := NewEnum()
		for _, name := range sortedPtrKeys(w.Variants) {
			e.AddVariant(name, w.Variants[name])
		}
		*m = EnumMember(*e)
	default:
		return fmt.Errorf("schema: unknown member kind %q", w.Kind)
	}
	return nil
}

type moduleWire struct {
	Name    string             `json:"name"`
	Modules map[string]*Module `json:"modules,omitempty"`
	Members map[string]Member  `json:"members,omitempty"`
}

// MarshalJSON renders a Module per spec.md §6's Module schema.
func (m Module) MarshalJSON() ([]byte, error) {
	return json.Marshal(moduleWire{Name: m.Name, Modules: m.Modules, Members: m.Members})
}

// UnmarshalJSON parses a Module per spec.md §6's Module schema.
func (m *Module) UnmarshalJSON(data []byte) error {
	var w moduleWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	m.Name = w.Name
	m.Modules = w.Modules
	if m.Modules == nil {
		m.Modules = map[string]*Module{}
	}
	m.Members = w.Members
	if m.Members == nil {
		m.Members = map[string]Member{}
	}
	return nil
}

type infoWire struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Version     version.Version `json:"version"`
	License     string          `json:"license,omitempty"`
}

type depWire struct {
	Name    string          `json:"name"`
	Version version.Version `json:"version"`
}

type depReqWire struct {
	Name       string          `json:"name"`
	MinVersion version.Version `json:"min_version"`
}

type packageWire struct {
	Info         infoWire              `json:"info"`
	Deps         map[string]depWire    `json:"deps,omitempty"`
	Requirements map[string]depReqWire `json:"requirements,omitempty"`
	RootModule   Module                `json:"root_module"`
}

// MarshalPackage renders a Package per spec.md §6's Package schema
// (with a "requirements" field added — an additive extension to carry
// the data model's unlocked DepReqs; see spec.md §6's note that "any
// equivalent on-disk encoding [is] acceptable").
func MarshalPackage(p *Package) ([]byte, error) {
	w := packageWire{
		Info: infoWire{
			Name:        p.Info.Name,
			Description: p.Info.Description,
			Version:     p.Info.Version,
			License:     p.Info.License,
		},
		RootModule: p.Root,
	}
	if p.Deps != nil {
		w.Deps = map[string]depWire{}
		for name, dep := range p.Deps {
			w.Deps[name] = depWire{Name: dep.Name, Version: dep.Version}
		}
	}
	if p.Requirements != nil {
		w.Requirements = map[string]depReqWire{}
		for name, req := range p.Requirements {
			w.Requirements[name] = depReqWire{Name: req.Name, MinVersion: req.MinVersion}
		}
	}
	return json.MarshalIndent(w, "", "  ")
}

// UnmarshalPackage parses a Package per spec.md §6's Package schema.
func UnmarshalPackage(data []byte) (*Package, error) {
	var w packageWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	p := &Package{
		Info: PackageInfo{
			Name:        w.Info.Name,
			Description: w.Info.Description,
			Version:     w.Info.Version,
			License:     w.Info.License,
		},
		Root:         w.RootModule,
		Requirements: map[string]DepReq{},
	}
	for name, dw := range w.Deps {
		if p.Deps == nil {
			p.Deps = map[string]Dep{}
		}
		p.Deps[name] = Dep{Name: dw.Name, Version: dw.Version}
	}
	for name, rw := range w.Requirements {
		p.Requirements[name] = DepReq{Name: rw.Name, MinVersion: rw.MinVersion}
	}
	return p, nil
}

func sortedKeys(m map[string]Type) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedPtrKeys(m map[string]*Type) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
