package schema

// MemberKind discriminates the Member sum: Func, Struct, or Enum.
type MemberKind int

const (
	KindFunc MemberKind = iota
	KindStruct
	KindEnum
)

func (k MemberKind) String() string {
	switch k {
	case KindFunc:
		return "Func"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	default:
		return "Unknown"
	}
}

// Param is one positional, named function parameter. Order and name
// both participate in the signature's identity: spec.md §4.3 treats a
// parameter rename the same as a remove+add (both breaking).
type Param struct {
	Name string
	Type Type
}

// Func is a function member: an ordered parameter list and a return
// type. Optional parameters are a non-goal, so every parameter is
// required and order is significant.
type Func struct {
	Params []Param
	Return Type
}

// Field is one named field of a Struct.
type Field struct {
	Name string
	Type Type
}

// Struct is a product type: a set of named, typed fields. FieldOrder
// retains declaration order for display only — it carries no semantic
// weight in diffing (struct fields are compared by name, not position).
type Struct struct {
	FieldOrder []string
	Fields     map[string]Type
}

// OrderedFields returns the struct's fields in declaration order.
func (s Struct) OrderedFields() []Field {
	fields := make([]Field, 0, len(s.FieldOrder))
	for _, name := range s.FieldOrder {
		fields = append(fields, Field{Name: name, Type: s.Fields[name]})
	}
	return fields
}

// AddField appends a field to the struct, preserving declaration order.
func (s *Struct) AddField(name string, t Type) {
	if s.Fields == nil {
		s.Fields = map[string]Type{}
	}
	if _, exists := s.Fields[name]; !exists {
		s.FieldOrder = append(s.FieldOrder, name)
	}
	s.Fields[name] = t
}

// Variant is one named, optionally-payload-carrying case of an Enum.
// A nil Payload means the variant carries no data.
type Variant struct {
	Name    string
	Payload *Type
}

// Enum is a sum type: a set of named variants, each with an optional
// payload type. VariantOrder retains declaration order for display.
type Enum struct {
	VariantOrder []string
	Variants     map[string]*Type
}

// OrderedVariants returns the enum's variants in declaration order.
func (e Enum) OrderedVariants() []Variant {
	variants := make([]Variant, 0, len(e.VariantOrder))
	for _, name := range e.VariantOrder {
		variants = append(variants, Variant{Name: name, Payload: e.Variants[name]})
	}
	return variants
}

// AddVariant appends a variant to the enum, preserving declaration
// order. A nil payload means the variant carries no data.
func (e *Enum) AddVariant(name string, payload *Type) {
	if e.Variants == nil {
		e.Variants = map[string]*Type{}
	}
	if _, exists := e.Variants[name]; !exists {
		e.VariantOrder = append(e.VariantOrder, name)
	}
	e.Variants[name] = payload
}

// Member is a top-level, named declaration inside a Module: a
// function, a struct, or an enum. Like Type, it's a tagged struct with
// exactly one of Func/Struct/Enum populated, selected by Kind.
type Member struct {
	Kind   MemberKind
	Func   *Func
	Struct *Struct
	Enum   *Enum
}

// FuncMember wraps a Func as a Member.
func FuncMember(f Func) Member { return Member{Kind: KindFunc, Func: &f} }

// StructMember wraps a Struct as a Member.
func StructMember(s Struct) Member { return Member{Kind: KindStruct, Struct: &s} }

// EnumMember wraps an Enum as a Member.
func EnumMember(e Enum) Member { return Member{Kind: KindEnum, Enum: &e} }

// NewFunc builds a Func member from ordered (name, type) parameter
// pairs and a return type.
func NewFunc(ret Type, params ...Param) Member {
	return FuncMember(Func{Params: params, Return: ret})
}

// NewStruct builds an empty Struct member ready for AddField calls.
func NewStruct() *Struct {
	return &Struct{Fields: map[string]Type{}}
}

// NewEnum builds an empty Enum member ready for AddVariant calls.
func NewEnum() *Enum {
	return &Enum{Variants: map[string]*Type{}}
}
