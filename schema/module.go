package schema

import "sort"

// Module is a named container of members, with nested child modules.
// The root module of a Package carries the package's own name.
type Module struct {
	Name    string
	Modules map[string]*Module
	Members map[string]Member
}

// NewModule constructs an empty module with the given name.
func NewModule(name string) *Module {
	return &Module{Name: name, Modules: map[string]*Module{}, Members: map[string]Member{}}
}

// AddModule inserts (or returns the existing) child module by name.
func (m *Module) AddModule(name string) *Module {
	if child, ok := m.Modules[name]; ok {
		return child
	}
	child := NewModule(name)
	m.Modules[name] = child
	return child
}

// SetMember adds or replaces a member by name.
func (m *Module) SetMember(name string, member Member) {
	m.Members[name] = member
}

// SortedMemberNames returns member names in lexicographic order, the
// order the diff engine and renderer both walk members in.
func (m *Module) SortedMemberNames() []string {
	names := make([]string, 0, len(m.Members))
	for name := range m.Members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedModuleNames returns child module names in lexicographic order.
func (m *Module) SortedModuleNames() []string {
	names := make([]string, 0, len(m.Modules))
	for name := range m.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
