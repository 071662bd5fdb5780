package index

import (
	"encoding/json"

	"github.com/gregorybchris/myxa/schema"
	"github.com/gregorybchris/myxa/version"
)

type wireIndex struct {
	Packages map[string]map[version.Version]json.RawMessage `json:"packages"`
}

// ToJSON renders the whole index per spec.md §6's top-level
// `{"packages": {<name>: {<version-string>: Package}}}` schema,
// reusing schema.MarshalPackage for each entry.
func (idx *Index) ToJSON() ([]byte, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := wireIndex{Packages: map[string]map[version.Version]json.RawMessage{}}
	for name, versions := range idx.packages {
		out.Packages[name] = map[version.Version]json.RawMessage{}
		for v, pkg := range versions {
			data, err := schema.MarshalPackage(pkg)
			if err != nil {
				return nil, err
			}
			out.Packages[name][v] = data
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// FromJSON parses an index previously rendered by ToJSON.
func FromJSON(data []byte) (*Index, error) {
	var w wireIndex
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}

	idx := New()
	for name, versions := range w.Packages {
		idx.packages[name] = map[version.Version]*schema.Package{}
		for v, raw := range versions {
			pkg, err := schema.UnmarshalPackage(raw)
			if err != nil {
				return nil, err
			}
			idx.packages[name][v] = pkg
		}
	}
	return idx, nil
}
