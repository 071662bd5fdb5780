package index

import "github.com/gregorybchris/myxa/schema"

// NewDepReq builds a DepReq for name pinned to the highest version
// currently published in idx (a supplement over spec.md's bare
// DepReq{name, min_version} — see SPEC_FULL.md §12, mirroring
// original_source/src/myxa/manager.py's Manager.add, which resolves a
// newly-added dependency's version against the index immediately
// rather than leaving it unset). Callers that want a DepReq with no
// index access — tests, or a draft built entirely by hand — should
// construct schema.DepReq directly instead; this helper exists only to
// back the CLI's `add` command.
func NewDepReq(idx *Index, name string) (schema.DepReq, error) {
	latest, err := idx.Latest(name)
	if err != nil {
		return schema.DepReq{}, err
	}
	return schema.DepReq{Name: name, MinVersion: latest.Info.Version}, nil
}
