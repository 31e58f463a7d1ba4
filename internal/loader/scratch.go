package loader

import (
	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/rule"
	"github.com/intentfw/ifw/internal/store"
)

// scratch stages parsed rules by kind while files are being read;
// nothing is indexed until every file has been parsed.
type scratch struct {
	byKind map[intent.Kind][]*rule.Rule
}

func newScratch() *scratch {
	return &scratch{byKind: map[intent.Kind][]*rule.Rule{}}
}

func (s *scratch) add(r *rule.Rule) {
	s.byKind[r.Kind] = append(s.byKind[r.Kind], r)
}

// install builds a fresh store.Store from every staged rule: matchAll
// rules go to the resolver's match-all list, otherwise each
// intent-filter and component-filter is registered. Package rules
// bypass resolvers entirely and land in the flat list.
func (s *scratch) install() *store.Store {
	st := store.New()
	for kind, rules := range s.byKind {
		if kind == intent.KindPackage {
			st.Package = append(st.Package, rules...)
			continue
		}
		res := st.Resolver(kind)
		for _, r := range rules {
			if r.MatchAll {
				res.AddMatchAll(r)
				continue
			}
			for _, f := range r.IntentFilters {
				res.AddFilter(f, r)
			}
			for _, c := range r.ComponentFilters {
				res.AddComponent(c, r)
			}
			// A rule with no filters and no matchAll is never indexed:
			// it simply never appears in any candidate set.
		}
	}
	return st
}
