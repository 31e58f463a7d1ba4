// Package resolver implements the per-dispatch-kind rule index: three
// parallel structures (an intent-filter index, a component index, and
// a match-all list) that prune a rule set down to a small candidate
// set before full predicate evaluation.
package resolver

import (
	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/intentfilter"
	"github.com/intentfw/ifw/internal/rule"
)

type filterEntry struct {
	filter *intentfilter.Filter
	owner  *rule.Rule
}

// noActionBucket holds filters with no Actions — they admit any
// action, so every intent query must also scan this bucket.
const noActionBucket = ""

// Resolver is the index for one dispatch kind.
type Resolver struct {
	byAction   map[string][]filterEntry
	components map[intent.Component][]*rule.Rule
	matchAll   []*rule.Rule
}

// New returns an empty Resolver.
func New() *Resolver {
	return &Resolver{
		byAction:   map[string][]filterEntry{},
		components: map[intent.Component][]*rule.Rule{},
	}
}

// AddFilter registers owner under every action the filter declares, or
// under the no-action bucket if it declares none.
func (r *Resolver) AddFilter(f *intentfilter.Filter, owner *rule.Rule) {
	if len(f.Actions) == 0 {
		r.byAction[noActionBucket] = append(r.byAction[noActionBucket], filterEntry{f, owner})
		return
	}
	for _, action := range f.Actions {
		r.byAction[action] = append(r.byAction[action], filterEntry{f, owner})
	}
}

// AddComponent registers owner under the exact component name.
func (r *Resolver) AddComponent(c intent.Component, owner *rule.Rule) {
	r.components[c] = append(r.components[c], owner)
}

// AddMatchAll appends owner to the match-all list.
func (r *Resolver) AddMatchAll(owner *rule.Rule) {
	r.matchAll = append(r.matchAll, owner)
}

// Stats reports the index's shape: how many distinct actions are
// bucketed, how many filter entries and component entries are
// registered in total, and the match-all list's length. Diagnostic
// only — ifwctl stats prints this per kind.
type Stats struct {
	Actions      int
	FilterCount  int
	ComponentMap int
	MatchAll     int
}

func (r *Resolver) Stats() Stats {
	var filters int
	for _, entries := range r.byAction {
		filters += len(entries)
	}
	return Stats{
		Actions:      len(r.byAction),
		FilterCount:  filters,
		ComponentMap: len(r.components),
		MatchAll:     len(r.matchAll),
	}
}

// Candidates builds the candidate set for one dispatch: query the
// intent-filter index (if an intent was supplied), append the
// component index's rules (if a resolved component was supplied),
// append every match-all rule, and deduplicate by rule identity. A
// rule whose full predicate would match is always in the returned
// set; the set may also contain rules whose predicate will reject.
func (r *Resolver) Candidates(i *intent.Intent, component *intent.Component) []*rule.Rule {
	seen := map[*rule.Rule]struct{}{}
	var out []*rule.Rule
	add := func(owner *rule.Rule) {
		if _, ok := seen[owner]; ok {
			return
		}
		seen[owner] = struct{}{}
		out = append(out, owner)
	}

	if i != nil {
		for _, e := range r.byAction[i.Action] {
			if e.filter.Admits(i) {
				add(e.owner)
			}
		}
		if i.Action != noActionBucket {
			for _, e := range r.byAction[noActionBucket] {
				if e.filter.Admits(i) {
					add(e.owner)
				}
			}
		}
	}

	if component != nil {
		for _, owner := range r.components[*component] {
			add(owner)
		}
	}

	for _, owner := range r.matchAll {
		add(owner)
	}

	return out
}
