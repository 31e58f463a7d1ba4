// Package loader enumerates *.xml rule files under a writable
// directory and an ordered list of read-only directories, parses each
// into Rules with per-rule and per-file error isolation, and
// assembles a fresh, ready-to-publish store.Store.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/predicate"
	"github.com/intentfw/ifw/internal/rule"
	"github.com/intentfw/ifw/internal/store"
)

// Summary is the one-line per-kind count the loader logs after
// parsing every file.
type Summary struct {
	Activity, Broadcast, Service, ProviderRules, Package int
	FilesParsed, FilesSkipped, RulesDiscarded            int
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"activity=%d broadcast=%d service=%d provider=%d package=%d files=%d skipped=%d discarded_rules=%d",
		s.Activity, s.Broadcast, s.Service, s.ProviderRules, s.Package,
		s.FilesParsed, s.FilesSkipped, s.RulesDiscarded,
	)
}

// Load enumerates every "*.xml" file in writableDir and, in order,
// each directory in readonlyDirs, parses them all, and returns a fresh
// Store ready for store.Handle.Publish. It never mutates any existing
// store — callers publish the result themselves.
func Load(writableDir string, readonlyDirs []string, log zerolog.Logger) (*store.Store, Summary, error) {
	var files []string
	dirs := append([]string{writableDir}, readonlyDirs...)
	for _, dir := range dirs {
		entries, err := enumerateXML(dir)
		if err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("ifw: rules directory unreadable")
			continue
		}
		files = append(files, entries...)
	}

	scratch := newScratch()
	var summary Summary
	for _, path := range files {
		rules, err := parseFile(path)
		if err != nil {
			summary.FilesSkipped++
			log.Warn().Err(err).Str("file", path).Msg("ifw: discarding malformed rule file")
			continue
		}
		summary.FilesParsed++
		for _, r := range rules {
			if r == nil {
				summary.RulesDiscarded++
				continue
			}
			scratch.add(r)
		}
	}

	st := scratch.install()
	summary.Activity = len(scratch.byKind[intent.KindActivity])
	summary.Broadcast = len(scratch.byKind[intent.KindBroadcast])
	summary.Service = len(scratch.byKind[intent.KindService])
	summary.ProviderRules = len(scratch.byKind[intent.KindProvider])
	summary.Package = len(scratch.byKind[intent.KindPackage])

	log.Info().Str("summary", summary.String()).Msg("ifw: rule load complete")
	return st, summary, nil
}

func enumerateXML(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".xml") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// parseFile parses one rule file. A file-level error (missing root,
// malformed XML, I/O failure) discards the whole file. A per-rule
// error discards only that rule — represented here as a nil entry in
// the returned slice so the caller can still count it.
func parseFile(path string) ([]*rule.Rule, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "rules" {
		return nil, fmt.Errorf("%s: missing or unrecognized root element", path)
	}

	var rules []*rule.Rule
	ordinal := 0
	for _, child := range root.ChildElements() {
		kind, ok := kindForTag(child.Tag)
		if !ok {
			continue // unrecognized top-level tags are ignored
		}
		ordinal++
		r, err := parseRule(kind, child, fmt.Sprintf("%s#%d", path, ordinal))
		if err != nil {
			rules = append(rules, nil) // per-rule error: discarded, file continues
			continue
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func kindForTag(tag string) (intent.Kind, bool) {
	switch tag {
	case "activity":
		return intent.KindActivity, true
	case "service":
		return intent.KindService, true
	case "broadcast":
		return intent.KindBroadcast, true
	case "provider":
		return intent.KindProvider, true
	case "package":
		return intent.KindPackage, true
	default:
		return "", false
	}
}

func parseRule(kind intent.Kind, el *etree.Element, id string) (*rule.Rule, error) {
	r := &rule.Rule{
		Kind:        kind,
		ID:          id,
		PackageName: el.SelectAttrValue("pkgName", ""),
		MatchAll:    boolAttr(el, "matchall"),
		Effects: rule.Effects{
			Block:      boolAttr(el, "block"),
			LogOnBlock: boolAttr(el, "log"),
			BlockQuery: boolAttr(el, "blockquery"),
			LogOnQuery: boolAttr(el, "logquery"),
		},
	}

	var nonFilterChildren []*etree.Element
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "intent-filter":
			if r.MatchAll {
				return nil, fmt.Errorf("%s: matchall rule may not declare <intent-filter>", id)
			}
			f, err := parseIntentFilter(child)
			if err != nil {
				return nil, err
			}
			r.IntentFilters = append(r.IntentFilters, f)
		case "component-filter":
			if r.MatchAll {
				return nil, fmt.Errorf("%s: matchall rule may not declare <component-filter>", id)
			}
			c, err := parseComponentFilter(child)
			if err != nil {
				return nil, err
			}
			r.ComponentFilters = append(r.ComponentFilters, c)
		default:
			nonFilterChildren = append(nonFilterChildren, child)
		}
	}

	var children []predicate.Predicate
	for _, child := range nonFilterChildren {
		p, err := parsePredicate(child)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		children = append(children, p)
	}
	r.Predicate = &predicate.And{Children: children}
	return r, nil
}
