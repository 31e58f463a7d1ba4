package predicate

import (
	"path"
	"regexp"
	"strings"
)

// Mode is one of the five matching modes every string-match leaf
// accepts.
type Mode int

const (
	Equals Mode = iota
	StartsWith
	Contains
	Pattern
	Regex
)

func ModeFromAttr(s string) (Mode, bool) {
	switch s {
	case "equals":
		return Equals, true
	case "starts-with", "startsWith":
		return StartsWith, true
	case "contains":
		return Contains, true
	case "pattern":
		return Pattern, true
	case "regex":
		return Regex, true
	default:
		return 0, false
	}
}

// match applies mode to subject/literal. pattern follows Go's
// path.Match glob grammar (*, ?, [...]); regex follows Go's RE2
// regexp grammar. Both are fixed here: whichever grammar a rule file
// is written against, it is these two.
//
// An empty subject matches only an Equals or a Contains predicate
// against the empty literal (an empty subject contains nothing but the
// empty string); every other mode never matches an empty subject.
func match(mode Mode, subject, literal string, compiled *regexp.Regexp) bool {
	if subject == "" {
		switch mode {
		case Equals, Contains:
			return literal == ""
		default:
			return false
		}
	}
	switch mode {
	case Equals:
		return subject == literal
	case StartsWith:
		return strings.HasPrefix(subject, literal)
	case Contains:
		return strings.Contains(subject, literal)
	case Pattern:
		ok, err := path.Match(literal, subject)
		return err == nil && ok
	case Regex:
		if compiled == nil {
			return false
		}
		return compiled.MatchString(subject)
	default:
		return false
	}
}
