package predicate

import (
	"regexp"

	"github.com/intentfw/ifw/internal/normalize"
)

// Attr selects which intent/component field a string-match leaf
// inspects.
type Attr int

const (
	AttrAction Attr = iota
	AttrComponent
	AttrComponentName
	AttrComponentPackage
	AttrData
	AttrHost
	AttrMimeType
	AttrScheme
	AttrPath
	AttrSSP
)

// StringLeaf is the uniform implementation of the ten string-match
// leaves. Which intent/component field it inspects is fixed by Attr;
// how it compares is fixed by Mode.
type StringLeaf struct {
	Attr     Attr
	Mode     Mode
	Literal  string
	compiled *regexp.Regexp // set by NewStringLeaf when Mode == Regex
}

// NewStringLeaf builds a leaf, compiling literal as a regexp when mode
// is Regex. The loader surfaces a compile failure as a per-rule parse
// error.
func NewStringLeaf(attr Attr, mode Mode, literal string) (*StringLeaf, error) {
	leaf := &StringLeaf{Attr: attr, Mode: mode, Literal: literal}
	if mode == Regex {
		re, err := regexp.Compile(literal)
		if err != nil {
			return nil, err
		}
		leaf.compiled = re
	}
	return leaf, nil
}

func (l *StringLeaf) subject(dc *DispatchCtx) string {
	switch l.Attr {
	case AttrAction:
		if dc.Intent == nil {
			return ""
		}
		return dc.Intent.Action
	case AttrComponent:
		return dc.Resolved.String()
	case AttrComponentName:
		return dc.Resolved.Class
	case AttrComponentPackage:
		return dc.Resolved.Package
	case AttrData:
		if dc.Intent == nil {
			return ""
		}
		return dc.Intent.DataString()
	case AttrHost:
		if dc.Intent == nil {
			return ""
		}
		return normalize.Host(dc.Intent.Host)
	case AttrMimeType:
		return normalize.MimeType(dc.ResolvedType)
	case AttrScheme:
		if dc.Intent == nil {
			return ""
		}
		return normalize.Scheme(dc.Intent.Scheme)
	case AttrPath:
		if dc.Intent == nil {
			return ""
		}
		return normalize.Path(dc.Intent.Path)
	case AttrSSP:
		if dc.Intent == nil {
			return ""
		}
		return dc.Intent.SSP
	default:
		return ""
	}
}

func (l *StringLeaf) Matches(env *Env, dc *DispatchCtx) bool {
	return match(l.Mode, l.subject(dc), l.Literal, l.compiled)
}

// MatchesPackage: only the package attribute has meaning without an
// intent. Everything else cannot evaluate on this path and is false.
func (l *StringLeaf) MatchesPackage(env *Env, pc *PackageCtx) bool {
	var subject string
	switch l.Attr {
	case AttrComponentPackage:
		subject = pc.TargetPackage
	default:
		return false
	}
	return match(l.Mode, subject, l.Literal, l.compiled)
}
