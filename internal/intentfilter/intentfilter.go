// Package intentfilter implements the platform's intent-filter
// admission semantics: action, category, and data
// (scheme/host/port/path/mime-type) admission, the way the Android
// intent-filter matching algorithm resolves them.
package intentfilter

import (
	"strings"

	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/normalize"
)

// categoryDefault is special-cased per platform convention: a filter
// lacking it still admits an implicit-default intent (one carrying
// only CATEGORY_DEFAULT or no categories at all).
const categoryDefault = "android.intent.category.DEFAULT"

// DataSpec is one <data> entry on an intent-filter: either a MIME-type
// spec, a scheme/authority/path spec, or both.
type DataSpec struct {
	MimeType string // may contain a single trailing "/*" wildcard
	Scheme   string
	Host     string // may be "*" for any host
	Port     int    // 0 means "any port"
	Path     string
	PathKind PathKind
}

// PathKind selects how Path is interpreted, mirroring the platform's
// pathPattern/pathPrefix/pathLiteral/pathSuffix family collapsed to
// the modes this firewall's rule files actually need.
type PathKind int

const (
	PathNone PathKind = iota
	PathLiteral
	PathPrefix
	PathPattern
)

// Filter is one <intent-filter> pattern.
type Filter struct {
	Actions    []string
	Categories []string
	Data       []DataSpec
}

// Admits reports whether i satisfies f, following the platform's three
// independent checks (action, category, data) all of which must pass.
func (f *Filter) Admits(i *intent.Intent) bool {
	if i == nil {
		return false
	}
	if !f.admitsAction(i.Action) {
		return false
	}
	if !f.admitsCategories(i.Categories) {
		return false
	}
	if !f.admitsData(i) {
		return false
	}
	return true
}

func (f *Filter) admitsAction(action string) bool {
	if len(f.Actions) == 0 {
		return true
	}
	for _, a := range f.Actions {
		if a == action {
			return true
		}
	}
	return false
}

func (f *Filter) admitsCategories(categories []string) bool {
	for _, want := range categories {
		if want == categoryDefault {
			continue
		}
		if !containsString(f.Categories, want) {
			return false
		}
	}
	return true
}

func (f *Filter) admitsData(i *intent.Intent) bool {
	if len(f.Data) == 0 {
		// A filter with no <data> admits any intent that has no data
		// either (scheme/mime-type both empty); this matches the
		// platform's "no data spec means data-less intents only"
		// behavior for filters that only constrain action/category.
		return i.Scheme == "" && i.MimeType == ""
	}
	for _, spec := range f.Data {
		if spec.admits(i) {
			return true
		}
	}
	return false
}

func (d *DataSpec) admits(i *intent.Intent) bool {
	if d.MimeType != "" && !mimeMatches(d.MimeType, i.MimeType) {
		return false
	}
	if d.Scheme != "" {
		if normalize.Scheme(d.Scheme) != normalize.Scheme(i.Scheme) {
			return false
		}
		if d.Host != "" && d.Host != "*" && normalize.Host(d.Host) != normalize.Host(i.Host) {
			return false
		}
		if d.Port > 0 && i.Port > 0 && d.Port != i.Port {
			return false
		}
		if !d.admitsPath(i.Path) {
			return false
		}
	}
	// MIME-only spec (no scheme constraint): already checked above.
	if d.MimeType != "" && d.Scheme == "" {
		return true
	}
	return d.Scheme != "" || d.MimeType != ""
}

func (d *DataSpec) admitsPath(path string) bool {
	switch d.PathKind {
	case PathNone:
		return true
	case PathLiteral:
		return path == d.Path
	case PathPrefix:
		return strings.HasPrefix(path, d.Path)
	case PathPattern:
		return globMatch(d.Path, path)
	default:
		return true
	}
}

// mimeMatches implements the platform's wildcard MIME rules: "type/*"
// and "*/*" admit any subtype (or any type, respectively).
func mimeMatches(pattern, mime string) bool {
	pattern = normalize.MimeType(pattern)
	mime = normalize.MimeType(mime)
	if mime == "" {
		return false
	}
	if pattern == "*/*" {
		return true
	}
	if strings.HasSuffix(pattern, "/*") {
		return strings.HasPrefix(mime, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == mime
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

// globMatch is a simple path-pattern grammar: '*' matches any run of
// characters, everything else (including '.') is literal.
func globMatch(pattern, subject string) bool {
	ps := strings.Split(pattern, "*")
	if len(ps) == 1 {
		return pattern == subject
	}
	if !strings.HasPrefix(subject, ps[0]) {
		return false
	}
	subject = subject[len(ps[0]):]
	for _, part := range ps[1 : len(ps)-1] {
		idx := strings.Index(subject, part)
		if idx < 0 {
			return false
		}
		subject = subject[idx+len(part):]
	}
	return strings.HasSuffix(subject, ps[len(ps)-1])
}
