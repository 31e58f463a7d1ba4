// Package intent defines the structured dispatch payload the firewall
// evaluates and the dispatch kinds it mediates.
package intent

import (
	"strconv"
	"strings"
)

// Kind is one of the inter-component dispatch categories the firewall
// mediates. Every Rule belongs to exactly one Kind.
type Kind string

const (
	KindActivity  Kind = "activity"
	KindBroadcast Kind = "broadcast"
	KindService   Kind = "service"
	KindProvider  Kind = "provider"
	KindPackage   Kind = "package"
)

// Component is a fully-qualified app component: a package plus a class
// name within it.
type Component struct {
	Package string
	Class   string
}

// String renders the component as "pkg/cls" with the full class name
// (e.g. "com.x/com.x.Y"); the ".Cls" short form is not produced.
func (c Component) String() string {
	if c.Package == "" && c.Class == "" {
		return ""
	}
	return c.Package + "/" + c.Class
}

// ParseComponent splits a flattened "pkg/.Cls" or "pkg/pkg.Cls" string.
// A missing or unparseable component string is reported via ok=false;
// callers (the rule loader) treat that as a per-rule parse error.
func ParseComponent(flat string) (Component, bool) {
	idx := strings.IndexByte(flat, '/')
	if idx <= 0 || idx == len(flat)-1 {
		return Component{}, false
	}
	pkg, cls := flat[:idx], flat[idx+1:]
	if strings.HasPrefix(cls, ".") {
		cls = pkg + cls
	}
	return Component{Package: pkg, Class: cls}, true
}

// Intent is the structured payload carried by a dispatch.
type Intent struct {
	Action     string
	Categories []string
	MimeType   string
	Scheme     string
	Host       string
	Port       int
	Path       string
	SSP        string // scheme-specific-part, used when a URI has no authority
	Flags      int32
	// Component is the explicit target named on the intent itself, if any.
	// It is distinct from the dispatch's resolved component
	// (DispatchCtx.Resolved), which is the component the system resolved
	// the intent to.
	Component *Component
}

// HasCategory reports whether the intent carries the named category.
func (i *Intent) HasCategory(category string) bool {
	if i == nil {
		return false
	}
	for _, c := range i.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// DataString renders a URI-shaped view of the intent's data fields, the
// same shape an audit record's dataString field carries.
func (i *Intent) DataString() string {
	if i == nil {
		return ""
	}
	if i.Scheme == "" {
		return i.SSP
	}
	var b strings.Builder
	b.WriteString(i.Scheme)
	b.WriteString("://")
	b.WriteString(i.Host)
	if i.Port > 0 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(i.Port))
	}
	b.WriteString(i.Path)
	return b.String()
}
