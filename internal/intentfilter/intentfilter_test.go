package intentfilter

import (
	"testing"

	"github.com/intentfw/ifw/internal/intent"
)

func TestAdmitsAction(t *testing.T) {
	f := &Filter{Actions: []string{"a.b.C"}}
	if !f.Admits(&intent.Intent{Action: "a.b.C"}) {
		t.Error("expected matching action to admit")
	}
	if f.Admits(&intent.Intent{Action: "other"}) {
		t.Error("expected non-matching action to reject")
	}
}

func TestAdmitsNoActionsAdmitsAny(t *testing.T) {
	f := &Filter{}
	if !f.Admits(&intent.Intent{Action: "anything"}) {
		t.Error("a filter with no actions should admit any action")
	}
}

func TestAdmitsCategoryDefaultSpecialCase(t *testing.T) {
	f := &Filter{Actions: []string{"a.b.C"}, Categories: []string{"some.other.category"}}
	i := &intent.Intent{Action: "a.b.C", Categories: []string{categoryDefault}}
	if !f.Admits(i) {
		t.Error("a filter lacking CATEGORY_DEFAULT should still admit an implicit-default intent")
	}
}

func TestAdmitsCategoryMismatch(t *testing.T) {
	f := &Filter{Actions: []string{"a.b.C"}}
	i := &intent.Intent{Action: "a.b.C", Categories: []string{"android.intent.category.BROWSABLE"}}
	if f.Admits(i) {
		t.Error("a required category the filter lacks must reject")
	}
}

func TestAdmitsDataMimeWildcard(t *testing.T) {
	f := &Filter{Data: []DataSpec{{MimeType: "image/*"}}}
	if !f.Admits(&intent.Intent{MimeType: "image/png"}) {
		t.Error("expected image/* to admit image/png")
	}
	if f.Admits(&intent.Intent{MimeType: "text/plain"}) {
		t.Error("expected image/* to reject text/plain")
	}
}

func TestAdmitsDataSchemeHostPort(t *testing.T) {
	f := &Filter{Data: []DataSpec{{Scheme: "https", Host: "example.com", Port: 443}}}
	i := &intent.Intent{Scheme: "https", Host: "example.com", Port: 443}
	if !f.Admits(i) {
		t.Error("expected exact scheme/host/port match to admit")
	}
	i.Host = "other.com"
	if f.Admits(i) {
		t.Error("expected host mismatch to reject")
	}
}

func TestAdmitsDataPathPrefix(t *testing.T) {
	f := &Filter{Data: []DataSpec{{Scheme: "content", Host: "*", Path: "/items", PathKind: PathPrefix}}}
	i := &intent.Intent{Scheme: "content", Host: "com.x.provider", Path: "/items/42"}
	if !f.Admits(i) {
		t.Error("expected pathPrefix to admit a longer path")
	}
}

func TestAdmitsNoDataRequiresDatalessIntent(t *testing.T) {
	f := &Filter{Actions: []string{"a.b.C"}}
	if !f.Admits(&intent.Intent{Action: "a.b.C"}) {
		t.Error("a filter with no <data> should admit a data-less intent")
	}
	if f.Admits(&intent.Intent{Action: "a.b.C", Scheme: "https"}) {
		t.Error("a filter with no <data> should reject an intent carrying data")
	}
}
