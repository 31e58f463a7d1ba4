package audit

import (
	"strings"
	"testing"

	"github.com/intentfw/ifw/internal/intent"
)

func TestJoinPackagesSmallList(t *testing.T) {
	got := JoinPackages([]string{"com.a", "com.b", "com.c"})
	want := "com.a,com.b,com.c"
	if got != want {
		t.Errorf("JoinPackages = %q, want %q", got, want)
	}
}

func TestJoinPackagesEmpty(t *testing.T) {
	if got := JoinPackages(nil); got != "" {
		t.Errorf("JoinPackages(nil) = %q, want empty", got)
	}
}

// Package-join log cap: three packages, each built from a
// 4-character string repeated 40 times (160 chars each, so no single
// package fits inside the 150-char hard cap on its own).
func TestJoinPackagesCapFallback(t *testing.T) {
	pkgs := []string{
		strings.Repeat("aaaa", 40),
		strings.Repeat("bbbb", 40),
		strings.Repeat("cccc", 40),
	}
	got := JoinPackages(pkgs)
	if len(got) != hardCap {
		t.Fatalf("expected joined length %d, got %d (%q)", hardCap, len(got), got)
	}
	if !strings.HasSuffix(got, "-") {
		t.Errorf("expected trailing '-' fallback marker, got %q", got)
	}
	if !strings.HasPrefix(got, strings.Repeat("a", 4)) {
		t.Errorf("expected fallback to be drawn from the first package, got %q", got)
	}
}

func TestJoinPackagesStopsPastThreshold(t *testing.T) {
	// Each package is 30 chars; after two the buffer is 61 chars, after
	// three it's 92, after four 123 (still <=125, so a fifth is tried),
	// after five 154 which exceeds the 150 hard cap and is rejected —
	// leaving the four-package buffer.
	pkg := strings.Repeat("p", 30)
	pkgs := []string{pkg, pkg, pkg, pkg, pkg, pkg}
	got := JoinPackages(pkgs)
	if len(got) > hardCap {
		t.Fatalf("joined string exceeds hard cap: %d", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("did not expect the no-package-fits fallback here: %q", got)
	}
}

func TestJoinPackagesSkipsOversizedAndContinues(t *testing.T) {
	// The 60-char package does not fit after the first 100 chars, but
	// the buffer has not passed the stop threshold yet, so the packer
	// keeps going and the 30-char package still lands.
	pkgs := []string{
		strings.Repeat("a", 100),
		strings.Repeat("b", 60),
		strings.Repeat("c", 30),
	}
	got := JoinPackages(pkgs)
	if strings.Contains(got, "b") {
		t.Errorf("expected the oversized middle package skipped, got %q", got)
	}
	if !strings.HasSuffix(got, strings.Repeat("c", 30)) {
		t.Errorf("expected the later short package appended, got %q", got)
	}
	if len(got) != 131 {
		t.Errorf("expected 100+1+30 joined chars, got %d", len(got))
	}
}

func TestNewEventRedactsDataString(t *testing.T) {
	i := &intent.Intent{
		Action: "android.intent.action.VIEW",
		Scheme: "https",
		Host:   "alice:hunter2@example.com",
	}
	e := NewEvent(intent.KindActivity, intent.Component{Package: "com.x", Class: "com.x.Y"}, 10050,
		[]string{"com.caller"}, i, "text/plain", "block")
	if strings.Contains(e.DataString, "hunter2") {
		t.Errorf("expected credential redacted from dataString, got %q", e.DataString)
	}
	if e.ShortComponent != "com.x/com.x.Y" {
		t.Errorf("unexpected shortComponent: %q", e.ShortComponent)
	}
	if e.CallerPackageCount != 1 {
		t.Errorf("expected callerPackageCount 1, got %d", e.CallerPackageCount)
	}
}
