package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/predicate"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadActionBasedBlock(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rules.xml", `<rules>
  <activity block="true">
    <intent-filter><action name="a.b.C"/></intent-filter>
  </activity>
</rules>`)

	st, summary, err := Load(dir, nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Activity != 1 {
		t.Fatalf("expected 1 activity rule, got %d", summary.Activity)
	}

	cands := st.Activity.Candidates(&intent.Intent{Action: "a.b.C"}, nil)
	if len(cands) != 1 {
		t.Fatalf("expected the rule to be a candidate, got %d", len(cands))
	}
	if !cands[0].Matches(&predicate.Env{}, &predicate.DispatchCtx{Intent: &intent.Intent{Action: "a.b.C"}}) {
		t.Error("expected rule to match")
	}
	if !cands[0].Effects.Block {
		t.Error("expected Block effect to be set")
	}
}

func TestLoadMatchAllForbidsFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rules.xml", `<rules>
  <broadcast block="true" matchall="true">
    <intent-filter><action name="a.b.C"/></intent-filter>
  </broadcast>
  <broadcast block="true" matchall="true"/>
</rules>`)

	_, summary, err := Load(dir, nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	// First rule is malformed (matchall + filter) and discarded; the
	// second is valid and kept.
	if summary.Broadcast != 1 {
		t.Fatalf("expected 1 valid broadcast rule to survive, got %d", summary.Broadcast)
	}
	if summary.RulesDiscarded == 0 {
		t.Error("expected the malformed matchall rule to be counted as discarded")
	}
}

func TestLoadMalformedRuleIsolation(t *testing.T) {
	dir := t.TempDir()
	// One rule has an invalid <not> with two children, one is valid.
	writeFile(t, dir, "rules.xml", `<rules>
  <activity block="true">
    <not><action equals="x"/><action equals="y"/></not>
  </activity>
  <activity block="true">
    <intent-filter><action name="a.b.C"/></intent-filter>
  </activity>
</rules>`)

	st, summary, err := Load(dir, nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Activity != 1 {
		t.Fatalf("expected only the valid rule to survive, got %d", summary.Activity)
	}
	cands := st.Activity.Candidates(&intent.Intent{Action: "a.b.C"}, nil)
	if len(cands) != 1 {
		t.Fatal("expected the valid rule to still be indexed")
	}
}

func TestLoadFileLevelErrorDiscardsWholeFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.xml", `not even xml`)
	writeFile(t, dir, "good.xml", `<rules><activity matchall="true" block="true"/></rules>`)

	st, summary, err := Load(dir, nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if summary.FilesSkipped != 1 {
		t.Fatalf("expected 1 skipped file, got %d", summary.FilesSkipped)
	}
	if summary.Activity != 1 {
		t.Fatalf("expected the good file's rule to load, got %d", summary.Activity)
	}
	_ = st
}

func TestLoadUnionsWritableAndReadonlyDirs(t *testing.T) {
	writable := t.TempDir()
	readonly := t.TempDir()
	writeFile(t, writable, "a.xml", `<rules><activity matchall="true" block="true"/></rules>`)
	writeFile(t, readonly, "b.xml", `<rules><activity matchall="true" log="true"/></rules>`)

	_, summary, err := Load(writable, []string{readonly}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Activity != 2 {
		t.Fatalf("expected rules from both directories, got %d", summary.Activity)
	}
}

func TestLoadIgnoresUnrecognizedTopLevelTag(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rules.xml", `<rules>
  <unknown-tag foo="bar"/>
  <activity matchall="true" block="true"/>
</rules>`)

	_, summary, err := Load(dir, nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Activity != 1 {
		t.Fatalf("expected 1 activity rule, unknown tag ignored, got %d", summary.Activity)
	}
}
