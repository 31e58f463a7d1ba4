package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDebounceCoalescesBurst(t *testing.T) {
	orig := DebounceInterval
	DebounceInterval = 20 * time.Millisecond
	t.Cleanup(func() { DebounceInterval = orig })

	dir := t.TempDir()
	var reloads int32
	w, err := New(dir, zerolog.Nop(), func() { atomic.AddInt32(&reloads, 1) })
	require.NoError(t, err)
	go w.Start()
	defer w.Close()

	// A burst of file events within the debounce window.
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, "rules.xml")
		require.NoError(t, os.WriteFile(path, []byte("<rules/>"), 0o644))
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&reloads) > 0
	}, 2*time.Second, 5*time.Millisecond, "expected a reload after the debounce window")

	// Give any spurious extra reload a chance to land before asserting.
	time.Sleep(100 * time.Millisecond)
	require.EqualValues(t, 1, atomic.LoadInt32(&reloads), "a burst must collapse to one reload")
}

func TestNonXMLEventsIgnored(t *testing.T) {
	orig := DebounceInterval
	DebounceInterval = 10 * time.Millisecond
	t.Cleanup(func() { DebounceInterval = orig })

	dir := t.TempDir()
	var reloads int32
	w, err := New(dir, zerolog.Nop(), func() { atomic.AddInt32(&reloads, 1) })
	require.NoError(t, err)
	go w.Start()
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	// Never fires: the event's path does not end in .xml.
	require.Never(t, func() bool {
		return atomic.LoadInt32(&reloads) != 0
	}, 100*time.Millisecond, 10*time.Millisecond, "a non-.xml file must not trigger a reload")
}
