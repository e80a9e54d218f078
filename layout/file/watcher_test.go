package file

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/chordkb/chord"
	"github.com/ardnew/chordkb/layout"
	"github.com/ardnew/chordkb/pkg"
)

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.chords")
	require.NoError(t, os.WriteFile(path, []byte(`layer 0 { "^___" => hit A }`), 0o644))

	tbl, err := Load(path)
	require.NoError(t, err)
	live := layout.NewLive(tbl)

	w := NewWatcher(path, live)
	w.SetDebounce(50 * time.Millisecond)
	var reloads atomic.Int32
	w.OnReload(func(uint64) { reloads.Add(1) })
	require.NoError(t, w.Start())
	defer w.Close()
	assert.ErrorIs(t, w.Start(), pkg.ErrAlreadyRunning)

	require.NoError(t, os.WriteFile(path, []byte(`layer 0 { "^___" => hit B }`), 0o644))
	require.Eventually(t, func() bool {
		a, _ := live.Lookup(0, chord.PinkyTip)
		return a == chord.Emit(chord.Hit(chord.KeyB))
	}, 2*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, reloads.Load(), int32(1))
	assert.GreaterOrEqual(t, live.Generation(), uint64(2))

	// A broken file keeps the current table.
	gen := live.Generation()
	require.NoError(t, os.WriteFile(path, []byte(`layer 0 { "^___" => hit }`), 0o644))
	select {
	case err := <-w.Errors():
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload error reported")
	}
	assert.Equal(t, gen, live.Generation())
	a, _ := live.Lookup(0, chord.PinkyTip)
	assert.Equal(t, chord.Emit(chord.Hit(chord.KeyB)), a)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.chords")
	require.NoError(t, os.WriteFile(path, []byte(`layer 0 {}`), 0o644))

	live := layout.NewLive(layout.NewTable())
	w := NewWatcher(path, live)
	w.SetDebounce(10 * time.Millisecond)
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.chords"), []byte("junk"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, uint64(1), live.Generation())

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing", "layout.toml"), layout.NewLive(nil))
	assert.Error(t, w.Start())
}
