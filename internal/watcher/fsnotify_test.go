package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/codedigest/internal/ignore"
)

func newTestMatcher(t *testing.T, patterns ...string) *ignore.Matcher {
	t.Helper()
	set := ignore.NewPatternSet()
	for _, p := range patterns {
		set.Add(p)
	}
	return ignore.Compile(set)
}

func TestFSWatcher_ShouldIgnore(t *testing.T) {
	w, err := New(newTestMatcher(t, "node_modules/", "*.log"), Options{})
	require.NoError(t, err)
	defer w.Stop()

	tests := []struct {
		path    string
		isDir   bool
		ignored bool
	}{
		{".", false, true},
		{"", false, true},
		{".git", true, true},
		{".git/HEAD", false, true},
		{"node_modules", true, true},
		{"src/node_modules", true, true},
		{"debug.log", false, true},
		{"src/main.go", false, false},
		{"src", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.ignored, w.shouldIgnore(tt.path, tt.isDir))
		})
	}
}

func TestFSWatcher_EmitsModifyEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0o644))

	w, err := New(newTestMatcher(t), Options{DebounceWindow: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx, dir)
	}()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644))

	select {
	case events := <-w.Events():
		require.NotEmpty(t, events)
		assert.Equal(t, "main.go", events[0].Path)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for file event")
	}

	require.NoError(t, w.Stop())
	<-done
}

func TestFSWatcher_IgnoredFileProducesNoEvent(t *testing.T) {
	dir := t.TempDir()

	w, err := New(newTestMatcher(t, "*.log"), Options{DebounceWindow: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = w.Start(ctx, dir) }()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "debug.log"), []byte("x"), 0o644))

	select {
	case events := <-w.Events():
		t.Fatalf("expected no events, got %v", events)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, w.Stop())
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "CREATE", OpCreate.String())
	assert.Equal(t, "MODIFY", OpModify.String())
	assert.Equal(t, "DELETE", OpDelete.String())
	assert.Equal(t, "RENAME", OpRename.String())
	assert.Equal(t, "UNKNOWN", Operation(99).String())
}
