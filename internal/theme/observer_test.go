package swatch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

type update struct {
	theme *Theme
	err   error
}

// startObserver builds a two-layer theme under a fresh root and observes it,
// funneling callback invocations into the returned channel.
func startObserver(t *testing.T) (*Observer, string, chan update) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "base.yaml", "colors:\n  accent: \"#ff0000\"\n")
	if err := os.MkdirAll(filepath.Join(root, "variants"), 0755); err != nil {
		t.Fatalf("Failed to create variants dir: %v", err)
	}
	writeFile(t, filepath.Join(root, "variants"), "dark.yaml", "colors:\n  background: \"#1e1e1e\"\n")

	updates := make(chan update, 64)
	obs, err := Observe(root, FileList{"base.yaml", "dark.yaml"}, func(theme *Theme, err error) {
		updates <- update{theme: theme, err: err}
	}, ObserverOptions{Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("Observe failed: %v", err)
	}
	t.Cleanup(obs.Close)
	return obs, root, updates
}

// waitUpdate blocks until a callback arrives or the timeout elapses.
func waitUpdate(t *testing.T, updates chan update, timeout time.Duration) update {
	t.Helper()
	select {
	case u := <-updates:
		return u
	case <-time.After(timeout):
		t.Fatal("Timed out waiting for update callback")
		return update{}
	}
}

// waitAccent consumes callbacks until one carries the wanted accent color.
// Editors and filesystems occasionally deliver more than one notification
// for a single save, so matching on content keeps these tests deterministic.
func waitAccent(t *testing.T, updates chan update, want string) update {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case u := <-updates:
			if u.err == nil && u.theme.Color("accent") == want {
				return u
			}
		case <-deadline:
			t.Fatalf("Timed out waiting for accent %s", want)
			return update{}
		}
	}
}

func TestObserveComposesInitialTheme(t *testing.T) {
	obs, _, _ := startObserver(t)

	theme := obs.Theme()
	if theme == nil {
		t.Fatal("Expected a composed theme after construction")
	}
	if got := theme.Color("accent"); got != "#ff0000" {
		t.Errorf("accent = %q", got)
	}
	if got := theme.Color("background"); got != "#1e1e1e" {
		t.Errorf("background = %q", got)
	}
	if obs.Err() != nil {
		t.Errorf("Expected no load error, got %v", obs.Err())
	}

	// Every resolved path carries a live watch.
	if got := len(obs.WatchedPaths()); got != 2 {
		t.Errorf("Expected 2 watched paths, got %d", got)
	}
	if got := len(obs.Paths()); got != 2 {
		t.Errorf("Expected 2 resolved paths, got %d", got)
	}
}

func TestObserveConstructionErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "base.yaml", "a: 1\n")

	// Missing filename.
	_, err := Observe(root, FileList{"nope.yaml"}, nil, ObserverOptions{Logger: zap.NewNop()})
	var notFound *FileNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected FileNotFoundError, got %v", err)
	}

	// Ambiguous filename.
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatalf("Failed to create sub dir: %v", err)
	}
	writeFile(t, filepath.Join(root, "sub"), "base.yaml", "a: 2\n")
	_, err = Observe(root, FileList{"base.yaml"}, nil, ObserverOptions{Logger: zap.NewNop()})
	var ambiguous *AmbiguousFilenameError
	if !errors.As(err, &ambiguous) {
		t.Errorf("Expected AmbiguousFilenameError, got %v", err)
	}

	// Root that is not a directory.
	file := writeFile(t, root, "plain.txt", "x")
	if _, err := Observe(file, FileList{"base.yaml"}, nil, ObserverOptions{Logger: zap.NewNop()}); err == nil {
		t.Error("Expected error for non-directory root")
	}

	// Empty dependency set.
	if _, err := Observe(root, FileList{}, nil, ObserverOptions{Logger: zap.NewNop()}); err == nil {
		t.Error("Expected error for empty theme")
	}

	// Malformed initial content is fatal at construction.
	badRoot := t.TempDir()
	writeFile(t, badRoot, "bad.yaml", "colors: [unclosed\n")
	_, err = Observe(badRoot, FileList{"bad.yaml"}, nil, ObserverOptions{Logger: zap.NewNop()})
	var compose *ComposeError
	if !errors.As(err, &compose) {
		t.Errorf("Expected ComposeError, got %v", err)
	}
}

func TestReloadOnWrite(t *testing.T) {
	obs, root, updates := startObserver(t)
	base := filepath.Join(root, "base.yaml")

	// The watch survives recreation: several consecutive edits each reload.
	colors := []string{"#00ff00", "#0000ff", "#123456"}
	for _, c := range colors {
		if err := os.WriteFile(base, []byte("colors:\n  accent: \""+c+"\"\n"), 0644); err != nil {
			t.Fatalf("Failed to edit base.yaml: %v", err)
		}

		u := waitAccent(t, updates, c)
		// The dark layer still participates in composition.
		if got := u.theme.Color("background"); got != "#1e1e1e" {
			t.Errorf("Expected background from dark layer, got %q", got)
		}
		if obs.Theme() != u.theme {
			t.Error("Cached theme should match the delivered artifact")
		}
	}
}

func TestReloadOnAtomicSave(t *testing.T) {
	obs, root, updates := startObserver(t)
	base := filepath.Join(root, "base.yaml")

	// Delete + recreate at the same path, the atomic-save editor pattern.
	if err := os.Remove(base); err != nil {
		t.Fatalf("Failed to remove base.yaml: %v", err)
	}
	if err := os.WriteFile(base, []byte("colors:\n  accent: \"#00aaff\"\n"), 0644); err != nil {
		t.Fatalf("Failed to recreate base.yaml: %v", err)
	}

	u := waitUpdate(t, updates, 5*time.Second)
	if u.err != nil {
		t.Fatalf("Reload after atomic save reported error: %v", u.err)
	}

	// The path must still be watched: a plain edit reloads again.
	if err := os.WriteFile(base, []byte("colors:\n  accent: \"#654321\"\n"), 0644); err != nil {
		t.Fatalf("Failed to edit base.yaml: %v", err)
	}
	u = waitAccent(t, updates, "#654321")
	if obs.Theme() != u.theme {
		t.Error("Cached theme should match the delivered artifact")
	}
}

func TestReloadErrorKeepsPreviousTheme(t *testing.T) {
	obs, root, updates := startObserver(t)
	base := filepath.Join(root, "base.yaml")
	before := obs.Theme()

	if err := os.WriteFile(base, []byte("colors: [unclosed\n"), 0644); err != nil {
		t.Fatalf("Failed to write malformed content: %v", err)
	}

	u := waitUpdate(t, updates, 5*time.Second)
	if u.err == nil {
		t.Fatal("Expected an error for malformed content")
	}
	var compose *ComposeError
	if !errors.As(u.err, &compose) {
		t.Errorf("Expected ComposeError, got %v", u.err)
	}
	if u.theme != before {
		t.Error("Expected the previous artifact alongside the error")
	}
	if obs.Theme() != before {
		t.Error("Cached theme must be unchanged by a failed reload")
	}
	if obs.Err() == nil {
		t.Error("Expected Err to report the failed reload")
	}

	// Fixing the file recovers.
	if err := os.WriteFile(base, []byte("colors:\n  accent: \"#00ff00\"\n"), 0644); err != nil {
		t.Fatalf("Failed to fix base.yaml: %v", err)
	}
	u = waitAccent(t, updates, "#00ff00")
	if obs.Theme() != u.theme {
		t.Error("Cached theme should match the recovered artifact")
	}
	if obs.Err() != nil {
		t.Errorf("Expected Err cleared after recovery, got %v", obs.Err())
	}
}

func TestCloseStopsCallbacks(t *testing.T) {
	obs, root, updates := startObserver(t)
	base := filepath.Join(root, "base.yaml")

	obs.Close()

	if got := len(obs.WatchedPaths()); got != 0 {
		t.Errorf("Expected no watched paths after Close, got %d", got)
	}

	if err := os.WriteFile(base, []byte("colors:\n  accent: \"#ffffff\"\n"), 0644); err != nil {
		t.Fatalf("Failed to edit base.yaml: %v", err)
	}
	select {
	case u := <-updates:
		t.Errorf("Callback fired after Close: %+v", u)
	case <-time.After(500 * time.Millisecond):
	}

	// Close is idempotent.
	obs.Close()
}

func TestCloseDuringEdits(t *testing.T) {
	obs, root, _ := startObserver(t)
	base := filepath.Join(root, "base.yaml")

	// Race an edit against teardown; the event must be dropped, not queued.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			os.WriteFile(base, []byte("colors:\n  accent: \"#000000\"\n"), 0644)
			time.Sleep(5 * time.Millisecond)
		}
	}()

	time.Sleep(20 * time.Millisecond)
	obs.Close()
	<-done

	if got := len(obs.WatchedPaths()); got != 0 {
		t.Errorf("Expected no watched paths after Close, got %d", got)
	}
}

func TestObserveCustomCompose(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "base.yaml", "ignored: true\n")

	composed := NewTheme(map[string]any{"name": "custom"}, nil)
	obs, err := Observe(root, FileList{"base.yaml"}, nil, ObserverOptions{
		Logger: zap.NewNop(),
		Compose: func(paths []string) (*Theme, error) {
			return composed, nil
		},
	})
	if err != nil {
		t.Fatalf("Observe failed: %v", err)
	}
	defer obs.Close()

	if obs.Theme() != composed {
		t.Error("Expected the custom compose result")
	}
}
