package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCache_RoundTrip(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if !c.Save("k", "v") {
		t.Fatal("Save returned false")
	}

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get reported missing key after Save")
	}
	if got != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}
}

func TestCache_SurvivesReinstantiation(t *testing.T) {
	dir := t.TempDir()

	first, err := New(dir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if !first.Save("persona", `{"handle":"ada"}`) {
		t.Fatal("Save returned false")
	}

	second, err := New(dir)
	if err != nil {
		t.Fatalf("New (second instance) returned error: %v", err)
	}
	got, ok := second.Get("persona")
	if !ok {
		t.Fatal("entry did not survive reinstantiation")
	}
	if got != `{"handle":"ada"}` {
		t.Errorf("Get = %q, want saved value", got)
	}
}

func TestCache_MissingKey(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, ok := c.Get("never-saved"); ok {
		t.Error("Get reported a value for a key that was never saved")
	}
}

func TestCache_SaveFailureReturnsFalse(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	// A key that collides with a subdirectory cannot be written.
	if err := os.Mkdir(filepath.Join(dir, "blocked"), 0o755); err != nil {
		t.Fatal(err)
	}
	if c.Save("blocked", "v") {
		t.Error("Save succeeded writing over a directory")
	}
	if _, ok := c.Get("blocked"); ok {
		t.Error("failed Save must not populate the in-memory view")
	}
}

func TestCache_IgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	c, err := New(dir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, ok := c.Get("nested"); ok {
		t.Error("directories must not be loaded as cache entries")
	}
}
