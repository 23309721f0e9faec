package preflight_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lotflow/internal/preflight"
	"lotflow/internal/testsupport"
)

func TestCheckDirectoryAccessOK(t *testing.T) {
	result := preflight.CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccessNotExist(t *testing.T) {
	result := preflight.CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccessNotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := preflight.CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDB(t, cfg)

	result := preflight.CheckDatabase(context.Background(), db)
	if !result.Passed {
		t.Fatalf("database check failed: %s", result.Detail)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := preflight.RunAll(context.Background(), nil, nil, nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAllMinimal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDB(t, cfg)

	results := preflight.RunAll(context.Background(), cfg, db, nil)
	// Data dir, log dir, database.
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !preflight.Passed(results) {
		for _, r := range results {
			if !r.Passed {
				t.Errorf("check %q failed: %s", r.Name, r.Detail)
			}
		}
	}
}

func TestPassed(t *testing.T) {
	ok := []preflight.Result{{Passed: true}, {Passed: true}}
	if !preflight.Passed(ok) {
		t.Fatal("expected pass")
	}
	mixed := append(ok, preflight.Result{Passed: false})
	if preflight.Passed(mixed) {
		t.Fatal("expected failure")
	}
}
