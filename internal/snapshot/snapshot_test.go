package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"EconSim/internal/engine"
	"EconSim/internal/model"
)

func TestSaveLoad_RestoresEngine(t *testing.T) {
	src := engine.New()
	_, _ = src.Apply(model.LeverTariff, 7)
	_, _ = src.Apply(model.LeverIssueDebt, 1200)
	_, _ = src.Apply(model.LeverRestructure, 0)

	path := filepath.Join(t.TempDir(), "nested", "econ.snap.zst")
	if err := Save(path, src.Snapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	dst := engine.New()
	if err := dst.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if dst.Turn() != src.Turn() || dst.State() != src.State() {
		t.Errorf("restored turn %d state %+v, want turn %d state %+v", dst.Turn(), dst.State(), src.Turn(), src.State())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.zst"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoad_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.zst")
	if err := os.WriteFile(path, []byte("not zstd at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for corrupt snapshot")
	}
}
