package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBlockList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocklist.json")
	content := `{
	  "blocked": [
	    {"id": "2401.00001", "reason": "withdrawn"},
	    {"id": "2401.00002"}
	  ]
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	bl, err := LoadBlockList(path)
	if err != nil {
		t.Fatalf("LoadBlockList: %v", err)
	}
	if len(bl.Blocked) != 2 {
		t.Fatalf("len(Blocked) = %d, want 2", len(bl.Blocked))
	}
	if bl.Blocked[0].Reason != "withdrawn" {
		t.Errorf("Reason = %q, want withdrawn", bl.Blocked[0].Reason)
	}

	ids := bl.IDs()
	if !ids["2401.00001"] || !ids["2401.00002"] {
		t.Errorf("IDs() = %v, missing entries", ids)
	}
	if len(ids) != 2 {
		t.Errorf("len(IDs()) = %d, want 2", len(ids))
	}
}

func TestLoadBlockList_Missing(t *testing.T) {
	bl, err := LoadBlockList(filepath.Join(t.TempDir(), "blocklist.json"))
	if err != nil {
		t.Fatalf("LoadBlockList: %v", err)
	}
	if len(bl.Blocked) != 0 {
		t.Errorf("Blocked = %v, want empty", bl.Blocked)
	}
}

func TestLoadBlockList_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocklist.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadBlockList(path); err == nil {
		t.Errorf("LoadBlockList on malformed file: want error")
	}
}

func TestLoadSavedList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "savedlist.json")
	content := `{"saved": [{"id": "2401.00001", "note": "read later"}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sl, err := LoadSavedList(path)
	if err != nil {
		t.Fatalf("LoadSavedList: %v", err)
	}
	if len(sl.Saved) != 1 || sl.Saved[0].Note != "read later" {
		t.Errorf("Saved = %+v", sl.Saved)
	}
}

func TestLoadSavedList_Missing(t *testing.T) {
	sl, err := LoadSavedList(filepath.Join(t.TempDir(), "savedlist.json"))
	if err != nil {
		t.Fatalf("LoadSavedList: %v", err)
	}
	if len(sl.Saved) != 0 {
		t.Errorf("Saved = %v, want empty", sl.Saved)
	}
}
