package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindLatestConfig(t *testing.T) {
	dir := t.TempDir()

	files := []string{"old.yaml", "middle.yml", "newest.yaml", "ignored.json"}
	for i, name := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i-len(files)) * time.Hour)
		if err := os.Chtimes(path, modTime, modTime); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := FindLatestConfig(dir)
	if err != nil {
		t.Fatalf("FindLatestConfig failed: %v", err)
	}
	if filepath.Base(latest) != "newest.yaml" {
		t.Errorf("Expected newest.yaml, got %s", latest)
	}
}

func TestFindLatestConfigEmpty(t *testing.T) {
	if _, err := FindLatestConfig(t.TempDir()); err == nil {
		t.Error("Expected error for directory without configs")
	}
}

func TestCollectRunStats(t *testing.T) {
	stats := CollectRunStats(3, 300, 2*time.Second)
	if stats.Clusters != 3 || stats.Samples != 300 {
		t.Errorf("Counts not carried through: %+v", stats)
	}

	report := stats.Report()
	if report == "" {
		t.Fatal("Expected non-empty report")
	}
	t.Logf("Report:\n%s", report)
}
