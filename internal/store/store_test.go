package store

import (
	"path/filepath"
	"reflect"
	"testing"
)

func openMemory(t *testing.T) *DB {
	t.Helper()
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestPreferences(t *testing.T) {
	d := openMemory(t)

	if _, ok := d.Get("skin"); ok {
		t.Fatal("Get(skin) on empty store reported a value")
	}
	if err := d.Update(map[string]string{"skin": "3"}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if err := d.Update(map[string]string{"skin": "5"}); err != nil {
		t.Fatalf("second Update() error: %v", err)
	}
	if v, ok := d.Get("skin"); !ok || v != "5" {
		t.Errorf("Get(skin) = %q, %v; want 5, true", v, ok)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d := openMemory(t)
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "emojitui.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := d.Update(map[string]string{"skin": "2"}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	d.Close()

	d, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer d.Close()
	if v, _ := d.Get("skin"); v != "2" {
		t.Errorf("persisted skin = %q, want 2", v)
	}
}

func TestTrackerDefaults(t *testing.T) {
	tr := NewTracker(openMemory(t))
	got := tr.Get(4)
	want := []string{"+1", "grinning", "kissing_heart", "heart_eyes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get(4) = %v, want %v", got, want)
	}
}

func TestTrackerRanking(t *testing.T) {
	tr := NewTracker(openMemory(t))
	tr.Get(1) // seed one default: "+1" with count 1

	for _, id := range []string{"dog", "dog", "dog", "pizza", "+1"} {
		if err := tr.Add(id); err != nil {
			t.Fatalf("Add(%s) error: %v", id, err)
		}
	}

	got := tr.Get(1)
	want := []string{"dog", "+1", "pizza"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get(1) = %v, want %v", got, want)
	}
}

func TestTrackerKeepsLast(t *testing.T) {
	tr := NewTracker(openMemory(t))
	tr.Get(1)
	for i := 0; i < 5; i++ {
		tr.Add("dog")
		tr.Add("cat")
		tr.Add("fox_face")
		tr.Add("pizza")
	}
	tr.Add("rocket") // least used, but last

	got := tr.Get(1)
	if len(got) != 4 {
		t.Fatalf("Get(1) = %v, want 4 ids", got)
	}
	if got[len(got)-1] != "rocket" {
		t.Errorf("Get(1) = %v, want last used rocket included", got)
	}
}
