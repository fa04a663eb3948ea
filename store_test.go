package gardenpub

import (
	"database/sql"
	"os"
	"reflect"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	path := "data/test_garden.db"
	os.Remove(path) // clean up any existing test db

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	cleanup := func() {
		s.Close()
		os.Remove(path)
	}

	return s, cleanup
}

func testNote(path string) PublishedNote {
	return PublishedNote{
		Path:        path,
		GardenPath:  path,
		Permalink:   "/" + path,
		Title:       "Test Note",
		Date:        "2024-01-15",
		Description: "A note used in tests",
		Tags:        []string{"go", "gardening"},
		Frontmatter: "---\ndg-publish: true\n---\n",
		Content:     "# Test\n\nBody text.",
		Hash:        "abc123",
		PublishedAt: "2024-01-15T10:00:00Z",
	}
}

func TestNewStore(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if s == nil {
		t.Fatal("store should not be nil")
	}
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestSaveAndGetNote(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	n := testNote("notes/test")
	if err := s.SaveNote(n); err != nil {
		t.Fatalf("SaveNote failed: %v", err)
	}

	got, err := s.GetNote("/notes/test")
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got.Title != n.Title || got.Content != n.Content || got.Hash != n.Hash {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if !reflect.DeepEqual(got.Tags, n.Tags) {
		t.Errorf("tags = %v, want %v", got.Tags, n.Tags)
	}

	byPath, err := s.GetNoteByPath("notes/test")
	if err != nil {
		t.Fatalf("GetNoteByPath failed: %v", err)
	}
	if byPath.Permalink != "/notes/test" {
		t.Errorf("permalink = %q, want %q", byPath.Permalink, "/notes/test")
	}
}

func TestGetNoteMissing(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if _, err := s.GetNote("/nope"); err != sql.ErrNoRows {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestSaveNoteUpsert(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	n := testNote("notes/test")
	if err := s.SaveNote(n); err != nil {
		t.Fatalf("SaveNote failed: %v", err)
	}
	n.Title = "Updated"
	n.Hash = "def456"
	if err := s.SaveNote(n); err != nil {
		t.Fatalf("second SaveNote failed: %v", err)
	}

	notes, err := s.ListNotes("")
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note after upsert, got %d", len(notes))
	}
	if notes[0].Title != "Updated" {
		t.Errorf("title = %q, want %q", notes[0].Title, "Updated")
	}
}

func TestListNotesOrderAndFilter(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	older := testNote("notes/older")
	older.Date = "2023-06-01"
	older.Tags = []string{"archive"}
	newer := testNote("notes/newer")
	newer.Date = "2024-03-01"
	newer.Tags = []string{"go"}

	for _, n := range []PublishedNote{older, newer} {
		if err := s.SaveNote(n); err != nil {
			t.Fatalf("SaveNote failed: %v", err)
		}
	}

	notes, err := s.ListNotes("")
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].Path != "notes/newer" {
		t.Errorf("expected newest first, got %q", notes[0].Path)
	}

	tagged, err := s.ListNotes("Archive") // filter is case-insensitive
	if err != nil {
		t.Fatalf("ListNotes(tag) failed: %v", err)
	}
	if len(tagged) != 1 || tagged[0].Path != "notes/older" {
		t.Errorf("tag filter returned %v", tagged)
	}
}

func TestListTags(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	a := testNote("notes/a")
	a.Tags = []string{"Go", "web"}
	b := testNote("notes/b")
	b.Permalink = "/notes/b"
	b.Tags = []string{"go"}
	c := testNote("notes/c")
	c.Permalink = "/notes/c"
	c.Tags = nil

	for _, n := range []PublishedNote{a, b, c} {
		if err := s.SaveNote(n); err != nil {
			t.Fatalf("SaveNote failed: %v", err)
		}
	}

	tags, err := s.ListTags()
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	want := []string{"go", "web"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("tags = %v, want %v", tags, want)
	}
}

func TestDeleteNoteAndListPaths(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	for _, path := range []string{"notes/a", "notes/b"} {
		n := testNote(path)
		if err := s.SaveNote(n); err != nil {
			t.Fatalf("SaveNote failed: %v", err)
		}
	}

	if err := s.DeleteNote("notes/a"); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}

	paths, err := s.ListPaths()
	if err != nil {
		t.Fatalf("ListPaths failed: %v", err)
	}
	if !reflect.DeepEqual(paths, []string{"notes/b"}) {
		t.Errorf("paths = %v, want [notes/b]", paths)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{",go,web,", []string{"go", "web"}},
		{",solo,", []string{"solo"}},
		{",,", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseTags(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
