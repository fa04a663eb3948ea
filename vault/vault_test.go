package vault

import (
	"os"
	"path/filepath"
	"testing"
)

func writeNote(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestReadNoteWithFrontmatter(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "notes/foo.md", "---\ntitle: Foo\ndg-publish: true\ntags:\n  - a\n  - b\n---\n# Foo\n\nBody text.\n")

	note, err := Read(root, "notes/foo.md")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if note.Path != "notes/foo.md" {
		t.Errorf("Path = %q", note.Path)
	}
	if note.Meta["title"] != "Foo" {
		t.Errorf("title = %v", note.Meta["title"])
	}
	if pub, ok := note.Meta["dg-publish"].(bool); !ok || !pub {
		t.Errorf("dg-publish = %v", note.Meta["dg-publish"])
	}
	tags, ok := note.Meta["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Errorf("tags = %v", note.Meta["tags"])
	}
	if note.Body != "# Foo\n\nBody text.\n" {
		t.Errorf("Body = %q", note.Body)
	}
}

func TestReadNoteWithoutFrontmatter(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "plain.md", "just content\n")

	note, err := Read(root, "plain.md")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if note.Meta == nil || len(note.Meta) != 0 {
		t.Errorf("Meta = %v, want empty map", note.Meta)
	}
	if note.Body != "just content\n" {
		t.Errorf("Body = %q", note.Body)
	}
}

func TestReadNoteBadFrontmatter(t *testing.T) {
	root := t.TempDir()
	content := "---\ntitle: [unclosed\n---\nbody\n"
	writeNote(t, root, "bad.md", content)

	note, err := Read(root, "bad.md")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	// Unparseable frontmatter degrades to empty metadata with the full
	// content kept as the body.
	if len(note.Meta) != 0 {
		t.Errorf("Meta = %v, want empty", note.Meta)
	}
	if note.Body != content {
		t.Errorf("Body = %q, want original content", note.Body)
	}
}

func TestReadNoteUnclosedFrontmatter(t *testing.T) {
	root := t.TempDir()
	content := "---\ntitle: Foo\nno closing delimiter\n"
	writeNote(t, root, "open.md", content)

	note, err := Read(root, "open.md")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(note.Meta) != 0 || note.Body != content {
		t.Errorf("unclosed block should be treated as body, got Meta=%v Body=%q", note.Meta, note.Body)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "a.md", "---\ntitle: A\n---\na\n")
	writeNote(t, root, "sub/b.md", "b\n")
	writeNote(t, root, ".obsidian/workspace.md", "should be skipped\n")
	writeNote(t, root, "sub/ignore.txt", "not markdown\n")

	notes, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("Scan found %d notes, want 2: %+v", len(notes), notes)
	}
	paths := map[string]bool{}
	for _, n := range notes {
		paths[n.Path] = true
	}
	if !paths["a.md"] || !paths["sub/b.md"] {
		t.Errorf("unexpected paths: %v", paths)
	}
}
