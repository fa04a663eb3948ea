// Package vault reads markdown notes from an Obsidian-style vault on disk.
// It supplies each note's vault-relative path, raw authored frontmatter, and
// body to the publishing pipeline; it never writes to the vault.
package vault

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Note is a single markdown file read from the vault.
type Note struct {
	// Path is the vault-relative path with forward slashes, e.g.
	// "notes/foo.md".
	Path string
	// Meta is the note's raw authored frontmatter. Never nil; notes
	// without frontmatter (or with unparseable frontmatter) get an empty
	// map.
	Meta map[string]any
	// Body is the markdown content after the frontmatter block.
	Body string
}

// Read loads a single note at the vault-relative path rel under root.
func Read(root, rel string) (Note, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return Note{}, err
	}
	meta, body := splitFrontmatter(string(data))
	return Note{Path: filepath.ToSlash(rel), Meta: meta, Body: body}, nil
}

// Scan walks the vault and returns every markdown note. Dotted directories
// (.obsidian, .git, .trash) are skipped, as are unreadable files.
func Scan(root string) ([]Note, error) {
	var notes []Note
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(info.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		note, err := Read(root, filepath.ToSlash(rel))
		if err != nil {
			return nil
		}
		notes = append(notes, note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// ScanAttachments walks the vault and returns a lookup from attachment
// filename (e.g. "photo.png") to its vault-relative path. Markdown files
// and dotted directories are excluded; the first occurrence of a name wins.
func ScanAttachments(root string) (map[string]string, error) {
	lookup := make(map[string]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(info.Name(), ".md") {
			return nil
		}
		if _, ok := lookup[info.Name()]; ok {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		lookup[info.Name()] = filepath.ToSlash(rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lookup, nil
}

// splitFrontmatter separates a leading "---" delimited YAML block from the
// markdown body. Content without a well-formed block comes back untouched
// with empty metadata.
func splitFrontmatter(content string) (map[string]any, string) {
	if !strings.HasPrefix(content, "---") {
		return map[string]any{}, content
	}

	parts := strings.SplitN(content[3:], "\n---", 2)
	if len(parts) < 2 {
		return map[string]any{}, content
	}

	yamlBlock := strings.TrimPrefix(parts[0], "\n")
	yamlBlock = strings.TrimPrefix(yamlBlock, "\r\n")
	body := strings.TrimPrefix(parts[1], "\n")
	body = strings.TrimPrefix(body, "\r\n")

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(yamlBlock), &meta); err != nil {
		return map[string]any{}, content
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, body
}
