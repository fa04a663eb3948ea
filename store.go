package gardenpub

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store wraps a SQLite database holding the publish state: one row per
// published note.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write, busy timeout so writers wait instead
	// of failing with SQLITE_BUSY, synchronous=NORMAL is safe under WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS notes (
    path TEXT PRIMARY KEY,
    garden_path TEXT NOT NULL,
    permalink TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    description TEXT NOT NULL,
    tags TEXT NOT NULL,
    frontmatter TEXT NOT NULL,
    content TEXT NOT NULL,
    hash TEXT NOT NULL,
    published_at TEXT NOT NULL
);
`)
	return err
}

const noteColumns = `path, garden_path, permalink, title, date, description, tags, frontmatter, content, hash, published_at`

func scanNote(row interface{ Scan(...any) error }) (PublishedNote, error) {
	var n PublishedNote
	var tags string
	err := row.Scan(&n.Path, &n.GardenPath, &n.Permalink, &n.Title, &n.Date,
		&n.Description, &tags, &n.Frontmatter, &n.Content, &n.Hash, &n.PublishedAt)
	if err != nil {
		return PublishedNote{}, err
	}
	n.Tags = ParseTags(tags)
	return n, nil
}

// ListNotes returns all published notes ordered by date descending, then
// title. If tag is non-empty, results are filtered to notes carrying it.
func (s *Store) ListNotes(tag string) ([]PublishedNote, error) {
	var rows *sql.Rows
	var err error
	if tag == "" {
		rows, err = s.db.Query(`SELECT ` + noteColumns + ` FROM notes ORDER BY date DESC, title`)
	} else {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		rows, err = s.db.Query(`SELECT `+noteColumns+` FROM notes WHERE instr(lower(tags), ',' || ? || ',') > 0 ORDER BY date DESC, title`, normalized)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []PublishedNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// ListTags returns a sorted, deduplicated slice of all tags across
// published notes, lowercased.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM notes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var result []string
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result, nil
}

// GetNote returns a published note by its permalink.
func (s *Store) GetNote(permalink string) (PublishedNote, error) {
	row := s.db.QueryRow(`SELECT `+noteColumns+` FROM notes WHERE permalink = ?`, permalink)
	return scanNote(row)
}

// GetNoteByPath returns a published note by its vault path.
func (s *Store) GetNoteByPath(path string) (PublishedNote, error) {
	row := s.db.QueryRow(`SELECT `+noteColumns+` FROM notes WHERE path = ?`, path)
	return scanNote(row)
}

// ListPaths returns the vault paths of every published note.
func (s *Store) ListPaths() ([]string, error) {
	rows, err := s.db.Query(`SELECT path FROM notes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// SaveNote upserts a published note. Tags are stored in the delimited
// ",a,b," encoding so tag filtering can use instr.
func (s *Store) SaveNote(n PublishedNote) error {
	tagString := "," + strings.Join(n.Tags, ",") + ","
	_, err := s.db.Exec(`INSERT OR REPLACE INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.Path, n.GardenPath, n.Permalink, n.Title, n.Date, n.Description,
		tagString, n.Frontmatter, n.Content, n.Hash, n.PublishedAt)
	return err
}

// DeleteNote removes a note by vault path.
func (s *Store) DeleteNote(path string) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE path = ?`, path)
	return err
}

// ParseTags splits the delimited tag encoding (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
