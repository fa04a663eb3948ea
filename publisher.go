package gardenpub

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/eringen/gardenpub/vault"
)

// Publisher runs the publish pipeline: scan the vault, compile frontmatter
// for every note marked dg-publish, rewrite wikilinks and embeds, and sync
// the result into the store.
type Publisher struct {
	VaultDir  string
	StaticDir string // attachments land under StaticDir/attachments

	store    *Store
	compiler *Compiler
}

// NewPublisher creates a Publisher for the configured vault backed by the
// given store.
func NewPublisher(cfg GardenConfig, store *Store) *Publisher {
	cfg.setDefaults()
	return &Publisher{
		VaultDir:  cfg.VaultDir,
		StaticDir: "public",
		store:     store,
		compiler:  NewCompiler(cfg.Rewrites),
	}
}

// Compiler returns the frontmatter compiler the publisher uses.
func (p *Publisher) Compiler() *Compiler { return p.compiler }

// PublishAll publishes every note in the vault marked dg-publish: true and
// removes store entries for notes no longer marked. Unchanged notes (same
// compiled document hash) are skipped.
func (p *Publisher) PublishAll(ctx context.Context) (PublishResult, error) {
	var res PublishResult

	notes, err := vault.Scan(p.VaultDir)
	if err != nil {
		return res, err
	}

	publishable := make([]vault.Note, 0, len(notes))
	for _, n := range notes {
		if marked, ok := n.Meta[keyPublish].(bool); ok && marked {
			publishable = append(publishable, n)
		}
	}

	links := p.linkResolver(publishable)
	embeds := p.embedResolver(&res)

	current := make(map[string]struct{}, len(publishable))
	for _, n := range publishable {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		current[n.Path] = struct{}{}

		block := p.compiler.Compile(n.Meta, n.Path)
		body := vault.RewriteLinks(n.Body, links, embeds)
		hash := documentHash(block + body)

		if existing, err := p.store.GetNoteByPath(n.Path); err == nil && existing.Hash == hash {
			res.Unchanged++
			continue
		}

		if err := p.store.SaveNote(PublishedNote{
			Path:        n.Path,
			GardenPath:  p.compiler.GardenPath(n.Meta, n.Path),
			Permalink:   p.compiler.Permalink(n.Meta, n.Path),
			Title:       noteTitle(n),
			Date:        noteDate(n),
			Description: noteDescription(n),
			Tags:        p.compiler.Tags(n.Meta),
			Frontmatter: block,
			Content:     body,
			Hash:        hash,
			PublishedAt: time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			return res, err
		}
		res.Published++
	}

	// Unpublish notes that are gone or no longer marked.
	paths, err := p.store.ListPaths()
	if err != nil {
		return res, err
	}
	for _, stored := range paths {
		if _, ok := current[stored]; ok {
			continue
		}
		if err := p.store.DeleteNote(stored); err != nil {
			return res, err
		}
		res.Removed++
	}

	return res, nil
}

// linkResolver builds a wikilink resolver over the publishable note set.
// Targets match by note name or vault path, case-insensitively.
func (p *Publisher) linkResolver(publishable []vault.Note) vault.LinkResolver {
	index := make(map[string]string, len(publishable)*2)
	for _, n := range publishable {
		permalink := p.compiler.Permalink(n.Meta, n.Path)
		bare := strings.TrimSuffix(n.Path, path.Ext(n.Path))
		index[strings.ToLower(bare)] = permalink
		if base := path.Base(bare); base != bare {
			// Base name only wins when unambiguous; first note keeps it.
			if _, taken := index[strings.ToLower(base)]; !taken {
				index[strings.ToLower(base)] = permalink
			}
		}
	}
	return func(target string) (string, bool) {
		permalink, ok := index[strings.ToLower(strings.TrimSuffix(target, ".md"))]
		return permalink, ok
	}
}

// embedResolver processes image embeds on first reference: the attachment
// is resized, written under the static dir, and served from /attachments/.
// Failures skip the embed rather than failing the publish run.
func (p *Publisher) embedResolver(res *PublishResult) vault.EmbedResolver {
	var lookup map[string]string // lazily built: filename -> vault path
	published := make(map[string]string)

	return func(name string) (string, bool) {
		if !isImageAttachment(name) {
			return "", false
		}
		if url, ok := published[name]; ok {
			return url, ok
		}
		if lookup == nil {
			var err error
			if lookup, err = vault.ScanAttachments(p.VaultDir); err != nil {
				log.Printf("gardenpub: scan attachments: %v", err)
				lookup = map[string]string{}
			}
		}
		rel, ok := lookup[name]
		if !ok {
			return "", false
		}

		src, err := os.Open(filepath.Join(p.VaultDir, filepath.FromSlash(rel)))
		if err != nil {
			log.Printf("gardenpub: open attachment %s: %v", rel, err)
			return "", false
		}
		defer src.Close()

		att, data, err := ProcessImage(src, name)
		if err != nil {
			log.Printf("gardenpub: process attachment %s: %v", rel, err)
			return "", false
		}

		dir := filepath.Join(p.StaticDir, attachmentsDir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("gardenpub: create attachments dir: %v", err)
			return "", false
		}
		if err := os.WriteFile(filepath.Join(dir, att.Filename), data, 0o644); err != nil {
			log.Printf("gardenpub: write attachment %s: %v", att.Filename, err)
			return "", false
		}

		url := "/" + attachmentsDir + "/" + att.Filename
		published[name] = url
		res.Assets++
		return url, true
	}
}

func documentHash(doc string) string {
	sum := sha256.Sum256([]byte(doc))
	return hex.EncodeToString(sum[:])
}

// noteTitle prefers the authored title and falls back to the filename.
func noteTitle(n vault.Note) string {
	if t, ok := n.Meta[keyTitle].(string); ok && t != "" {
		return t
	}
	base := path.Base(n.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

func noteDate(n vault.Note) string {
	if d, ok := n.Meta[keyDate].(string); ok {
		return d
	}
	return ""
}

func noteDescription(n vault.Note) string {
	if d, ok := n.Meta[keyDesc].(string); ok {
		return d
	}
	return ""
}
