package gardenpub

import (
	"regexp"
	"strings"

	"github.com/eringen/gardenpub/yamlblock"
)

// Frontmatter keys recognized in raw note metadata and emitted in compiled
// blocks. The dg- prefix marks garden control keys; everything else either
// passes through untouched or not at all.
const (
	keyPublish   = "dg-publish"
	keyPath      = "dg-path"
	keyPermalink = "dg-permalink"
	keyHome      = "dg-home"
	keyDate      = "date"
	keyTitle     = "title"
	keyDesc      = "description"
	keyTags      = "tags"
	keyLink      = "permalink"

	// homeTag marks the garden's entry note; injected when dg-home is set.
	homeTag = "gardenEntry"
)

// Compiler derives the publishable frontmatter block for a note from its
// raw authored metadata. The zero value is not usable; construct with
// NewCompiler.
//
// Compilation is a pure function of its inputs: no step reads another
// step's output, the raw map is never mutated, and identical inputs always
// produce byte-identical blocks. A Compiler is safe for concurrent use.
type Compiler struct {
	// Rewrites relocates notes from their vault location to their garden
	// location when no explicit dg-path override is present.
	Rewrites RewriteRules

	// Sanitize normalizes an explicit dg-permalink override into a slug.
	// Defaults to SanitizePermalink.
	Sanitize func(string) string

	// PathSlug generates a URL-safe path from a garden path. Defaults to
	// SlugifyPath with absolute semantics.
	PathSlug func(path string, absolute bool) string
}

// NewCompiler returns a Compiler using the default sanitizer and slug
// generator with the given rewrite rules.
func NewCompiler(rules RewriteRules) *Compiler {
	return &Compiler{
		Rewrites: rules,
		Sanitize: SanitizePermalink,
		PathSlug: SlugifyPath,
	}
}

// Compile builds the published frontmatter block for a note. raw is the
// note's authored metadata, docPath its vault-relative path. The result is
// the full delimited block, ready to prepend to the note body.
//
// Compile never fails: absent or oddly-shaped fields degrade to omission.
func (c *Compiler) Compile(raw map[string]any, docPath string) string {
	rec := yamlblock.NewRecord()
	rec.Set(keyPublish, yamlblock.Bool(true))
	c.addDate(rec, raw)
	c.addPermalink(rec, raw, docPath)
	c.addPassthrough(rec, raw)
	c.addTags(rec, raw)
	return "---\n" + rec.Render() + "---\n"
}

// addDate copies the publish date verbatim. No parsing, no default: a note
// without a date publishes without one.
func (c *Compiler) addDate(rec *yamlblock.Record, raw map[string]any) {
	if v, ok := raw[keyDate]; ok {
		rec.Set(keyDate, yamlblock.From(v))
	}
}

// addPermalink resolves the note's garden path and public permalink.
// Exactly one of the two permalink branches runs; the permalink key is
// always present afterwards.
func (c *Compiler) addPermalink(rec *yamlblock.Record, raw map[string]any, docPath string) {
	garden := c.GardenPath(raw, docPath)
	if garden != docPath {
		rec.Set(keyPath, yamlblock.Str(garden))
	}
	if override, ok := stringField(raw, keyPermalink); ok {
		rec.Set(keyPermalink, yamlblock.Str(override))
		rec.Set(keyLink, yamlblock.Str(c.Sanitize(override)))
		return
	}
	rec.Set(keyLink, yamlblock.Str("/"+c.PathSlug(garden, true)))
}

// addPassthrough copies title and description when present. Absent keys
// stay absent; no defaults are invented.
func (c *Compiler) addPassthrough(rec *yamlblock.Record, raw map[string]any) {
	for _, key := range []string{keyTitle, keyDesc} {
		if v, ok := raw[key]; ok {
			rec.Set(key, yamlblock.From(v))
		}
	}
}

// addTags normalizes the tags field and injects the home tag for entry
// notes. Empty tag sets are omitted entirely, never serialized as [].
func (c *Compiler) addTags(rec *yamlblock.Record, raw map[string]any) {
	tags := c.Tags(raw)
	if len(tags) > 0 {
		rec.Set(keyTags, yamlblock.Strings(tags))
	}
}

// GardenPath resolves where the note lives in the garden: an explicit
// dg-path override verbatim, otherwise the rewrite rules applied to the
// note's vault path.
func (c *Compiler) GardenPath(raw map[string]any, docPath string) string {
	if override, ok := stringField(raw, keyPath); ok {
		return override
	}
	return c.Rewrites.Resolve(docPath)
}

// Permalink resolves the note's public permalink without building the full
// block. It follows the same two branches as Compile.
func (c *Compiler) Permalink(raw map[string]any, docPath string) string {
	if override, ok := stringField(raw, keyPermalink); ok {
		return c.Sanitize(override)
	}
	return "/" + c.PathSlug(c.GardenPath(raw, docPath), true)
}

// Tags returns the note's normalized tag list: the raw tags field split or
// copied, plus the home tag when dg-home is set and not already present.
func (c *Compiler) Tags(raw map[string]any) []string {
	tags := tagsFieldOf(raw[keyTags]).names()
	if isHome(raw) && !contains(tags, homeTag) {
		tags = append(tags, homeTag)
	}
	return tags
}

// tagsKind discriminates the shapes the raw tags field can take. Reifying
// the shape here keeps normalization a total match instead of a scattering
// of type probes.
type tagsKind int

const (
	tagsAbsent tagsKind = iota
	tagsComma           // single comma-separated string
	tagsList            // already a list of strings
)

type tagsField struct {
	kind tagsKind
	raw  string
	list []string
}

// tagsFieldOf classifies a raw tags value. Shapes that are neither a string
// nor a list of strings are treated as absent.
func tagsFieldOf(v any) tagsField {
	switch vv := v.(type) {
	case string:
		return tagsField{kind: tagsComma, raw: vv}
	case []string:
		// Copy so a later home-tag append never writes into the caller's
		// backing array.
		return tagsField{kind: tagsList, list: append([]string(nil), vv...)}
	case []any:
		list := make([]string, 0, len(vv))
		for _, el := range vv {
			if s, ok := el.(string); ok {
				list = append(list, s)
			}
		}
		return tagsField{kind: tagsList, list: list}
	default:
		return tagsField{kind: tagsAbsent}
	}
}

// commaSplit matches a comma plus any whitespace immediately after it.
var commaSplit = regexp.MustCompile(`,\s*`)

func (f tagsField) names() []string {
	switch f.kind {
	case tagsComma:
		if strings.TrimSpace(f.raw) == "" {
			return nil
		}
		return FilterEmpty(commaSplit.Split(f.raw, -1))
	case tagsList:
		// Structured lists are used as-is.
		return f.list
	default:
		return nil
	}
}

func isHome(raw map[string]any) bool {
	b, ok := raw[keyHome].(bool)
	return ok && b
}

func stringField(raw map[string]any, key string) (string, bool) {
	s, ok := raw[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func contains(list []string, s string) bool {
	for _, el := range list {
		if el == s {
			return true
		}
	}
	return false
}
