package vault

import (
	"regexp"
	"strings"
)

var (
	// [[target]] or [[target|label]], with an optional leading ! for
	// embeds. The target may carry a #heading suffix.
	reWikilink = regexp.MustCompile(`(!)?\[\[([^\]|#]+)(#[^\]|]*)?(?:\|([^\]]+))?\]\]`)
)

// LinkResolver maps a wikilink target (e.g. "My Note") to the published
// permalink of that note. ok is false when the target is not published.
type LinkResolver func(target string) (permalink string, ok bool)

// EmbedResolver maps an embedded attachment name (e.g. "photo.png") to the
// public URL it was published under. ok is false when the attachment is
// unknown.
type EmbedResolver func(name string) (url string, ok bool)

// RewriteLinks converts Obsidian wikilinks in body into standard markdown
// links using the published permalinks. Links to unpublished targets are
// flattened to their label text. Embeds (![[file]]) are rewritten to image
// links via embeds when it is non-nil, otherwise left alone.
func RewriteLinks(body string, links LinkResolver, embeds EmbedResolver) string {
	return reWikilink.ReplaceAllStringFunc(body, func(m string) string {
		parts := reWikilink.FindStringSubmatch(m)
		isEmbed := parts[1] == "!"
		target := strings.TrimSpace(parts[2])
		fragment := parts[3]
		label := strings.TrimSpace(parts[4])
		if label == "" {
			label = target
		}

		if isEmbed {
			if embeds == nil {
				return m
			}
			url, ok := embeds(target)
			if !ok {
				return m
			}
			return "![" + label + "](" + url + ")"
		}

		permalink, ok := links(target)
		if !ok {
			return label
		}
		return "[" + label + "](" + permalink + fragment + ")"
	})
}

// Embeds returns the targets of all ![[...]] embeds in body, in order of
// appearance, deduplicated.
func Embeds(body string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range reWikilink.FindAllStringSubmatch(body, -1) {
		if m[1] != "!" {
			continue
		}
		target := strings.TrimSpace(m[2])
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}
