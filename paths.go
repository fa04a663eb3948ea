package gardenpub

import (
	"net/url"
	"path"
	"strings"
)

// Slugify converts a string to a URL-safe slug: lowercase, a-z0-9 kept,
// everything else collapsed to single dashes.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SlugifyPath converts a vault path to a URL-safe path by slugifying each
// segment and dropping the file extension. When absolute is true the input
// is treated as rooted at the vault: leading slashes and "./" are stripped
// so the caller can prefix exactly one "/".
func SlugifyPath(p string, absolute bool) string {
	p = strings.TrimSuffix(p, path.Ext(p))
	if absolute {
		p = strings.TrimPrefix(p, "./")
		p = strings.TrimLeft(p, "/")
	}
	segs := strings.Split(p, "/")
	out := make([]string, 0, len(segs))
	for _, seg := range segs {
		if slug := Slugify(seg); slug != "" {
			out = append(out, slug)
		}
	}
	return strings.Join(out, "/")
}

// SanitizePermalink normalizes a user-supplied permalink override into a
// rooted slug path: segments are slugified, empty segments dropped, and the
// result always begins with "/" and never ends with one.
func SanitizePermalink(s string) string {
	segs := strings.Split(strings.Trim(strings.TrimSpace(s), "/"), "/")
	out := make([]string, 0, len(segs))
	for _, seg := range segs {
		if slug := Slugify(seg); slug != "" {
			out = append(out, slug)
		}
	}
	return "/" + strings.Join(out, "/")
}

// RewriteRule relocates documents whose vault path starts with From to the
// same path under To. An empty From matches every path.
type RewriteRule struct {
	From string
	To   string
}

// RewriteRules is an ordered rule set; the first matching rule wins.
type RewriteRules []RewriteRule

// Resolve returns the garden path for a document path: the first rule whose
// From is a path prefix rewrites it, otherwise the path is returned as-is.
func (rules RewriteRules) Resolve(docPath string) string {
	for _, r := range rules {
		if r.From == "" {
			return joinRewrite(r.To, docPath)
		}
		if docPath == r.From {
			return r.To
		}
		if strings.HasPrefix(docPath, r.From+"/") {
			return joinRewrite(r.To, strings.TrimPrefix(docPath, r.From+"/"))
		}
	}
	return docPath
}

func joinRewrite(to, rest string) string {
	to = strings.Trim(to, "/")
	rest = strings.TrimPrefix(rest, "/")
	if to == "" {
		return rest
	}
	if rest == "" {
		return to
	}
	return to + "/" + rest
}

// ParseRewrites parses a comma-separated list of "from->to" pairs, e.g.
// "notes->garden,daily->journal". Malformed entries are skipped.
func ParseRewrites(s string) RewriteRules {
	var rules RewriteRules
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		from, to, ok := strings.Cut(part, "->")
		if !ok {
			continue
		}
		rules = append(rules, RewriteRule{
			From: strings.Trim(strings.TrimSpace(from), "/"),
			To:   strings.Trim(strings.TrimSpace(to), "/"),
		})
	}
	return rules
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
