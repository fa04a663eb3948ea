package yamlblock

import (
	"strconv"
	"strings"
)

// specialChars are the characters that force a string value into quoted
// form. The set is deliberately wider than YAML requires; garden sites
// already consume blocks quoted this way, so it must not be trimmed down
// to a minimal set.
const specialChars = ":#{}[],&*?|-<>=!%@`"

// Render serializes the record body: one line (or indented line group, for
// sequences) per key, in insertion order. An empty record renders as an
// empty string; the caller owns the surrounding block delimiters.
func (r *Record) Render() string {
	var b strings.Builder
	for _, key := range r.keys {
		renderEntry(&b, key, r.vals[key])
	}
	return b.String()
}

func renderEntry(b *strings.Builder, key string, v Value) {
	switch v.kind {
	case KindNull:
		b.WriteString(key)
		b.WriteString(": \n")
	case KindBool:
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(strconv.FormatBool(v.b))
		b.WriteString("\n")
	case KindNumber:
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(formatNumber(v.num))
		b.WriteString("\n")
	case KindStr:
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(quoteIfSpecial(v.str))
		b.WriteString("\n")
	case KindSeq:
		if len(v.seq) == 0 {
			b.WriteString(key)
			b.WriteString(": []\n")
			return
		}
		b.WriteString(key)
		b.WriteString(":\n")
		for _, el := range v.seq {
			b.WriteString("  - ")
			b.WriteString(el.simpleString())
			b.WriteString("\n")
		}
	case KindMap:
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(v.compactJSON())
		b.WriteString("\n")
	}
}

// simpleString is the plain form used for sequence elements. Elements are
// not routed back through the per-kind entry rendering, so strings appear
// unquoted here.
func (v Value) simpleString() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.num)
	case KindStr:
		return v.str
	default:
		return v.compactJSON()
	}
}

// compactJSON renders a Value in a single-line JSON-like form. This is the
// last-resort representation for nested shapes the builder never emits.
func (v Value) compactJSON() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.num)
	case KindStr:
		return strconv.Quote(v.str)
	case KindSeq:
		parts := make([]string, len(v.seq))
		for i, el := range v.seq {
			parts[i] = el.compactJSON()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case KindMap:
		parts := make([]string, 0, v.rec.Len())
		for _, k := range v.rec.keys {
			parts = append(parts, strconv.Quote(k)+":"+v.rec.vals[k].compactJSON())
		}
		return "{" + strings.Join(parts, ",") + "}"
	}
	return ""
}

// quoteIfSpecial emits s as-is unless it contains a character from
// specialChars, a newline, or leading/trailing whitespace, in which case it
// is double-quoted with backslashes, quotes, and newlines escaped.
func quoteIfSpecial(s string) string {
	if !needsQuoting(s) {
		return s
	}
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	return `"` + escaped + `"`
}

func needsQuoting(s string) bool {
	if s == "" {
		return false
	}
	if strings.ContainsAny(s, specialChars) || strings.Contains(s, "\n") {
		return true
	}
	return strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ")
}
