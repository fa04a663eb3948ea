package yamlblock

import (
	"strings"
	"testing"
)

func TestRenderScalars(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want string
	}{
		{"null", Null(), "key: \n"},
		{"bool true", Bool(true), "key: true\n"},
		{"bool false", Bool(false), "key: false\n"},
		{"integer", Number(42), "key: 42\n"},
		{"negative", Number(-3), "key: -3\n"},
		{"float", Number(2.5), "key: 2.5\n"},
		{"plain string", Str("hello world"), "key: hello world\n"},
		{"empty string", Str(""), "key: \n"},
	}

	for _, tt := range tests {
		r := NewRecord()
		r.Set("key", tt.val)
		if got := r.Render(); got != tt.want {
			t.Errorf("%s: Render() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRenderStringQuoting(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// No trigger characters: unquoted.
		{"hello", "hello"},
		{"hello world", "hello world"},
		{"2024", "2024"},
		// Each trigger character forces quoting.
		{"a:b", `"a:b"`},
		{"a#b", `"a#b"`},
		{"a{b", `"a{b"`},
		{"a}b", `"a}b"`},
		{"a[b", `"a[b"`},
		{"a]b", `"a]b"`},
		{"a,b", `"a,b"`},
		{"a&b", `"a&b"`},
		{"a*b", `"a*b"`},
		{"a?b", `"a?b"`},
		{"a|b", `"a|b"`},
		{"a<b", `"a<b"`},
		{"a>b", `"a>b"`},
		{"a=b", `"a=b"`},
		{"a!b", `"a!b"`},
		{"a%b", `"a%b"`},
		{"a@b", `"a@b"`},
		{"a`b", "\"a`b\""},
		// Dates contain '-' and must come out quoted.
		{"2024-01-01", `"2024-01-01"`},
		// Leading/trailing space triggers quoting.
		{" padded", `" padded"`},
		{"padded ", `"padded "`},
		// Escape order: backslash first, then quote, then newline.
		{`back\slash`, `"back\\slash"`},
		{`say "hi"`, `"say \"hi\""`},
		{"two\nlines", `"two\nlines"`},
		{"quote\"and\nmore", `"quote\"and\nmore"`},
	}

	for _, tt := range tests {
		r := NewRecord()
		r.Set("k", Str(tt.in))
		want := "k: " + tt.want + "\n"
		if got := r.Render(); got != want {
			t.Errorf("Render(%q) = %q, want %q", tt.in, got, want)
		}
	}
}

func TestEscapingAppliedOnce(t *testing.T) {
	// Rendering the same record twice must give identical output; escaping
	// never compounds.
	r := NewRecord()
	r.Set("k", Str(`a\b "c"`))
	first := r.Render()
	second := r.Render()
	if first != second {
		t.Errorf("repeated Render differs: %q vs %q", first, second)
	}
	if want := `k: "a\\b \"c\""` + "\n"; first != want {
		t.Errorf("Render() = %q, want %q", first, want)
	}
}

func TestRenderSequences(t *testing.T) {
	r := NewRecord()
	r.Set("tags", Strings([]string{"a", "b", "c"}))
	want := "tags:\n  - a\n  - b\n  - c\n"
	if got := r.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	// Empty sequences render inline.
	r = NewRecord()
	r.Set("tags", Seq())
	if got := r.Render(); got != "tags: []\n" {
		t.Errorf("empty seq Render() = %q, want %q", got, "tags: []\n")
	}

	// Sequence elements use the simple form: no quoting even for strings
	// that would be quoted as top-level values.
	r = NewRecord()
	r.Set("tags", Strings([]string{"with-dash"}))
	if got := r.Render(); got != "tags:\n  - with-dash\n" {
		t.Errorf("dash element Render() = %q, want %q", got, "tags:\n  - with-dash\n")
	}
}

func TestRenderMapFallback(t *testing.T) {
	inner := NewRecord()
	inner.Set("a", Number(1))
	inner.Set("b", Str("x"))
	r := NewRecord()
	r.Set("extra", Map(inner))
	want := `extra: {"a":1,"b":"x"}` + "\n"
	if got := r.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderEmptyRecord(t *testing.T) {
	if got := NewRecord().Render(); got != "" {
		t.Errorf("empty record Render() = %q, want empty", got)
	}
}

func TestRenderPreservesInsertionOrder(t *testing.T) {
	r := NewRecord()
	r.Set("z", Str("1"))
	r.Set("a", Str("2"))
	r.Set("m", Str("3"))
	// Re-setting an existing key keeps its original position.
	r.Set("z", Str("4"))

	got := r.Render()
	want := "z: 4\na: 2\nm: 3\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestFrom(t *testing.T) {
	if v := From(nil); v.Kind() != KindNull {
		t.Errorf("From(nil) kind = %v, want KindNull", v.Kind())
	}
	if v := From(true); v.Kind() != KindBool {
		t.Errorf("From(true) kind = %v, want KindBool", v.Kind())
	}
	if v := From(3); v.Kind() != KindNumber {
		t.Errorf("From(3) kind = %v, want KindNumber", v.Kind())
	}
	if v := From("s"); v.Kind() != KindStr {
		t.Errorf("From(string) kind = %v, want KindStr", v.Kind())
	}
	if v := From([]any{"a", 1}); v.Kind() != KindSeq {
		t.Errorf("From([]any) kind = %v, want KindSeq", v.Kind())
	}

	// Parser maps render with sorted keys so output is stable.
	v := From(map[string]any{"b": 2, "a": 1})
	r := NewRecord()
	r.Set("m", v)
	want := `m: {"a":1,"b":2}` + "\n"
	if got := r.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderWholeBlockShape(t *testing.T) {
	r := NewRecord()
	r.Set("dg-publish", Bool(true))
	r.Set("permalink", Str("/notes/foo"))
	r.Set("tags", Strings([]string{"garden"}))

	got := r.Render()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "dg-publish: true" {
		t.Errorf("line 0 = %q", lines[0])
	}
	// '/' is not a quoting trigger, so path-shaped permalinks stay bare.
	if lines[1] != "permalink: /notes/foo" {
		t.Errorf("line 1 = %q", lines[1])
	}
}
