package vault

import "testing"

func TestRewriteLinks(t *testing.T) {
	links := func(target string) (string, bool) {
		switch target {
		case "Other Note":
			return "/notes/other-note", true
		case "Home":
			return "/", true
		}
		return "", false
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain wikilink", "see [[Other Note]]", "see [Other Note](/notes/other-note)"},
		{"labeled wikilink", "see [[Other Note|this]]", "see [this](/notes/other-note)"},
		{"heading fragment", "see [[Other Note#Section]]", "see [Other Note](/notes/other-note#Section)"},
		{"unpublished target flattens", "see [[Secret Note]]", "see Secret Note"},
		{"unpublished labeled", "see [[Secret Note|hidden]]", "see hidden"},
		{"multiple links", "[[Home]] and [[Other Note]]", "[Home](/) and [Other Note](/notes/other-note)"},
		{"no links", "plain text", "plain text"},
	}

	for _, tt := range tests {
		if got := RewriteLinks(tt.in, links, nil); got != tt.want {
			t.Errorf("%s: RewriteLinks(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestRewriteEmbeds(t *testing.T) {
	links := func(string) (string, bool) { return "", false }
	embeds := func(name string) (string, bool) {
		if name == "photo.png" {
			return "/attachments/photo.jpg", true
		}
		return "", false
	}

	got := RewriteLinks("![[photo.png]]", links, embeds)
	if got != "![photo.png](/attachments/photo.jpg)" {
		t.Errorf("embed rewrite = %q", got)
	}

	// Unknown embeds and nil resolvers leave the embed untouched.
	if got := RewriteLinks("![[missing.png]]", links, embeds); got != "![[missing.png]]" {
		t.Errorf("unknown embed = %q", got)
	}
	if got := RewriteLinks("![[photo.png]]", links, nil); got != "![[photo.png]]" {
		t.Errorf("nil embed resolver = %q", got)
	}
}

func TestEmbeds(t *testing.T) {
	body := "![[a.png]] text [[not embed]] ![[b.jpg]] ![[a.png]]"
	got := Embeds(body)
	if len(got) != 2 || got[0] != "a.png" || got[1] != "b.jpg" {
		t.Errorf("Embeds = %v, want [a.png b.jpg]", got)
	}
}
