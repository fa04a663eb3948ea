package views

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func page(title string, site Site, body func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"/>")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
		b.WriteString("<title>" + html.EscapeString(title) + "</title>")
		if site.Description != "" {
			b.WriteString("<meta name=\"description\" content=\"" + html.EscapeString(site.Description) + "\"/>")
		}
		b.WriteString("<link rel=\"stylesheet\" href=\"/public/style.css\"/>")
		b.WriteString("</head><body><header><a href=\"/\" class=\"site-name\">" + html.EscapeString(site.Name) + "</a></header><main>")
		if _, err := w.Write([]byte(b.String())); err != nil {
			return err
		}
		if err := body(ctx, w); err != nil {
			return err
		}
		_, err := w.Write([]byte("</main></body></html>"))
		return err
	})
}

func writeNoteList(w io.Writer, notes []Note) error {
	var b strings.Builder
	b.WriteString("<ul class=\"note-list\">")
	for _, n := range notes {
		b.WriteString("<li><a href=\"" + html.EscapeString(n.Permalink) + "/\">" + html.EscapeString(n.Title) + "</a>")
		if n.Date != "" {
			b.WriteString(" <time>" + html.EscapeString(n.Date) + "</time>")
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	_, err := w.Write([]byte(b.String()))
	return err
}

func writeTagNav(w io.Writer, tags []string, active string) error {
	if len(tags) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("<nav class=\"tags\">")
	for _, t := range tags {
		class := ""
		if t == active {
			class = " class=\"active\""
		}
		b.WriteString("<a" + class + " href=\"/?tag=" + html.EscapeString(t) + "\">#" + html.EscapeString(t) + "</a> ")
	}
	b.WriteString("</nav>")
	_, err := w.Write([]byte(b.String()))
	return err
}

// Home renders the garden index: the entry note (when one is tagged as the
// garden entry) followed by the note list, optionally filtered by tag.
func Home(site Site, entry *Note, notes []Note, activeTag string, tags []string) templ.Component {
	return page(site.Name, site, func(ctx context.Context, w io.Writer) error {
		if entry != nil {
			if _, err := io.WriteString(w, "<article class=\"entry\">"); err != nil {
				return err
			}
			if err := Markdown(entry.Markdown).Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "</article>"); err != nil {
				return err
			}
		}
		if err := writeTagNav(w, tags, activeTag); err != nil {
			return err
		}
		return writeNoteList(w, notes)
	})
}

// NotePage renders a single published note with its related notes.
func NotePage(site Site, note Note, related []Note) templ.Component {
	return page(note.Title+" — "+site.Name, site, func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<article><h1>" + html.EscapeString(note.Title) + "</h1>")
		if note.Date != "" {
			b.WriteString("<time>" + html.EscapeString(note.Date) + "</time>")
		}
		if _, err := w.Write([]byte(b.String())); err != nil {
			return err
		}
		if err := Markdown(note.Markdown).Render(ctx, w); err != nil {
			return err
		}
		if err := writeTagNav(w, note.Tags, ""); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</article>"); err != nil {
			return err
		}
		if len(related) > 0 {
			if _, err := io.WriteString(w, "<aside><h2>Related</h2>"); err != nil {
				return err
			}
			if err := writeNoteList(w, related); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "</aside>"); err != nil {
				return err
			}
		}
		return nil
	})
}

// AdminLogin renders the admin login form.
func AdminLogin(site Site, showError bool, csrfToken string) templ.Component {
	return page("Admin — "+site.Name, site, func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		if showError {
			b.WriteString("<p class=\"error\">Wrong password.</p>")
		}
		b.WriteString("<form method=\"post\" action=\"/admin/login/\">")
		b.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + html.EscapeString(csrfToken) + "\"/>")
		b.WriteString("<input type=\"password\" name=\"password\" placeholder=\"Password\" autofocus/>")
		b.WriteString("<button type=\"submit\">Log in</button></form>")
		_, err := w.Write([]byte(b.String()))
		return err
	})
}

// AdminDashboard renders the publish dashboard: note inventory plus the
// publish trigger.
func AdminDashboard(site Site, notes []Note, message string, csrfToken string) templ.Component {
	return page("Admin — "+site.Name, site, func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		if message != "" {
			b.WriteString("<p class=\"message\">" + html.EscapeString(message) + "</p>")
		}
		b.WriteString("<form method=\"post\" action=\"/admin/publish/\">")
		b.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + html.EscapeString(csrfToken) + "\"/>")
		b.WriteString("<button type=\"submit\">Publish vault</button></form>")
		b.WriteString("<form method=\"post\" action=\"/admin/logout/\">")
		b.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + html.EscapeString(csrfToken) + "\"/>")
		b.WriteString("<button type=\"submit\">Log out</button></form>")
		if _, err := w.Write([]byte(b.String())); err != nil {
			return err
		}
		return writeNoteList(w, notes)
	})
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return page("Not found — "+site.Name, site, func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>This note is not part of the garden.</p>")
		return err
	})
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	return page("Error — "+site.Name, site, func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>Something went wrong.</p>")
		return err
	})
}
