package gardenpub

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/gardenpub/views"
)

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}

func toViewNote(n PublishedNote) views.Note {
	return views.Note{
		Title:       n.Title,
		Permalink:   n.Permalink,
		Date:        n.Date,
		Description: n.Description,
		Tags:        n.Tags,
		Markdown:    n.Content,
	}
}

func toViewNotes(notes []PublishedNote) []views.Note {
	out := make([]views.Note, len(notes))
	for i, n := range notes {
		out[i] = toViewNote(n)
	}
	return out
}

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	notes, err := a.Cache.ListNotes(tag)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}

	var entry *views.Note
	if tag == "" {
		if home, ok, err := a.Cache.Entry(); err == nil && ok {
			v := toViewNote(home)
			entry = &v
		}
	}

	// The entry note is rendered above the list, not listed twice.
	listed := make([]PublishedNote, 0, len(notes))
	for _, n := range notes {
		if entry != nil && n.Permalink == entry.Permalink {
			continue
		}
		listed = append(listed, n)
	}

	return Render(c, views.Home(a.site(), entry, toViewNotes(listed), tag, tags))
}

// handleNote serves published notes at their permalinks. Permalinks are
// arbitrary rooted paths, so this is the catch-all route.
func (a *App) handleNote(c echo.Context) error {
	permalink := "/" + strings.Trim(c.Param("*"), "/")
	note, err := a.Cache.GetNote(permalink)
	if err != nil {
		if err == ErrNotFound {
			return echo.ErrNotFound
		}
		return err
	}

	all, err := a.Cache.ListNotes("")
	if err != nil {
		return err
	}
	related := relatedNotes(note, all)

	return Render(c, views.NotePage(a.site(), toViewNote(note), toViewNotes(related)))
}

// relatedNotes finds notes sharing at least one tag with current.
func relatedNotes(current PublishedNote, notes []PublishedNote) []PublishedNote {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		if tag := normalizeTag(t); tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []PublishedNote
	for _, n := range notes {
		if n.Permalink == current.Permalink {
			continue
		}
		for _, t := range n.Tags {
			if _, ok := tagSet[normalizeTag(t)]; ok {
				related = append(related, n)
				break
			}
		}
	}
	return related
}

func (a *App) handleSitemap(c echo.Context) error {
	notes, err := a.Cache.ListNotes("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, notes)
}

func (a *App) handleFeed(c echo.Context) error {
	notes, err := a.Cache.ListNotes("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, notes)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
