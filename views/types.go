// Package views renders gardenpub pages as templ components. Components
// are built with templ.ComponentFunc so sites can swap individual pages via
// gardenpub's view hooks without a template compile step.
package views

// Site carries the site-wide values every page needs.
type Site struct {
	Name        string
	URL         string
	Description string
}

// Note is the view model for a published note.
type Note struct {
	Title       string
	Permalink   string
	Date        string
	Description string
	Tags        []string
	Markdown    string // note body, rendered to HTML by the note page
}
