package gardenpub

// PublishedNote is the core content type stored in SQLite and served by the
// preview server.
type PublishedNote struct {
	Path        string // vault-relative source path
	GardenPath  string // resolved garden path (override or rewrite)
	Permalink   string // public URL path, always "/"-rooted
	Title       string
	Date        string
	Description string
	Tags        []string
	Frontmatter string // compiled frontmatter block, delimiters included
	Content     string // note body after wikilink rewriting
	Hash        string // sha256 of the compiled document
	PublishedAt string
}

// Home reports whether this note is the garden's entry page.
func (n PublishedNote) Home() bool {
	for _, t := range n.Tags {
		if t == homeTag {
			return true
		}
	}
	return false
}

// Document returns the full published document: frontmatter block followed
// by the rewritten body.
func (n PublishedNote) Document() string {
	return n.Frontmatter + n.Content
}

// PublishResult summarizes one run of the publish pipeline.
type PublishResult struct {
	Published int // notes compiled and stored (new or changed)
	Unchanged int // notes skipped because their hash matched
	Removed   int // previously published notes no longer marked dg-publish
	Assets    int // attachments processed
}

// Attachment is a processed image attachment written to the static dir.
type Attachment struct {
	Filename     string // published filename under the attachments dir
	OriginalName string // vault filename it was derived from
	Width        int
	Height       int
	Size         int // encoded size in bytes
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets, including published
// attachments (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithCompiler replaces the default frontmatter compiler, e.g. to supply a
// custom permalink sanitizer.
func WithCompiler(c *Compiler) Option {
	return func(a *App) {
		a.compiler = c
	}
}
