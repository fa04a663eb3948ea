package gardenpub

import "time"

// GardenConfig holds all configuration for a gardenpub site.
type GardenConfig struct {
	Name        string // Site name (default "Garden")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for the feed

	Addr         string // Listen address (default ":3000")
	VaultDir     string // Obsidian vault root (default "vault")
	DatabasePath string // SQLite path (default "data/garden.db")

	// Rewrites relocates notes from vault paths to garden paths, e.g.
	// notes/* -> garden/*. Empty means identity.
	Rewrites RewriteRules

	AdminPassword string // Required for serve: admin login password
	SessionSecret string // Required for serve: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	NoteCacheTTL time.Duration // Note cache TTL (default 5min)
}

func (c *GardenConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Garden"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.VaultDir == "" {
		c.VaultDir = "vault"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/garden.db"
	}
	if c.NoteCacheTTL == 0 {
		c.NoteCacheTTL = 5 * time.Minute
	}
}
