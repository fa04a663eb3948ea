// gardenpub CLI — publish an Obsidian vault as a digital garden.
// Configuration comes from environment variables; see printUsage.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/eringen/gardenpub"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "publish":
		if err := runPublish(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "watch":
		if err := runWatch(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("gardenpub %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func configFromEnv() gardenpub.GardenConfig {
	return gardenpub.GardenConfig{
		Name:          gardenpub.EnvOr("GARDEN_NAME", "Garden"),
		URL:           gardenpub.EnvOr("GARDEN_URL", "http://localhost:3000"),
		Description:   os.Getenv("GARDEN_DESCRIPTION"),
		Author:        os.Getenv("GARDEN_AUTHOR"),
		Addr:          gardenpub.EnvOr("GARDEN_ADDR", ":3000"),
		VaultDir:      gardenpub.EnvOr("GARDEN_VAULT", "vault"),
		DatabasePath:  gardenpub.EnvOr("GARDEN_DB", "data/garden.db"),
		Rewrites:      gardenpub.ParseRewrites(os.Getenv("GARDEN_REWRITES")),
		AdminPassword: os.Getenv("GARDEN_ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("GARDEN_SESSION_SECRET"),
		CookieSecure:  os.Getenv("GARDEN_COOKIE_SECURE") == "true",
	}
}

func runPublish() error {
	cfg := configFromEnv()
	store, err := gardenpub.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := gardenpub.NewPublisher(cfg, store).PublishAll(context.Background())
	if err != nil {
		return err
	}
	log.Printf("published %d, unchanged %d, removed %d, assets %d",
		res.Published, res.Unchanged, res.Removed, res.Assets)
	return nil
}

func runWatch() error {
	cfg := configFromEnv()
	store, err := gardenpub.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher := gardenpub.NewPublisher(cfg, store)
	if _, err := publisher.PublishAll(ctx); err != nil {
		return err
	}
	log.Printf("watching %s", cfg.VaultDir)
	err = gardenpub.NewWatcher(publisher, nil).Run(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}

func runServe() error {
	cfg := configFromEnv()
	cfg.AdminPassword = gardenpub.MustEnv("GARDEN_ADMIN_PASSWORD")
	cfg.SessionSecret = gardenpub.MustEnv("GARDEN_SESSION_SECRET")

	app := gardenpub.New(cfg)
	defer app.Close()
	return app.Start()
}

func printUsage() {
	fmt.Println(`gardenpub - publish an Obsidian vault as a digital garden

Usage:
  gardenpub <command>

Commands:
  publish       Compile and publish every note marked dg-publish
  watch         Publish, then republish on vault changes
  serve         Start the garden site with the admin dashboard
  version       Print the gardenpub version
  help          Show this help message

Environment:
  GARDEN_VAULT             Vault directory (default "vault")
  GARDEN_DB                SQLite path (default "data/garden.db")
  GARDEN_NAME              Site name
  GARDEN_URL               Canonical site URL
  GARDEN_ADDR              Listen address (default ":3000")
  GARDEN_REWRITES          Path rewrites, e.g. "notes->garden,daily->journal"
  GARDEN_ADMIN_PASSWORD    Admin password (required for serve)
  GARDEN_SESSION_SECRET    Session secret (required for serve)`)
}
