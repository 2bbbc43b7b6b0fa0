// Package main seeds a data directory with a demo account and sample content.
//
// Usage:
//
//	DATA_PATH=~/.secondbrain go run ./cmd/seed
//	DATA_PATH=/tmp/brain STORE_DRIVER=badger go run ./cmd/seed --username demo --password demo
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/secondbrain/brain-server/internal/auth"
	"github.com/secondbrain/brain-server/internal/config"
	domainerrors "github.com/secondbrain/brain-server/internal/errors"
	"github.com/secondbrain/brain-server/internal/service"
	"github.com/secondbrain/brain-server/internal/store"
	"github.com/secondbrain/brain-server/internal/store/badgerstore"
	"github.com/secondbrain/brain-server/internal/store/sqlite"
)

var (
	username = flag.String("username", "demo", "Demo account username")
	password = flag.String("password", "demo", "Demo account password")
	baseURL  = flag.String("base-url", "http://localhost:3000", "Base URL for the printed share link")
)

var samples = []service.CreateContentRequest{
	{
		Title:        "Never Gonna Give You Up",
		Type:         "youtube",
		URL:          "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Tags:         []string{"music", "classics"},
		CategoryName: "Watch later",
	},
	{
		Title:        "Go proverbs",
		Type:         "link",
		URL:          "https://go-proverbs.github.io/",
		Description:  "<p>Clear is better than <em>clever</em>.</p>",
		Tags:         []string{"go", "reading"},
		CategoryName: "Reading",
	},
	{
		Title:       "Groceries",
		Type:        "note",
		Description: "eggs, coffee, bread",
		Tags:        []string{"home"},
	},
	{
		Title:        "Focus playlist",
		Type:         "spotify",
		URL:          "https://open.spotify.com/playlist/37i9dQZF1DWZeKCadgRdKQ",
		Tags:         []string{"music"},
		CategoryName: "Listen",
	},
	{
		Title: "Gopher",
		Type:  "image",
		URL:   "https://go.dev/images/gophers/ladder.svg",
		Tags:  []string{"go"},
	},
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/.secondbrain")
	}
	if err := os.MkdirAll(dataPath, 0o750); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	s, err := openStore(dataPath, os.Getenv("STORE_DRIVER"))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	key, err := auth.LoadOrGenerateKey(dataPath)
	if err != nil {
		log.Fatalf("Failed to load auth key: %v", err)
	}
	tokens, err := auth.NewTokenService(hex.EncodeToString(key), 24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	tags := service.NewTagService(s, logger)
	categories := service.NewCategoryService(s, logger)
	authService := service.NewAuthService(s, auth.NewPasswordHasher(auth.DefaultArgon2Params), tokens, logger)
	contentService := service.NewContentService(s, tags, categories, logger)
	linkService := service.NewLinkService(s, *baseURL, service.DefaultLinkMaxAttempts, logger)

	ctx := context.Background()
	creds := service.CredentialsRequest{Username: *username, Password: *password}

	result, err := authService.Register(ctx, creds)
	if errors.Is(err, domainerrors.ErrUsernameTaken) {
		fmt.Printf("User %q exists, signing in\n", *username)
		result, err = authService.Login(ctx, creds)
	}
	if err != nil {
		log.Fatalf("Failed to prepare demo user: %v", err)
	}
	userID := result.User.ID

	for _, req := range samples {
		item, err := contentService.Create(ctx, userID, req)
		if err != nil {
			log.Fatalf("Failed to create %q: %v", req.Title, err)
		}
		fmt.Printf("  + %-8s %s (%s)\n", item.Type, item.Title, item.CategoryName)
	}

	link, err := linkService.Generate(ctx, userID)
	if err != nil {
		log.Fatalf("Failed to issue share link: %v", err)
	}

	fmt.Println()
	fmt.Printf("Seeded %d items for %q\n", len(samples), *username)
	fmt.Printf("Token:      %s\n", result.Token)
	fmt.Printf("Share link: %s\n", link.URL)
}

func openStore(dataPath, driver string) (store.Store, error) {
	if driver == config.DriverBadger {
		return badgerstore.New(filepath.Join(dataPath, "badger"), nil)
	}
	return sqlite.Open(filepath.Join(dataPath, "brain.db"), nil)
}
