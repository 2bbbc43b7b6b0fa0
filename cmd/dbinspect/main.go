// Package main prints key-space statistics for a Badger data directory.
//
// Usage:
//
//	DATA_PATH=~/.secondbrain go run ./cmd/dbinspect
//
// The database is opened read-only, so stop the server first or point at a copy.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/secondbrain/brain-server/internal/store/badgerstore"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/.secondbrain")
	}
	dbPath := filepath.Join(dataPath, "badger")

	s, err := badgerstore.Open(dbPath, nil, badgerstore.Options{ReadOnly: true})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer s.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Printf("Path: %s\n\n", dbPath)
	fmt.Printf("%-12s %10s %10s\n", "PREFIX", "RECORDS", "INDEXES")

	ctx := context.Background()
	totalRecords, totalIndexes := 0, 0
	for _, prefix := range badgerstore.Prefixes {
		records, indexes, err := s.CountPrefix(ctx, prefix)
		if err != nil {
			log.Fatalf("Failed to scan %s: %v", prefix, err)
		}
		totalRecords += records
		totalIndexes += indexes
		fmt.Printf("%-12s %10d %10d\n", strings.TrimSuffix(prefix, ":"), records, indexes)
	}

	fmt.Println(strings.Repeat("-", 34))
	fmt.Printf("%-12s %10d %10d\n", "total", totalRecords, totalIndexes)
}
