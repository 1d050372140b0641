// Command dbinspect prints what the club CLI has persisted in its session
// store. Tokens are shortened unless -show-token is given.
//
// Usage:
//
//	go run ./cmd/dbinspect
//	CLUB_SESSION_PATH=/tmp/session go run ./cmd/dbinspect -show-token
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/readingclub/readingclub/internal/config"
	"github.com/readingclub/readingclub/internal/session"
)

var showToken = flag.Bool("show-token", false, "print the bearer token in full")

func main() {
	flag.Parse()

	cfg, err := config.LoadClientConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := badger.DefaultOptions(cfg.SessionPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open session store (is the CLI running?): %v", err)
	}
	defer db.Close()

	fmt.Printf("=== Session store: %s ===\n\n", cfg.SessionPath)

	count := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())
			count++

			err := item.Value(func(val []byte) error {
				fmt.Printf("%s (%d bytes)\n", key, len(val))
				fmt.Println(describe(key, val))
				fmt.Println()
				return nil
			})
			if err != nil {
				log.Printf("Error reading %s: %v", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating session store: %v", err)
	}

	if count == 0 {
		fmt.Println("No session stored: the CLI is logged out.")
		return
	}
	fmt.Printf("=== %d key(s) ===\n", count)
}

// describe renders a stored value as indented JSON, shortening the token
// and flagging an expired one.
func describe(key string, val []byte) string {
	var record map[string]any
	if err := json.Unmarshal(val, &record); err != nil {
		return fmt.Sprintf("  (not JSON: %v)", err)
	}

	if key == session.KeyToken {
		if token, ok := record["token"].(string); ok && !*showToken && len(token) > 16 {
			record["token"] = token[:16] + "..."
		}
		if raw, ok := record["expiresAt"].(string); ok {
			if expires, err := time.Parse(time.RFC3339Nano, raw); err == nil && time.Now().After(expires) {
				record["expired"] = true
			}
		}
	}

	out, err := json.MarshalIndent(record, "  ", "  ")
	if err != nil {
		return fmt.Sprintf("  (unprintable: %v)", err)
	}
	var buf bytes.Buffer
	buf.WriteString("  ")
	buf.Write(out)
	return buf.String()
}
