package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/quire"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	tagCount := flag.Int("tags", 20, "Number of tags to spread over the notes")
	adapter := flag.String("adapter", "fs", "Storage adapter: fs, sqlite or memory")
	keep := flag.Bool("keep", false, "Keep the benchmark notebook after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "quire_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	opts := []quire.Option{quire.WithLogger(logger), quire.WithAdapter(*adapter)}

	nb, store, err := quire.New(ctx, benchDir, opts...)
	if err != nil {
		panic(err)
	}

	// 1. Generate in one batch so each collection is written once.
	fmt.Printf("Generating %d notes over %d tags in %s (%s)...\n", *count, *tagCount, benchDir, *adapter)
	startGen := time.Now()
	err = nb.Batch(ctx, func(b *quire.Batch) error {
		tags := make([]quire.Tag, *tagCount)
		for i := range tags {
			tags[i] = b.AddTag(fmt.Sprintf("tag-%d", i))
		}
		for i := 0; i < *count; i++ {
			var noteTags []quire.Tag
			if len(tags) > 0 {
				noteTags = []quire.Tag{tags[i%len(tags)], tags[(i*7)%len(tags)]}
			}
			b.CreateNote(quire.NoteData{
				Title:    fmt.Sprintf("Note %d", i),
				Markdown: fmt.Sprintf("# Benchmark Note %d\nThis is a test note.", i),
				Tags:     noteTags,
			})
		}
		return nil
	})
	if err != nil {
		panic(err)
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	// 2. Single write-through mutation against the full collection.
	startWrite := time.Now()
	if _, err := nb.CreateNote(ctx, quire.NoteData{Title: "One more"}); err != nil {
		panic(err)
	}
	writeDuration := time.Since(startWrite)
	closeStore(store)

	// 3. Reopen to simulate a new CLI command run. Memory keeps nothing across stores.
	if *adapter == "memory" {
		opts = append(opts, quire.WithStore(store))
	}
	startOpen := time.Now()
	nb2, store2, err := quire.New(ctx, benchDir, opts...)
	if err != nil {
		panic(err)
	}
	defer closeStore(store2)
	openDuration := time.Since(startOpen)

	startCold := time.Now()
	notes := nb2.Notes()
	cold := time.Since(startCold)

	startWarm := time.Now()
	nb2.Notes()
	warm := time.Since(startWarm)

	var selected []quire.Tag
	if tags := nb2.Tags(); len(tags) > 0 {
		selected = tags[:1]
	}
	startFilter := time.Now()
	filtered := nb2.Filter("note 1", selected)
	filterDuration := time.Since(startFilter)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes, %d tags, %s):\n", len(notes), *tagCount, *adapter)
	fmt.Printf("  Write:       %v\n", writeDuration)
	fmt.Printf("  Open:        %v\n", openDuration)
	fmt.Printf("  Derive cold: %v\n", cold)
	fmt.Printf("  Derive warm: %v\n", warm)
	fmt.Printf("  Filter:      %v (%d matches)\n", filterDuration, len(filtered))
	fmt.Printf("--------------------------------------------------\n")
}

func closeStore(store quire.Store) {
	if c, ok := store.(interface{ Close() error }); ok {
		c.Close()
	}
}
