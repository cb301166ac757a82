package quire_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/quire"
)

// Example_basic opens a notebook, tags a couple of notes and filters them.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "quire-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	nb, err := quire.Open(ctx, tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	work, _ := nb.AddTag(ctx, "work")
	home, _ := nb.AddTag(ctx, "home")
	_, _ = nb.CreateNote(ctx, quire.NoteData{Title: "Shopping", Tags: []quire.Tag{home}})
	_, _ = nb.CreateNote(ctx, quire.NoteData{Title: "Shopping list for the office", Tags: []quire.Tag{work, home}})
	_, _ = nb.CreateNote(ctx, quire.NoteData{Title: "Recipes", Tags: []quire.Tag{home}})

	for _, n := range nb.Filter("shop", []quire.Tag{work}) {
		fmt.Println(n.Title)
	}
	// Output:
	// Shopping list for the office
}

// Example_softCascade shows that deleting a tag hides it from the derived
// view while the stored note keeps the reference until it is saved again.
func Example_softCascade() {
	ctx := context.Background()
	nb, err := quire.Open(ctx, "", quire.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}

	draft, _ := nb.AddTag(ctx, "draft")
	note, _ := nb.CreateNote(ctx, quire.NoteData{Title: "Essay", Tags: []quire.Tag{draft}})
	_, _ = nb.DeleteTag(ctx, draft.ID)

	derived, _ := nb.Note(note.ID)
	fmt.Println(len(derived.Tags), len(nb.RawNotes()[0].TagIDs))
	// Output:
	// 0 1
}

func ExampleFilterNotes() {
	a := quire.Tag{ID: "a", Label: "A"}
	b := quire.Tag{ID: "b", Label: "B"}
	notes := []quire.Note{
		{ID: "1", Title: "N1", Tags: []quire.Tag{a}},
		{ID: "2", Title: "N2", Tags: []quire.Tag{a, b}},
		{ID: "3", Title: "N3", Tags: []quire.Tag{b}},
	}
	for _, n := range quire.FilterNotes(notes, "", []quire.Tag{a, b}) {
		fmt.Println(n.Title)
	}
	// Output:
	// N2
}
