package notebook_test

import (
	"context"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"github.com/aretw0/quire/pkg/adapters/memory"
	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/notebook"
)

// pickTags draws a subset of the current tags, plus occasionally an id that
// does not resolve.
func pickTags(t *rapid.T, tags []core.Tag) []core.Tag {
	var out []core.Tag
	for _, tag := range tags {
		if rapid.Bool().Draw(t, "pick") {
			out = append(out, tag)
		}
	}
	if rapid.IntRange(0, 9).Draw(t, "dangling") == 0 {
		out = append(out, core.Tag{ID: "dangling", Label: "?"})
	}
	return out
}

// testWriteThrough_Properties applies a random sequence of mutations and checks
// that reopening the store always reproduces the live state.
func testWriteThrough_Properties(t *rapid.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, err := notebook.Open(ctx, store)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	steps := rapid.IntRange(1, 25).Draw(t, "steps")
	for i := 0; i < steps; i++ {
		tags := svc.Tags()
		notes := svc.RawNotes()

		switch rapid.IntRange(0, 5).Draw(t, "op") {
		case 0:
			_, err = svc.AddTag(ctx, rapid.StringMatching(`[a-z]{0,6}`).Draw(t, "label"))
		case 1:
			if len(tags) > 0 {
				tag := rapid.SampledFrom(tags).Draw(t, "tag")
				_, err = svc.UpdateTag(ctx, tag.ID, rapid.StringMatching(`[a-z]{0,6}`).Draw(t, "label"))
			}
		case 2:
			if len(tags) > 0 {
				_, err = svc.DeleteTag(ctx, rapid.SampledFrom(tags).Draw(t, "tag").ID)
			}
		case 3:
			_, err = svc.CreateNote(ctx, core.NoteData{
				Title: rapid.StringMatching(`[A-Za-z ]{0,10}`).Draw(t, "title"),
				Tags:  pickTags(t, tags),
			})
		case 4:
			if len(notes) > 0 {
				note := rapid.SampledFrom(notes).Draw(t, "note")
				picked := pickTags(t, tags)
				_, err = svc.UpdateNote(ctx, note.ID, core.NoteData{Title: note.Title, Tags: picked})
				if err == nil {
					got, _ := svc.Note(note.ID)
					for _, tag := range got.Tags {
						if !slices.ContainsFunc(picked, func(p core.Tag) bool { return p.ID == tag.ID }) {
							t.Fatalf("update merged tag %s into the new set", tag.ID)
						}
					}
				}
			}
		case 5:
			if len(notes) > 0 {
				_, err = svc.DeleteNote(ctx, rapid.SampledFrom(notes).Draw(t, "note").ID)
			}
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	reopened, err := notebook.Open(ctx, store)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !slices.Equal(svc.Tags(), reopened.Tags()) {
		t.Fatalf("tags differ after reopen")
	}
	if !slices.EqualFunc(svc.RawNotes(), reopened.RawNotes(), func(a, b core.RawNote) bool {
		return a.ID == b.ID && a.Title == b.Title && a.Markdown == b.Markdown && slices.Equal(a.TagIDs, b.TagIDs)
	}) {
		t.Fatalf("notes differ after reopen")
	}
	if len(reopened.LoadErrors()) != 0 {
		t.Fatalf("reopen reported load errors: %v", reopened.LoadErrors())
	}
}

func TestWriteThrough_Properties(t *testing.T) {
	rapid.Check(t, testWriteThrough_Properties)
}

func FuzzWriteThrough(f *testing.F) {
	f.Fuzz(rapid.MakeFuzz(testWriteThrough_Properties))
}
