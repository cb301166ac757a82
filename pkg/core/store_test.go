package core_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/pkg/core"
)

// seqIDs returns a deterministic IDFunc for tests.
func seqIDs(prefix string) core.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func TestTagStore(t *testing.T) {
	t.Run("Add Appends With Fresh ID", func(t *testing.T) {
		s := core.NewTagStore(nil, seqIDs("t"))
		a := s.Add("work")
		b := s.Add("")

		assert.Equal(t, core.Tag{ID: "t1", Label: "work"}, a)
		assert.Equal(t, core.Tag{ID: "t2", Label: ""}, b)
		assert.Equal(t, []core.Tag{a, b}, s.All())
	})

	t.Run("Default IDs Are Unique UUIDs", func(t *testing.T) {
		s := core.NewTagStore(nil, nil)
		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			tag := s.Add("x")
			require.Len(t, tag.ID, 36)
			require.False(t, seen[tag.ID], "duplicate id %s", tag.ID)
			seen[tag.ID] = true
		}
	})

	t.Run("Update Renames Only Matching Tag", func(t *testing.T) {
		s := core.NewTagStore([]core.Tag{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}}, nil)
		rev := s.Revision()

		assert.True(t, s.Update("b", "Bee"))
		assert.Equal(t, []core.Tag{{ID: "a", Label: "A"}, {ID: "b", Label: "Bee"}}, s.All())
		assert.NotEqual(t, rev, s.Revision())
	})

	t.Run("Unknown IDs Are No-Ops", func(t *testing.T) {
		s := core.NewTagStore([]core.Tag{{ID: "a", Label: "A"}}, nil)
		rev := s.Revision()

		assert.False(t, s.Update("missing", "x"))
		assert.False(t, s.Delete("missing"))
		assert.Equal(t, rev, s.Revision())
		assert.Equal(t, 1, s.Len())
	})

	t.Run("Delete Removes", func(t *testing.T) {
		s := core.NewTagStore([]core.Tag{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil)
		assert.True(t, s.Delete("b"))
		assert.Equal(t, []core.Tag{{ID: "a"}, {ID: "c"}}, s.All())
		_, ok := s.Get("b")
		assert.False(t, ok)
	})

	t.Run("Insert Rejects Duplicate IDs", func(t *testing.T) {
		s := core.NewTagStore([]core.Tag{{ID: "a", Label: "A"}}, nil)
		assert.False(t, s.Insert(core.Tag{ID: "a", Label: "other"}))
		assert.True(t, s.Insert(core.Tag{ID: "b", Label: "B"}))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("All Does Not Alias", func(t *testing.T) {
		s := core.NewTagStore([]core.Tag{{ID: "a", Label: "A"}}, nil)
		all := s.All()
		all[0].Label = "mutated"
		got, _ := s.Get("a")
		assert.Equal(t, "A", got.Label)
	})
}

func TestNoteStore(t *testing.T) {
	a := core.Tag{ID: "A", Label: "a"}
	b := core.Tag{ID: "B", Label: "b"}

	t.Run("Create Derives Tag IDs", func(t *testing.T) {
		s := core.NewNoteStore(nil, seqIDs("n"))
		n := s.Create(core.NoteData{Title: "T", Markdown: "# body", Tags: []core.Tag{a, b, a}})

		assert.Equal(t, core.RawNote{ID: "n1", Title: "T", Markdown: "# body", TagIDs: []string{"A", "B"}}, n)
		assert.Equal(t, []core.RawNote{n}, s.All())
	})

	t.Run("Untagged Note Has Empty Tag IDs", func(t *testing.T) {
		s := core.NewNoteStore(nil, nil)
		n := s.Create(core.NoteData{Title: "T"})
		assert.NotNil(t, n.TagIDs)
		assert.Empty(t, n.TagIDs)
	})

	t.Run("Update Replaces Tag Set", func(t *testing.T) {
		s := core.NewNoteStore(nil, seqIDs("n"))
		n := s.Create(core.NoteData{Title: "N2", Tags: []core.Tag{a, b}})

		require.True(t, s.Update(n.ID, core.NoteData{Title: "N2'", Markdown: "x", Tags: []core.Tag{a}}))

		got, ok := s.Get(n.ID)
		require.True(t, ok)
		assert.Equal(t, []string{"A"}, got.TagIDs)
		assert.Equal(t, "N2'", got.Title)
		assert.Equal(t, "x", got.Markdown)
	})

	t.Run("Unknown IDs Are No-Ops", func(t *testing.T) {
		s := core.NewNoteStore([]core.RawNote{{ID: "n1", Title: "keep"}}, nil)
		rev := s.Revision()

		assert.False(t, s.Update("nope", core.NoteData{Title: "x"}))
		assert.False(t, s.Delete("nope"))
		assert.Equal(t, rev, s.Revision())
		assert.Equal(t, "keep", s.All()[0].Title)
	})

	t.Run("Delete Keeps Order", func(t *testing.T) {
		s := core.NewNoteStore([]core.RawNote{{ID: "1"}, {ID: "2"}, {ID: "3"}}, nil)
		require.True(t, s.Delete("2"))
		all := s.All()
		require.Len(t, all, 2)
		assert.Equal(t, "1", all[0].ID)
		assert.Equal(t, "3", all[1].ID)
	})

	t.Run("All Is A Deep Copy", func(t *testing.T) {
		s := core.NewNoteStore([]core.RawNote{{ID: "1", TagIDs: []string{"A"}}}, nil)
		all := s.All()
		all[0].TagIDs[0] = "mutated"
		got, _ := s.Get("1")
		assert.Equal(t, []string{"A"}, got.TagIDs)
	})
}

func TestValidateKey(t *testing.T) {
	for _, ok := range []string{"NOTES", "TAGS", "notes.v2", "a-b_c"} {
		assert.NoError(t, core.ValidateKey(ok), ok)
	}
	for _, bad := range []string{"", "a/b", `a\b`, "..", "x..y", "."} {
		assert.ErrorIs(t, core.ValidateKey(bad), core.ErrInvalidKey, bad)
	}
}
