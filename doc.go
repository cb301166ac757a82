// Package quire is the composition root of the Quire notebook.
//
// It wires the notebook domain (tags, notes, the derived note view and its
// filter) to a storage adapter, using the hexagonal layout of its packages:
//
//   - pkg/core: the in-memory stores, the join and the filter. No I/O.
//   - pkg/typed: load-once, overwrite-on-save records over a key-value store.
//   - pkg/notebook: the service the presentation layer calls.
//   - pkg/adapters: filesystem (default), SQLite, S3 and in-memory stores.
//
// Every mutation is persisted write-through: the touched collection is
// rewritten in full before the call returns. A failed write is reported but
// never rolls back the in-memory change.
//
// Usage:
//
//	nb, err := quire.Open(ctx, "./notes", quire.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	work, _ := nb.AddTag(ctx, "work")
//	_, err = nb.CreateNote(ctx, quire.NoteData{Title: "Plan", Tags: []quire.Tag{work}})
//
//	for _, n := range nb.Filter("plan", []quire.Tag{work}) {
//		fmt.Println(n.Title)
//	}
package quire
