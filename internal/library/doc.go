// Package library implements a profile's bookmark library: cached reads,
// single bookmark creation, importing a peer's shared folder and moving
// bookmarks between folders in one batch.
//
// The importer is best effort per listing but refuses a malformed
// notification outright. The reorganizer is all-or-nothing: one bad
// assignment rejects the batch before anything is written. Both report
// request problems inside their outcome and keep the error return for
// storage failures.
//
// Reads go through ReadCache. Writes leave cached reads untouched unless a
// PurgeOnWrite invalidator is configured.
package library
