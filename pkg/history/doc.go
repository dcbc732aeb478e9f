// Package history stores snapshots of fetched AGENTS.md documents so changes
// to a site's policy can be detected and reviewed.
//
// Two backends implement Store: SQLiteStore (modernc.org/sqlite, WAL mode) for
// durable history and MemoryStore for single-run use and tests. Open selects
// one from the history section of the configuration.
//
// Snapshots are listed newest first. Retention is applied by calling Prune
// with RetentionCutoff(now, days); a retention of zero days keeps everything.
package history
