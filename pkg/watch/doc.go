// Package watch reports changes to AGENTS.md files using fsnotify.
//
// Explicit files are watched through their parent directory; directories are
// watched recursively, including subdirectories created later. Bursts of
// events are debounced into a single callback carrying every changed path.
package watch
