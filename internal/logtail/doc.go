// Package logtail reads the tail of curio's log file and decodes its
// structured records for display.
//
// Read extracts the last N lines of a file with a ring buffer, so memory use
// is bounded by N rather than the file size. A non-positive N reads the whole
// file. Missing files are not an error; Read returns nil, nil.
//
// Parse turns a JSON line written by the slog handler into an Entry with the
// time, level and message split out and the remaining attributes sorted by
// key. Lines that are not JSON are kept as-is so older plain text logs still
// render.
package logtail
