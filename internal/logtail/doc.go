// Package logtail reads the tail of the lens log file and decodes it for
// the activity view.
//
// # Reading Log Files
//
// Read returns the last maxLines lines of a file using a ring buffer, so
// memory stays O(maxLines) no matter how large the log grows:
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//	if err != nil {
//		return err
//	}
//
// A missing file yields no lines and no error; the log appears on first
// write. A non-positive maxLines reads the whole file.
//
// # Parsing
//
// lens logs through slog's JSON handler. Parse turns each line into an
// Entry with the time, level and message pulled out and the remaining
// fields flattened into sorted key/value pairs (nested groups become
// dotted keys). Anything that is not a JSON object is kept verbatim as the
// message so stray output is still visible.
package logtail
