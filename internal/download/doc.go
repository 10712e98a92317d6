// Package download saves, opens and shares full-resolution images.
//
// In file mode, Save streams the image into <download dir>/<file name>
// through natefinch/atomic, so an interrupted transfer never leaves a
// partial file. In browser mode the image URL is handed to the system
// opener instead. Share copies the URL to the clipboard and falls back to
// opening the image page.
//
// Successful saves are recorded through a Recorder, normally the SQLite
// library. All failures wrap ErrDownload.
package download
