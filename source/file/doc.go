// Package file provides file-based document sources and sinks.
//
// Fetcher reads a document once at construction time and caches it, meaning
// subsequent calls to Fetch() return the same data without re-reading the
// filesystem. Watcher keeps the cached data in sync with the file using
// fsnotify and reports every successful reload to a callback. WriteFile
// replaces a file atomically so that watchers and concurrent readers never
// observe a partially written document.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/path/to/template.yaml")()
//	if err != nil {
//	    // Handle error: file not found, permission denied, path is directory, etc.
//	}
//	data, err := fetcher.Fetch()
//
//	watcher, err := file.NewWatcher("/path/to/template.yaml", func(data []byte) {
//	    // reload the document
//	})
//	err = watcher.Start(ctx)
//	defer watcher.Stop(ctx)
//
// Error Handling:
//   - Construction returns error if file cannot be read or path is a directory
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
