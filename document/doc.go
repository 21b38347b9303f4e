// Package document turns raw document bytes into ready-to-use typed values.
//
// The package uses an interface-based design with three extension points:
//   - Fetcher: retrieves raw document data (file, watcher, static bytes)
//   - Defaulter: applies default values after decoding
//   - Validator: validates the document after defaults are applied
//
// Decoding itself is delegated to a loader.Loader[T], so the same pipeline
// works for every mapper (YAML, JSON, XML).
//
// # Path Navigation
//
// Provider accepts a path parameter that targets a specific section within a
// document. Paths use colon (:) as the separator:
//
//	"templates:receipt"   -> doc["templates"]["receipt"]
//	""                    -> entire document
//
// Path navigation requires a mapper implementing loader.PathDecoder, such as
// the default goccy/go-yaml mapper.
//
// # Example
//
//	type Template struct {
//	    Name  string `yaml:"name"`
//	    Width int    `yaml:"width"`
//	}
//
//	provide := document.Provider[Template]("templates:receipt")
//	fetcher, err := file.NewFetcher("templates.yaml")()
//	tmpl, err := provide(loader.NewYAML[Template](), fetcher)
package document
