// Package docserver serves a single typed document over HTTP.
//
// A Handler keeps the current value of a document of type T in memory.
// GET and HEAD return it encoded with the mapper negotiated from the Accept
// header; PUT and POST replace it with a body decoded through a
// loader.Loader[T] selected by Content-Type, after defaults and validation
// from the document package have been applied.
//
// Status codes:
//   - 200 document returned
//   - 204 document replaced
//   - 400 body could not be decoded
//   - 405 method not allowed
//   - 406 no acceptable representation
//   - 413 body exceeds the listener limit
//   - 415 unsupported content type
//   - 422 document failed validation
package docserver
