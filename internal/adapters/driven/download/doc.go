// Package download provides the byte transfer and file persistence adapters
// used after a candidate is selected.
//
// Adapters:
//   - HTTPFetcher: GETs a raw-content URL, following redirects
//   - AtomicWriter: writes through a temp file and rename
//   - SystemOpener: hands a saved file to the OS default application
package download
