// Package compression provides pluggable byte-level compression used by the
// draft autosave store and the export archive.
package compression

type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}
