package mcc

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the container an MCC file is stored in.
type Compression uint16

const (
	CompNone Compression = 0x0
	CompZIP  Compression = 0x1
	CompZSTD Compression = 0x2
	CompLZ4  Compression = 0x3
	CompBR   Compression = 0x4
	CompGZIP Compression = 0x5
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZIP:
		return "zip"
	case CompZSTD:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBR:
		return "br"
	case CompGZIP:
		return "gzip"
	default:
		return "unknown"
	}
}

// ParseCompression maps a name produced by Compression.String back to its value.
func ParseCompression(name string) (Compression, bool) {
	for _, c := range []Compression{CompNone, CompZIP, CompZSTD, CompLZ4, CompBR, CompGZIP} {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

var (
	magicGZIP = []byte{0x1F, 0x8B}
	magicZSTD = []byte{0x28, 0xB5, 0x2F, 0xFD}
	magicLZ4  = []byte{0x04, 0x22, 0x4D, 0x18}
	magicZIP  = []byte{'P', 'K', 0x03, 0x04}
)

// detectCompression sniffs the leading magic number. Brotli streams carry
// none, so they are only selected by file extension or WithCompression.
func detectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, magicZSTD):
		return CompZSTD
	case bytes.HasPrefix(data, magicLZ4):
		return CompLZ4
	case bytes.HasPrefix(data, magicZIP):
		return CompZIP
	case bytes.HasPrefix(data, magicGZIP):
		return CompGZIP
	default:
		return CompNone
	}
}

// Function variables for testing injection.
var (
	newZstdReader = func() (*zstd.Decoder, error) { return zstd.NewReader(nil) }
	zipOpen       = func(zf *zip.File) (io.ReadCloser, error) { return zf.Open() }
	readAll       = io.ReadAll
)

// decompressInput expands data according to comp. Output larger than limit
// bytes is rejected with ErrLimitExceeded.
func decompressInput(comp Compression, data []byte, limit int64) ([]byte, error) {
	switch comp {
	case CompNone:
		return data, nil
	case CompZIP:
		return zipDecompress(data, limit)
	case CompZSTD:
		return zstdDecompress(data, limit)
	case CompLZ4:
		return readLimited(lz4.NewReader(bytes.NewReader(data)), limit)
	case CompBR:
		return readLimited(brotli.NewReader(bytes.NewReader(data)), limit)
	case CompGZIP:
		return gzipDecompress(data, limit)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrIO, comp)
	}
}

// limitReader caps r one byte past limit so a full read shows whether the
// limit was crossed. A limit of math.MaxInt64 leaves r effectively unbounded.
func limitReader(r io.Reader, limit int64) io.Reader {
	if limit < math.MaxInt64 {
		limit++
	}
	return io.LimitReader(r, limit)
}

// readLimited reads r to the end, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	b, err := readAll(limitReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: decompressed input exceeds %d bytes", ErrLimitExceeded, limit)
	}
	return b, nil
}

func gzipDecompress(in []byte, limit int64) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer zr.Close()
	return readLimited(zr, limit)
}

// zstdDecompress decodes a Zstandard stream, rejecting output beyond limit bytes.
func zstdDecompress(in []byte, limit int64) ([]byte, error) {
	dec, err := newZstdReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer dec.Close()
	if err := dec.Reset(bytes.NewReader(in)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return readLimited(dec, limit)
}

// zipDecompress extracts the single file stored in a ZIP archive.
func zipDecompress(in []byte, limit int64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(in), int64(len(in)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if len(zr.File) != 1 {
		return nil, fmt.Errorf("%w: zip must contain exactly one entry, found %d", ErrIO, len(zr.File))
	}
	zf := zr.File[0]
	if zf.FileInfo().IsDir() {
		return nil, fmt.Errorf("%w: zip entry must be a file", ErrIO)
	}
	if zf.UncompressedSize64 > uint64(limit) {
		return nil, fmt.Errorf("%w: zip entry %q is %d bytes", ErrLimitExceeded, zf.Name, zf.UncompressedSize64)
	}
	rc, err := zipOpen(zf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer rc.Close()
	return readLimited(rc, limit)
}
