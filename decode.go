package mcc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Parse decodes an MCC document from its full text content.
//
// The decoding process:
//  1. Parses the header fields in their fixed order, skipping blank and
//     comment lines between "File Format" and "UUID"
//  2. Parses every remaining non-blank line as a caption line
//
// The first grammar violation aborts decoding; no partial document is
// returned. Grammar violations are reported as *ParseError and match
// ErrParse with errors.Is, plus one of ErrInvalidHeader,
// ErrUnknownTimeCodeRate, ErrInvalidTimeCode, ErrInvalidLine or
// ErrInvalidPayload. Exceeding a configured limit returns ErrLimitExceeded.
func Parse(text string, opts ...ReadOption) (*Document, error) {
	cfg := newReadConfig(opts)
	return parseDocument(text, cfg)
}

func parseDocument(text string, cfg readConfig) (*Document, error) {
	if int64(len(text)) > cfg.limits.MaxInputSize {
		return nil, fmt.Errorf("%w: input is %d bytes", ErrLimitExceeded, len(text))
	}
	c := &cursor{text: text}
	header, err := parseHeader(c)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug().
		Str("format", header.Format).
		Str("uuid", header.UUID).
		Stringer("rate", header.TimeCodeFormat).
		Int("header_lines", c.line).
		Msg("header parsed")

	lines, err := parseLines(c, cfg.limits)
	if err != nil {
		return nil, err
	}
	doc := &Document{Header: header, Lines: lines}
	cfg.logger.Debug().Int("lines", len(lines)).Int("source_lines", c.line).Msg("document decoded")
	return doc, nil
}

// Decode reads an MCC document from r.
//
// Input compressed with gzip, Zstandard, LZ4 (frame format) or stored as the
// single entry of a ZIP archive is detected and expanded automatically; use
// WithCompression to force a codec, which is required for Brotli. Text with
// a UTF-8 or UTF-16 byte order mark is converted to UTF-8 before parsing.
//
// Read and decompression failures wrap ErrIO. See Parse for parse errors.
func Decode(r io.Reader, opts ...ReadOption) (*Document, error) {
	cfg := newReadConfig(opts)
	return decode(r, cfg)
}

func decode(r io.Reader, cfg readConfig) (*Document, error) {
	limit := cfg.limits.MaxInputSize
	raw, err := readAll(limitReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if int64(len(raw)) > limit {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrLimitExceeded, limit)
	}

	comp := cfg.compression
	if cfg.detect {
		comp = detectCompression(raw)
	}
	data, err := decompressInput(comp, raw, limit)
	if err != nil {
		return nil, err
	}
	if comp != CompNone {
		cfg.logger.Debug().
			Stringer("compression", comp).
			Int("compressed", len(raw)).
			Int("decompressed", len(data)).
			Msg("input decompressed")
	}

	text, err := normalizeText(data)
	if err != nil {
		return nil, err
	}
	return parseDocument(text, cfg)
}

// Load reads and decodes the MCC file at path. A ".br" extension selects
// Brotli unless WithCompression is given.
//
// Open and read failures wrap ErrIO together with the underlying error, so
// errors.Is(err, fs.ErrNotExist) still reports missing files.
func Load(path string, opts ...ReadOption) (*Document, error) {
	cfg := newReadConfig(opts)
	if cfg.detect && strings.EqualFold(filepath.Ext(path), ".br") {
		cfg.compression = CompBR
		cfg.detect = false
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()
	cfg.logger = cfg.logger.With().Str("path", path).Logger()
	return decode(f, cfg)
}
