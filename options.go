package mcc

import "github.com/rs/zerolog"

type readConfig struct {
	limits      Limits
	compression Compression
	detect      bool
	logger      zerolog.Logger
}

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{limits: defaultLimits(), detect: true, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

type ReadOption func(*readConfig)

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithCompression forces the codec used by Decode and Load instead of
// sniffing the input. CompNone disables decompression entirely.
func WithCompression(comp Compression) ReadOption {
	return func(c *readConfig) {
		c.compression = comp
		c.detect = false
	}
}

// WithLogger receives debug events while decoding. The default discards them.
func WithLogger(l zerolog.Logger) ReadOption {
	return func(c *readConfig) { c.logger = l }
}
