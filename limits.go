package mcc

type Limits struct {
	MaxInputSize int64 // bytes read from the source, and bytes after decompression
	MaxLines     int   // caption lines after the header
	MaxLineBytes int   // length of a single caption line without its line ending
}

func defaultLimits() Limits {
	return Limits{
		MaxInputSize: 256 << 20, // 256 MiB
		MaxLines:     10_000_000,
		MaxLineBytes: 1 << 20, // 1 MiB
	}
}

// withDefaults replaces zero or negative fields with the defaults.
func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxInputSize <= 0 {
		l.MaxInputSize = d.MaxInputSize
	}
	if l.MaxLines <= 0 {
		l.MaxLines = d.MaxLines
	}
	if l.MaxLineBytes <= 0 {
		l.MaxLineBytes = d.MaxLineBytes
	}
	return l
}
