package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/logicossoftware/go-mcc"
)

type jsonLine struct {
	Line     int          `json:"line"`
	TimeCode mcc.TimeCode `json:"timecode"`
	Data     string       `json:"data"`
}

type jsonDocument struct {
	Header mcc.Header `json:"header"`
	Lines  []jsonLine `json:"lines"`
}

func main() {
	var configPath string
	var format string
	var limit int
	var verbose bool
	flag.StringVar(&configPath, "config", "", "optional TOML config file")
	flag.StringVar(&format, "format", "", "output format: text or json (overrides config)")
	flag.IntVar(&limit, "n", 0, "print at most n caption lines (0 prints all)")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file.mcc\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := defaultDumpConfig()
	if configPath != "" {
		var err error
		if cfg, err = loadDumpConfig(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "mccdump: %v\n", err)
			os.Exit(1)
		}
	}
	if format != "" {
		if err := validateFormat(format); err != nil {
			fmt.Fprintf(os.Stderr, "mccdump: %v\n", err)
			os.Exit(2)
		}
		cfg.Format = format
	}
	if verbose {
		cfg.LogLevel = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(cfg.LogLevel).
		With().Timestamp().Str("component", "mccdump").Logger()

	path := flag.Arg(0)
	doc, err := mcc.Load(path, cfg.readOptions(logger)...)
	if err != nil {
		var pe *mcc.ParseError
		if errors.As(err, &pe) {
			logger.Error().Int("line", pe.Line).Int("column", pe.Column).Err(err).Msg("decode failed")
		} else {
			logger.Error().Err(err).Msg("decode failed")
		}
		os.Exit(1)
	}
	logger.Info().Str("path", path).Int("lines", doc.Len()).Dur("duration", doc.Duration()).Msg("decoded")

	lines := doc.Lines
	if limit > 0 && limit < len(lines) {
		lines = lines[:limit]
	}
	if err := write(os.Stdout, cfg.Format, doc.Header, lines); err != nil {
		logger.Error().Err(err).Msg("write failed")
		os.Exit(1)
	}
}

func write(w io.Writer, format string, h mcc.Header, lines []mcc.Line) error {
	if format == "json" {
		out := jsonDocument{Header: h, Lines: make([]jsonLine, 0, len(lines))}
		for _, l := range lines {
			out.Lines = append(out.Lines, jsonLine{Line: l.Number, TimeCode: l.TimeCode, Data: l.Hex()})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if _, err := fmt.Fprintf(w, "File Format=%s\nUUID=%s\nCreation Program=%s\nCreation Date=%s\nCreation Time=%s\nTime Code Rate=%s\n\n",
		h.Format, h.UUID, h.CreationProgram, h.CreationDate, h.CreationTime, h.TimeCodeFormat); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", l.TimeCode, l.Hex()); err != nil {
			return err
		}
	}
	return nil
}
