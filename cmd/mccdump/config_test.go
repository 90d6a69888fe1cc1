package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/logicossoftware/go-mcc"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mccdump.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDumpConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
max_input_size = 4096
max_lines = 10
max_line_bytes = 512
compression = "zstd"
log_level = "debug"
format = "JSON"
`)
	cfg, err := loadDumpConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Limits.MaxInputSize != 4096 || cfg.Limits.MaxLines != 10 || cfg.Limits.MaxLineBytes != 512 {
		t.Fatalf("unexpected limits: %+v", cfg.Limits)
	}
	if cfg.Detect {
		t.Fatalf("expected forced compression")
	}
	if cfg.Compression != mcc.CompZSTD {
		t.Fatalf("unexpected compression: %v", cfg.Compression)
	}
	if cfg.LogLevel != zerolog.DebugLevel {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
	if cfg.Format != "json" {
		t.Fatalf("unexpected format: %q", cfg.Format)
	}
}

func TestLoadDumpConfigDefaults(t *testing.T) {
	path := writeConfig(t, `compression = "auto"`)
	cfg, err := loadDumpConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Detect {
		t.Fatalf("expected auto-detect")
	}
	if cfg.LogLevel != zerolog.InfoLevel {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
	if cfg.Format != "text" {
		t.Fatalf("unexpected format: %q", cfg.Format)
	}
	if cfg.Limits != (mcc.Limits{}) {
		t.Fatalf("expected zero limits so library defaults apply, got %+v", cfg.Limits)
	}
}

func TestLoadDumpConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"codec":    `compression = "rar"`,
		"level":    `log_level = "loud"`,
		"format":   `format = "xml"`,
		"unknown":  `colour = true`,
		"syntax":   `max_lines = `,
		"negative": `max_lines = -1`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := loadDumpConfig(writeConfig(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadDumpConfigMissingFile(t *testing.T) {
	if _, err := loadDumpConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestWriteText(t *testing.T) {
	doc, err := mcc.Parse("File Format=MCC V1.0\nUUID=1234\nCreation Program=test\nCreation Date=2020-01-01\nCreation Time=00:00:00\nTime Code Rate=24\n\n00:00:00:00\tG\n00:00:01:00\t80Z\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	if err := write(&buf, "text", doc.Header, doc.Lines); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Time Code Rate=24\n") {
		t.Fatalf("missing rate in output:\n%s", out)
	}
	if !strings.Contains(out, "00:00:00;00\tFA0000\n") || !strings.Contains(out, "00:00:01;00\t8000\n") {
		t.Fatalf("unexpected lines in output:\n%s", out)
	}

	buf.Reset()
	if err := write(&buf, "json", doc.Header, doc.Lines[:1]); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if !strings.Contains(buf.String(), `"TimeCodeFormat": "24"`) || !strings.Contains(buf.String(), `"data": "FA0000"`) {
		t.Fatalf("unexpected json output:\n%s", buf.String())
	}
}
