package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect
	// rendering, keep the CLI flags in internal/cli/render.go in sync.
	Source   Source
	Datasets Datasets
	Sections Sections
	Output   Output
	Runtime  Runtime
}

type Source struct {
	// URL is the Supabase project URL (see --url), e.g.
	// https://bntkbculofzofhwzjsps.supabase.co
	URL string

	// Key is the Supabase service key (see --key). Usually left empty and
	// resolved from SUPABASE_KEY or the secrets file instead.
	Key string

	// SecretsFile is a YAML file with a supabase_key entry (see --secrets-file).
	SecretsFile string
}

type Datasets struct {
	// ListingsTable overrides the gouged listings source table (see --listings-table).
	ListingsTable string

	// LayersFile is a YAML file defining the map layer set (see --layers-file).
	// Empty means the built-in LA County layers.
	LayersFile string

	// Limit caps fetched listing rows (see --limit). 0 means unlimited.
	Limit int
}

type Sections struct {
	// Selector selects which sections to render.
	// Empty means all sections; otherwise a comma-separated ID list (see --sections).
	Selector string

	// Set provides per-section option overrides from the CLI.
	// Entries are of the form sectionID.option=value (repeatable; comma-separated accepted; see --set).
	Set []string
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string

	// HTML writes the self-contained dashboard page to this path (see --html).
	HTML string

	// Report writes a Markdown report to this path (see --report).
	Report string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out file extension.
	OutFormat string

	// Emit writes an additional structured event stream to stdout (see --emit).
	// Allowed values: json, ndjson.
	Emit []string

	// NoConsole suppresses the console sink (see --no-console).
	// Use with --emit/--out/--html/--report for machine-readable output.
	NoConsole bool
}

type Runtime struct {
	// Concurrency controls parallelism for dataset prefetching (see --concurrency).
	// Must be >= 1.
	Concurrency int

	// Timeout is the global timeout for the run (see --timeout).
	// Must be > 0.
	Timeout time.Duration

	// Verbose enables more detailed diagnostics (primarily for fetch failures).
	Verbose bool
}

func New() *Config {
	return &Config{
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Concurrency: 4,
			Timeout:     5 * time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	// Normalize comma-delimited list inputs.
	c.Sections.Set = splitCommaList(c.Sections.Set)

	// Source validation
	c.Source.URL = strings.TrimSpace(c.Source.URL)
	if c.Source.URL == "" {
		return errors.New("--url is required (the Supabase project URL)")
	}
	u, err := url.Parse(c.Source.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid --url value: %q", c.Source.URL)
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		c.Output.ConsoleFormat = "text"
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	for _, emit := range c.Output.Emit {
		v := normalizeEnumValue(emit)
		if v != "json" && v != "ndjson" {
			return fmt.Errorf("unsupported --emit value: %s (must be one of: json, ndjson)", emit)
		}
	}

	// Runtime validation
	if c.Datasets.Limit < 0 {
		return errors.New("--limit must be >= 0")
	}
	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else {
			if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
				return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
			}
		}
	}

	// Section option syntax validation (section.option=value)
	if len(c.Sections.Set) > 0 {
		if _, err := ParseSectionOptionAssignments(c.Sections.Set); err != nil {
			return err
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseSectionOptionAssignments parses values of the form "sectionID.option=value".
//
// Notes:
// - Entries may be provided via repeated flags and/or comma-delimited lists.
// - This validates syntax only (no validation of section IDs or option names).
// - Empty values are allowed ("section.option=").
func ParseSectionOptionAssignments(values []string) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	for _, raw := range splitCommaList(values) {
		left, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected section.option=value", raw)
		}
		left = strings.TrimSpace(left)
		value = strings.TrimSpace(value)
		sectionID, opt, ok := strings.Cut(left, ".")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected section.option=value", raw)
		}
		sectionID = strings.TrimSpace(sectionID)
		opt = strings.TrimSpace(opt)
		if sectionID == "" || opt == "" {
			return nil, fmt.Errorf("invalid --set entry %q: expected non-empty section and option", raw)
		}
		if _, ok := out[sectionID]; !ok {
			out[sectionID] = make(map[string]string)
		}
		out[sectionID][opt] = value
	}
	return out, nil
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
