// Package config parses CLI flags and optional YAML config files into a
// validated run configuration.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/seolens/seolens/pkg/audit"
	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/report"
)

// Config is the resolved configuration of one invocation.
type Config struct {
	URL         string
	Format      report.Format
	Categories  []string
	Keywords    []string
	Output      string
	OutDir      string
	Timeout     time.Duration
	Concurrency int
	UserAgent   string

	Serve bool
	Addr  string

	Silent      bool
	NoColor     bool
	ShowVersion bool
}

// FileConfig is the YAML file shape. Fields left empty keep their flag
// or default values.
type FileConfig struct {
	Format         string   `yaml:"format"`
	Types          []string `yaml:"types"`
	Keywords       []string `yaml:"keywords"`
	OutDir         string   `yaml:"out_dir"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	Concurrency    int      `yaml:"concurrency"`
	Addr           string   `yaml:"addr"`
	UserAgent      string   `yaml:"user_agent"`
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &fc, nil
}

// ParseFlags parses args (without the program name) into a Config.
func ParseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("seolens", flag.ContinueOnError)

	var (
		urlFlag     string
		formatFlag  string
		typesFlag   string
		keywordsStr string
		output      string
		outDir      string
		timeoutSecs int
		concurrency int
		configFile  string
		serve       bool
		addr        string
		silent      bool
		noColor     bool
		showVersion bool
	)

	fs.StringVar(&urlFlag, "u", "", "URL to audit")
	fs.StringVar(&urlFlag, "url", "", "URL to audit (alias of -u)")
	fs.StringVar(&formatFlag, "f", "html", "report format: html, json, csv, pdf")
	fs.StringVar(&formatFlag, "format", "html", "report format (alias of -f)")
	fs.StringVar(&typesFlag, "t", "all", "comma-separated audit categories, or 'all'")
	fs.StringVar(&typesFlag, "types", "all", "audit categories (alias of -t)")
	fs.StringVar(&keywordsStr, "k", "", "comma-separated focus keywords")
	fs.StringVar(&keywordsStr, "keywords", "", "focus keywords (alias of -k)")
	fs.StringVar(&output, "o", "", "report output path (default: auto-named under -outdir)")
	fs.StringVar(&output, "output", "", "report output path (alias of -o)")
	fs.StringVar(&outDir, "outdir", "reports", "directory for auto-named reports")
	fs.IntVar(&timeoutSecs, "timeout", int(defaults.FetchTimeout.Seconds()), "per-request timeout in seconds")
	fs.IntVar(&concurrency, "c", defaults.ConcurrencyDefault, "categories audited in parallel")
	fs.IntVar(&concurrency, "concurrency", defaults.ConcurrencyDefault, "parallel categories (alias of -c)")
	fs.StringVar(&configFile, "config", "", "YAML config file")
	fs.BoolVar(&serve, "serve", false, "run the HTTP audit API instead of a one-shot audit")
	fs.StringVar(&addr, "addr", ":8080", "listen address for -serve")
	fs.BoolVar(&silent, "silent", false, "suppress banner and progress output")
	fs.BoolVar(&noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	// Allow the URL as a bare positional argument too.
	if urlFlag == "" && fs.NArg() > 0 {
		urlFlag = fs.Arg(0)
	}

	cfg := &Config{
		URL:         strings.TrimSpace(urlFlag),
		Categories:  splitList(typesFlag),
		Keywords:    splitList(keywordsStr),
		Output:      output,
		OutDir:      outDir,
		Timeout:     time.Duration(timeoutSecs) * time.Second,
		Concurrency: concurrency,
		Serve:       serve,
		Addr:        addr,
		Silent:      silent,
		NoColor:     noColor,
		ShowVersion: showVersion,
	}

	if configFile != "" {
		fc, err := LoadFile(configFile)
		if err != nil {
			return nil, err
		}
		set := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		cfg.applyFile(fc, set)
		if fc.Format != "" && !set["f"] && !set["format"] {
			formatFlag = fc.Format
		}
	}

	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return nil, err
	}
	cfg.Format = format

	return cfg, cfg.validate()
}

// applyFile fills fields the user did not set explicitly on the
// command line. set holds the flag names the user passed.
func (c *Config) applyFile(fc *FileConfig, set map[string]bool) {
	if len(fc.Types) > 0 && !set["t"] && !set["types"] {
		c.Categories = normalizeList(fc.Types)
	}
	if len(fc.Keywords) > 0 && !set["k"] && !set["keywords"] {
		c.Keywords = normalizeList(fc.Keywords)
	}
	if fc.OutDir != "" && !set["outdir"] {
		c.OutDir = fc.OutDir
	}
	if fc.TimeoutSeconds > 0 && !set["timeout"] {
		c.Timeout = time.Duration(fc.TimeoutSeconds) * time.Second
	}
	if fc.Concurrency > 0 && !set["c"] && !set["concurrency"] {
		c.Concurrency = fc.Concurrency
	}
	if fc.Addr != "" && !set["addr"] {
		c.Addr = fc.Addr
	}
	if fc.UserAgent != "" {
		c.UserAgent = fc.UserAgent
	}
}

func (c *Config) validate() error {
	if c.ShowVersion {
		return nil
	}
	if !c.Serve && c.URL == "" {
		return fmt.Errorf("target required: use -u <url> or -serve")
	}
	for _, cat := range c.Categories {
		if !audit.IsCategory(cat) {
			return fmt.Errorf("unknown audit category %q (known: %s)",
				cat, strings.Join(audit.CategoryNames(), ", "))
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// splitList turns a comma-separated flag value into a cleaned slice.
// "all" and "" both mean every category.
func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return nil
	}
	return normalizeList(strings.Split(s, ","))
}

func normalizeList(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(strings.ToLower(item)); item != "" && item != "all" {
			out = append(out, item)
		}
	}
	return out
}
