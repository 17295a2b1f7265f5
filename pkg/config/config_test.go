package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seolens/seolens/pkg/report"
)

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := ParseFlags([]string{"-u", "https://example.com"})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.URL)
	assert.Equal(t, report.FormatHTML, cfg.Format)
	assert.Nil(t, cfg.Categories, "'all' types should leave Categories nil")
	assert.Equal(t, "reports", cfg.OutDir)
	assert.Greater(t, cfg.Timeout, time.Duration(0))
}

func TestParseFlagsAliases(t *testing.T) {
	short, err := ParseFlags([]string{"-u", "https://example.com", "-f", "json", "-t", "technical,content", "-k", "seo,audit"})
	require.NoError(t, err)
	long, err := ParseFlags([]string{"-url", "https://example.com", "-format", "json", "-types", "technical,content", "-keywords", "seo,audit"})
	require.NoError(t, err)

	assert.Equal(t, short.URL, long.URL)
	assert.Equal(t, short.Format, long.Format)
	assert.Equal(t, []string{"technical", "content"}, short.Categories)
	assert.Equal(t, []string{"seo", "audit"}, long.Keywords)
}

func TestParseFlagsPositionalURL(t *testing.T) {
	cfg, err := ParseFlags([]string{"https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cfg.URL)
}

func TestParseFlagsRequiresTarget(t *testing.T) {
	_, err := ParseFlags(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target required")

	// -serve and -version both satisfy the target requirement.
	_, err = ParseFlags([]string{"-serve"})
	assert.NoError(t, err)
	_, err = ParseFlags([]string{"-version"})
	assert.NoError(t, err)
}

func TestParseFlagsRejectsUnknownCategory(t *testing.T) {
	_, err := ParseFlags([]string{"-u", "https://example.com", "-t", "technical,bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown audit category "bogus"`)
}

func TestParseFlagsRejectsUnknownFormat(t *testing.T) {
	_, err := ParseFlags([]string{"-u", "https://example.com", "-f", "docx"})
	assert.Error(t, err)
}

func TestConfigFileFillsUnsetFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seolens.yaml")
	body := `
format: json
types: [technical, links]
keywords: [Widgets]
out_dir: /tmp/audits
timeout_seconds: 45
concurrency: 2
addr: ":9090"
user_agent: "custom-agent/1.0"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := ParseFlags([]string{"-u", "https://example.com", "-config", path})
	require.NoError(t, err)

	assert.Equal(t, report.FormatJSON, cfg.Format)
	assert.Equal(t, []string{"technical", "links"}, cfg.Categories)
	assert.Equal(t, []string{"widgets"}, cfg.Keywords, "keywords are lowercased")
	assert.Equal(t, "/tmp/audits", cfg.OutDir)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom-agent/1.0", cfg.UserAgent)
}

func TestFlagsWinOverConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seolens.yaml")
	body := `
format: json
types: [links]
timeout_seconds: 45
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := ParseFlags([]string{"-u", "https://example.com", "-config", path,
		"-f", "csv", "-t", "technical", "-timeout", "10"})
	require.NoError(t, err)

	assert.Equal(t, report.FormatCSV, cfg.Format, "explicit -f beats the file")
	assert.Equal(t, []string{"technical"}, cfg.Categories, "explicit -t beats the file")
	assert.Equal(t, 10*time.Second, cfg.Timeout, "explicit -timeout beats the file")
}

func TestExplicitDefaultFormatWinsOverConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seolens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0o644))

	// Passing -f with the default value is still an explicit choice.
	cfg, err := ParseFlags([]string{"-u", "https://example.com", "-config", path, "-f", "html"})
	require.NoError(t, err)
	assert.Equal(t, report.FormatHTML, cfg.Format, "explicit -f html beats the file")

	// Without the flag the file fills the format.
	cfg, err = ParseFlags([]string{"-u", "https://example.com", "-config", path})
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, cfg.Format)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
