package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"statboard/internal/util"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ColumnFilter is an initial filter given on the command line as col=value.
type ColumnFilter struct {
	Column int
	Value  string
}

type Config struct {
	URL              string
	FilePath         string
	UseStdin         bool
	Follow           bool
	Theme            Theme
	Offline          bool
	OpenAIModel      string
	OpenAIBase       string
	OpenAITimeoutSec int
	HTTPTimeoutSec   int
	Sort             string
	Filters          []ColumnFilter
	Where            string
	ExportFormat     string
	ExportOut        string
	ShowVersion      bool

	// Internal
	IsPipedStdin bool
}

// Load reads .env (when present), the environment and os.Args.
func Load() (*Config, error) {
	// A missing .env is normal; the environment is used as is.
	_ = godotenv.Load()
	fi, _ := os.Stdin.Stat()
	piped := fi != nil && (fi.Mode()&os.ModeCharDevice) == 0
	return Parse(os.Args[1:], piped)
}

// Parse builds a Config from command line arguments.
func Parse(args []string, pipedStdin bool) (*Config, error) {
	cfg := &Config{IsPipedStdin: pipedStdin}

	fs := flag.NewFlagSet("statboard", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.URL, "url", getenvDefault("STATBOARD_URL", ""), "URL of the statistics summary JSON")
	fs.StringVar(&cfg.FilePath, "file", "", "read the summary from a file")
	fs.BoolVar(&cfg.UseStdin, "stdin", false, "read the summary from stdin (default: auto if piped)")
	fs.BoolVar(&cfg.Follow, "follow", false, "with -file: reload on every payload line appended to the file")
	theme := string(ThemeDark)
	fs.StringVar(&theme, "theme", getenvDefault("STATBOARD_THEME", string(ThemeDark)), "theme: dark|light")
	fs.BoolVar(&cfg.Offline, "offline", false, "disable OpenAI summaries")
	fs.StringVar(&cfg.OpenAIModel, "openai-model", getenvDefault("STATBOARD_OPENAI_MODEL", "gpt-4o-mini"), "OpenAI model override")
	fs.StringVar(&cfg.OpenAIBase, "openai-base-url", getenvDefault("STATBOARD_OPENAI_BASE_URL", ""), "OpenAI base URL override")
	fs.IntVar(&cfg.OpenAITimeoutSec, "openai-timeout-sec", getenvDefaultInt("STATBOARD_OPENAI_TIMEOUT_SEC", 60), "OpenAI request timeout in seconds")
	fs.IntVar(&cfg.HTTPTimeoutSec, "http-timeout-sec", getenvDefaultInt("STATBOARD_HTTP_TIMEOUT_SEC", 0), "payload request timeout in seconds (0=none)")
	fs.StringVar(&cfg.Sort, "sort", "", "initial sort, e.g. 4:desc,0")
	fs.Var((*filterList)(&cfg.Filters), "filter", "initial column filter col=value (repeatable)")
	fs.StringVar(&cfg.Where, "where", "", "row expression filter, e.g. 'commissions > 10 && sfw'")
	fs.StringVar(&cfg.ExportFormat, "export", "", "write visible rows and exit: csv|json|xlsx")
	fs.StringVar(&cfg.ExportOut, "out", "", "output path for -export")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Theme = Theme(theme)
	if cfg.Theme != ThemeDark && cfg.Theme != ThemeLight {
		return nil, fmt.Errorf("unknown theme %q", theme)
	}

	switch cfg.ExportFormat {
	case "", "csv", "json", "xlsx":
	default:
		return nil, fmt.Errorf("unknown export format %q", cfg.ExportFormat)
	}
	if cfg.ExportFormat != "" && cfg.ExportOut == "" {
		return nil, errors.New("-export requires -out path")
	}
	if cfg.Follow && cfg.FilePath == "" {
		return nil, errors.New("-follow requires -file")
	}

	if cfg.UseStdin || (cfg.IsPipedStdin && cfg.FilePath == "" && cfg.URL == "") {
		cfg.UseStdin = true
	}
	if cfg.OpenAITimeoutSec <= 0 {
		cfg.OpenAITimeoutSec = 60
	}
	return cfg, nil
}

type filterList []ColumnFilter

func (f *filterList) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, len(*f))
	for i, c := range *f {
		parts[i] = fmt.Sprintf("%d=%s", c.Column, c.Value)
	}
	return strings.Join(parts, ",")
}

func (f *filterList) Set(s string) error {
	col, val, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("filter %q: want col=value", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(col))
	if err != nil {
		return fmt.Errorf("filter %q: column: %w", s, err)
	}
	*f = append(*f, ColumnFilter{Column: n, Value: val})
	return nil
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvDefaultInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func (c *Config) OpenAIKey() string { return os.Getenv("OPENAI_API_KEY") }

// Source names where the payload comes from, for logs and the status bar.
func (c *Config) Source() string {
	switch {
	case c.URL != "":
		return util.Redact(c.URL)
	case c.FilePath != "":
		return c.FilePath
	case c.UseStdin:
		return "stdin"
	}
	return "demo"
}

func (c *Config) String() string {
	return fmt.Sprintf("source=%s follow=%v theme=%s offline=%v sort=%q filters=%d", c.Source(), c.Follow, c.Theme, c.Offline, c.Sort, len(c.Filters))
}
