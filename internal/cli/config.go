package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gallery/pkg/pipeline"
)

// Config holds persistent defaults for the layout and render flags.
// Flags given on the command line always win.
type Config struct {
	Mode            string  `koanf:"mode"`
	Width           float64 `koanf:"width"`
	Margin          float64 `koanf:"margin"`
	TargetRowHeight float64 `koanf:"target_row_height"`
	LimitNodeSearch int     `koanf:"limit_node_search"` // 0 = estimate
	LastRow         string  `koanf:"last_row"`          // "justify" or "natural"
	LastRowWeight   float64 `koanf:"last_row_weight"`
	Columns         int     `koanf:"columns"` // 0 = pick from width
	SafetyPixel     bool    `koanf:"safety_pixel"`

	Formats    string `koanf:"formats"` // comma-separated
	Labels     bool   `koanf:"labels"`
	Thumbnails bool   `koanf:"thumbnails"`
	Background string `koanf:"background"`

	CacheDir string `koanf:"cache_dir"`
	NoCache  bool   `koanf:"no_cache"`
}

// defaultConfig mirrors the pipeline defaults.
func defaultConfig() Config {
	return Config{
		Mode:            pipeline.DefaultMode,
		Width:           pipeline.DefaultWidth,
		Margin:          pipeline.DefaultMargin,
		TargetRowHeight: pipeline.DefaultTargetRowHeight,
		LastRow:         pipeline.DefaultLastRow,
		Formats:         pipeline.FormatSVG,
	}
}

// loadConfig layers the defaults, every existing file in paths (later files
// win) and GALLERY_* environment variables.
func loadConfig(paths []string) (Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	// GALLERY_TARGET_ROW_HEIGHT -> target_row_height
	envProvider := env.Provider(envPrefix, ".", func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// pipelineOptions converts the configuration into pipeline options.
func (c Config) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Mode:            c.Mode,
		Width:           c.Width,
		Margin:          c.Margin,
		TargetRowHeight: c.TargetRowHeight,
		LimitNodeSearch: c.LimitNodeSearch,
		LastRow:         c.LastRow,
		LastRowWeight:   c.LastRowWeight,
		Columns:         c.Columns,
		SafetyPixel:     c.SafetyPixel,
		Formats:         parseFormats(c.Formats),
		Labels:          c.Labels,
		Thumbnails:      c.Thumbnails,
		Background:      c.Background,
	}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config
			printKeyValue("mode", cfg.Mode)
			printKeyValue("width", fmt.Sprintf("%g", cfg.Width))
			printKeyValue("margin", fmt.Sprintf("%g", cfg.Margin))
			printKeyValue("row height", fmt.Sprintf("%g", cfg.TargetRowHeight))
			printKeyValue("lookahead", autoLabel(cfg.LimitNodeSearch))
			printKeyValue("last row", cfg.LastRow)
			printKeyValue("columns", autoLabel(cfg.Columns))
			printKeyValue("formats", cfg.Formats)
			printKeyValue("cache", c.cacheDir())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration files in load order",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range configPaths() {
				state := StyleDim.Render("(missing)")
				if _, err := os.Stat(p); err == nil {
					state = StyleSuccess.Render("(loaded)")
				}
				fmt.Fprintln(stdout, p+" "+state)
			}
			return nil
		},
	})

	return cmd
}

// autoLabel shows zero-means-derived settings.
func autoLabel(n int) string {
	if n == 0 {
		return "auto"
	}
	return fmt.Sprint(n)
}
