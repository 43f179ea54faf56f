// Package cli implements the gallery command-line interface.
package cli

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gallery/pkg/buildinfo"
	"github.com/matzehuels/gallery/pkg/cache"
	"github.com/matzehuels/gallery/pkg/observability"
	"github.com/matzehuels/gallery/pkg/pipeline"
	"github.com/matzehuels/gallery/pkg/schema"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gallery"

	// envPrefix marks environment variables that override configuration.
	envPrefix = "GALLERY_"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configErr error
}

// New creates a new CLI instance with a default logger. Configuration
// files are read immediately so that they can supply flag defaults; a
// broken file is reported when the first command runs.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	c.Config, c.configErr = loadConfig(configPaths())
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "gallery",
		Short: "Gallery lays out photo collections as justified rows or masonry columns",
		Long: `Gallery computes photo gallery layouts: justified rows whose breaks are chosen
by a shortest-path search, or greedy masonry columns. Layouts are written as
JSON documents and can be rendered as SVG, PNG or PDF contact sheets.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.configErr != nil {
				return c.configErr
			}
			observability.Register(observability.NewLogHooks(c.Logger))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.searchGraphCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(noCache || c.Config.NoCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, "v"+strconv.Itoa(schema.Version)+":")
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(c.cacheDir())
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory: the configured one, or the XDG
// cache home (~/.cache/gallery/ on Linux).
func (c *CLI) cacheDir() string {
	if c.Config.CacheDir != "" {
		return expandPath(c.Config.CacheDir)
	}
	return filepath.Join(xdg.CacheHome, appName)
}

// configPaths lists the configuration files in load order; later files win.
func configPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		appName + ".toml",
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the base output path from the output and input paths.
// If output is empty, the input's extension is stripped (a trailing slash
// on a directory input is ignored). Known format extensions are stripped
// from output.
func basePath(output, input string) string {
	if output == "" {
		input = filepath.Clean(input)
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
