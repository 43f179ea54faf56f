package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gallery/pkg/errors"
	"github.com/matzehuels/gallery/pkg/manifest"
)

type scanOpts struct {
	output      string
	recursive   bool
	strict      bool
	concurrency int
	title       string
}

// scanCommand creates the scan command for building manifests from directories.
func (c *CLI) scanCommand() *cobra.Command {
	var opts scanOpts

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Build an image manifest from a directory",
		Long: `Build an image manifest from a directory.

Only image headers are read, so scanning large collections is fast. JPEG, PNG,
GIF, WebP, BMP and TIFF files are recognised; hidden files are skipped. The
manifest format follows the output extension (.json or .toml).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <dir>/gallery.json)")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "scan subdirectories")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on unreadable images instead of skipping them")
	cmd.Flags().IntVarP(&opts.concurrency, "jobs", "j", 0, "parallel decoders (default: number of CPUs)")
	cmd.Flags().StringVar(&opts.title, "title", "", "gallery title (default: directory name)")

	return cmd
}

func (c *CLI) runScan(ctx context.Context, dir string, opts scanOpts) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	skipped := 0
	prog := newProgress(c.Logger)
	m, err := runner.Scan(ctx, dir, manifest.ScanOptions{
		Recursive:   opts.recursive,
		Strict:      opts.strict,
		Concurrency: opts.concurrency,
		OnSkip: func(path string, err error) {
			skipped++
			c.Logger.Debug("skipped", "path", path, "error", err)
		},
	})
	if err != nil {
		return err
	}
	prog.done("scanned", "images", len(m.Images), "skipped", skipped)

	if opts.title != "" {
		m.Title = opts.title
	}

	output := opts.output
	if output == "" {
		output = filepath.Join(dir, appName+".json")
	}
	if err := rebase(m, filepath.Dir(output)); err != nil {
		return err
	}
	if err := manifest.Save(m, output); err != nil {
		return err
	}

	printSuccess("Manifest written")
	printFile(output)
	if skipped > 0 {
		printWarning("Skipped %d unreadable %s (see --verbose)", skipped, plural(skipped, "file", "files"))
	}
	printNewline()
	printNextStep("Lay out", "gallery layout "+output)
	return nil
}

// rebase rewrites entry paths relative to dir, where the manifest is saved.
// Manifest paths resolve against the manifest's own directory and may not
// climb out of it, so dir must contain every image.
func rebase(m *manifest.Manifest, dir string) error {
	for i, e := range m.Images {
		rel, err := filepath.Rel(dir, filepath.Join(m.Dir, filepath.FromSlash(e.Path)))
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return errors.New(errors.ErrCodeInvalidPath,
				"manifest must be written inside %s so image paths stay relative", m.Dir)
		}
		m.Images[i].Path = filepath.ToSlash(rel)
	}
	m.Dir = dir
	return nil
}
