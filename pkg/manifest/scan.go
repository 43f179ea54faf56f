package manifest

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gallery/pkg/errors"
)

// imageExtensions lists the file extensions Scan considers.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsImagePath reports whether path has a supported image extension.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanOptions configures Scan.
type ScanOptions struct {
	// Recursive descends into subdirectories. Hidden directories are skipped.
	Recursive bool

	// Concurrency bounds the number of files decoded at once.
	// Zero uses GOMAXPROCS.
	Concurrency int

	// Strict fails the scan on the first undecodable file. Otherwise such
	// files are dropped and reported through OnSkip.
	Strict bool
	OnSkip func(path string, err error)
}

// Scan builds a manifest from the images under dir, reading only the image
// headers. Entries are ordered by relative path.
func Scan(ctx context.Context, dir string, opts ScanOptions) (*Manifest, error) {
	paths, err := listImages(dir, opts.Recursive)
	if err != nil {
		return nil, err
	}

	type result struct {
		entry Entry
		err   error
	}
	results := make([]result, len(paths))

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, rel := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			w, h, err := decodeSize(filepath.Join(dir, filepath.FromSlash(rel)))
			if err != nil {
				if opts.Strict {
					return errors.Wrap(errors.ErrCodeInvalidImage, err, "decode %s", rel)
				}
				results[i].err = err
				return nil
			}
			results[i].entry = Entry{Path: rel, Width: float64(w), Height: float64(h)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := &Manifest{Title: filepath.Base(dir), Dir: dir}
	for i, r := range results {
		if r.err != nil {
			if opts.OnSkip != nil {
				opts.OnSkip(paths[i], r.err)
			}
			continue
		}
		m.Images = append(m.Images, r.entry)
	}
	m.assignIDs()
	return m, nil
}

// listImages returns slash-separated paths relative to dir in lexical order.
func listImages(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "directory %s", dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is not a directory", dir)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == dir {
				return nil
			}
			if !recursive || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !IsImagePath(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return paths, nil
}

func decodeSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("empty image %dx%d", cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, nil
}
