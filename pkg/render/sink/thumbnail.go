package sink

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Loader decodes the image stored at a manifest-relative path.
type Loader func(path string) (image.Image, error)

// DirLoader returns a Loader resolving paths against dir.
func DirLoader(dir string) Loader {
	return func(path string) (image.Image, error) {
		f, err := os.Open(filepath.Join(dir, filepath.FromSlash(path)))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		return img, err
	}
}

const thumbnailQuality = 80

// thumbnailURI scales img to the tile size times scale and returns it as a
// JPEG data URI.
func thumbnailURI(img image.Image, width, height, scale float64) (string, error) {
	w := uint(max(1, math.Round(width*scale)))
	h := uint(max(1, math.Round(height*scale)))
	thumb := resize.Resize(w, h, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
