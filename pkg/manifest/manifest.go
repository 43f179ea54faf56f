package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/matzehuels/gallery/pkg/errors"
	"github.com/matzehuels/gallery/pkg/layout"
)

// Format identifies a manifest encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer manifest format from %q", path)
	}
}

// idNamespace scopes generated image IDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/gallery/image"))

// Entry is one image in a manifest.
type Entry struct {
	ID      string         `json:"id,omitempty" toml:"id,omitempty"`
	Path    string         `json:"path,omitempty" toml:"path,omitempty"`
	Width   float64        `json:"width" toml:"width"`
	Height  float64        `json:"height" toml:"height"`
	Caption string         `json:"caption,omitempty" toml:"caption,omitempty"`
	Alt     string         `json:"alt,omitempty" toml:"alt,omitempty"`
	Meta    map[string]any `json:"meta,omitempty" toml:"meta,omitempty"`
}

// Manifest is an ordered image list.
type Manifest struct {
	Title  string  `json:"title,omitempty" toml:"title,omitempty"`
	Images []Entry `json:"images" toml:"images"`

	// Dir is the directory image paths are relative to. It is set by Load
	// and Scan and never serialized.
	Dir string `json:"-" toml:"-"`
}

// Layout converts the manifest into layout engine input. Path, caption and
// alt text travel in the image metadata.
func (m *Manifest) Layout() []layout.Image {
	imgs := make([]layout.Image, len(m.Images))
	for i, e := range m.Images {
		meta := layout.Metadata{}
		for k, v := range e.Meta {
			meta[k] = v
		}
		if e.Path != "" {
			meta["path"] = e.Path
		}
		if e.Caption != "" {
			meta["caption"] = e.Caption
		}
		if e.Alt != "" {
			meta["alt"] = e.Alt
		}
		imgs[i] = layout.Image{ID: e.ID, Width: e.Width, Height: e.Height, Meta: meta}
	}
	return imgs
}

// Resolve returns the filesystem location of an entry's image, or "" if the
// entry has no path.
func (m *Manifest) Resolve(e Entry) string {
	if e.Path == "" {
		return ""
	}
	return filepath.Join(m.Dir, filepath.FromSlash(e.Path))
}

// Validate checks every entry. Sizes are left to the layout engine, which
// reports the offending index; Validate covers paths and ID uniqueness.
func (m *Manifest) Validate() error {
	seen := make(map[string]int, len(m.Images))
	for i, e := range m.Images {
		if e.Path != "" {
			if err := errors.ValidatePath(e.Path); err != nil {
				return fmt.Errorf("image %d: %w", i, err)
			}
		}
		if e.ID == "" {
			continue
		}
		if j, ok := seen[e.ID]; ok {
			return errors.New(errors.ErrCodeInvalidManifest, "images %d and %d share id %q", j, i, e.ID)
		}
		seen[e.ID] = i
	}
	return nil
}

// assignIDs fills in missing IDs from the entry path, or the entry position
// for path-less entries.
func (m *Manifest) assignIDs() {
	for i := range m.Images {
		e := &m.Images[i]
		if e.ID != "" {
			continue
		}
		name := e.Path
		if name == "" {
			name = "#" + strconv.Itoa(i)
		}
		e.ID = uuid.NewSHA1(idNamespace, []byte(name)).String()
	}
}

// Read decodes a manifest from r, assigns missing IDs and validates it.
func Read(r io.Reader, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode json")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode toml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown manifest format %q", format)
	}

	m.assignIDs()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads the manifest at path. The encoding follows the extension.
func Load(path string) (*Manifest, error) {
	if err := errors.ValidateManifestFilename(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

// Write encodes m to w.
func Write(w io.Writer, m *Manifest, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown manifest format %q", format)
	}
}

// Save writes m to path, choosing the encoding from the extension.
func Save(m *Manifest, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, m, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
