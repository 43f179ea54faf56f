package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys for each cached pipeline stage.
type Keyer interface {
	// LayoutKey identifies a layout pass over the image list with the given
	// content hash.
	LayoutKey(imagesHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact of the layout with the
	// given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists every option that changes a layout result.
type LayoutKeyOpts struct {
	Mode            string  `json:"mode"`
	ContainerWidth  float64 `json:"container_width"`
	Margin          float64 `json:"margin"`
	TargetRowHeight float64 `json:"target_row_height,omitempty"`
	LimitNodeSearch int     `json:"limit_node_search,omitempty"`
	LastRow         string  `json:"last_row,omitempty"`
	LastRowWeight   float64 `json:"last_row_weight,omitempty"`
	Columns         int     `json:"columns,omitempty"`
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Labels      bool    `json:"labels,omitempty"`
	Thumbnails  bool    `json:"thumbnails,omitempty"`
	ImageDir    string  `json:"image_dir,omitempty"` // Thumbnail source
	Background  string  `json:"background,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces keys of the form "stage:sha256(inputs)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(imagesHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", imagesHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer. The CLI scopes keys by
// layout document version so that entries from an older release are never
// read back.
type ScopedKeyer struct {
	Inner  Keyer
	Prefix string
}

// NewScopedKeyer wraps inner, or DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{Inner: inner, Prefix: prefix}
}

func (k ScopedKeyer) LayoutKey(imagesHash string, opts LayoutKeyOpts) string {
	return k.Prefix + k.Inner.LayoutKey(imagesHash, opts)
}

func (k ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Inner.ArtifactKey(layoutHash, opts)
}

var (
	_ Keyer = DefaultKeyer{}
	_ Keyer = ScopedKeyer{}
)

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "stage:" followed by the digest of the JSON encoding of
// inputs. Key option structs always encode.
func hashKey(stage string, inputs ...any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(inputs)
	return stage + ":" + hex.EncodeToString(h.Sum(nil))
}
