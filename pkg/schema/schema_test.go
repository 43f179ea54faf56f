package schema

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/gallery/pkg/errors"
	"github.com/matzehuels/gallery/pkg/layout"
)

func testImages() []layout.Image {
	return []layout.Image{
		{ID: "a", Width: 100, Height: 100, Meta: layout.Metadata{"path": "a.jpg", "caption": "First"}},
		{ID: "b", Width: 150, Height: 100, Meta: layout.Metadata{"path": "b.jpg", "rating": 5}},
		{ID: "c", Width: 80, Height: 100},
	}
}

func TestFromResultRows(t *testing.T) {
	imgs := testImages()
	opts := layout.Options{ContainerWidth: 600, Margin: 4, TargetRowHeight: 150}
	res, err := layout.Compute(imgs, opts)
	if err != nil {
		t.Fatal(err)
	}

	l := FromResult(res, imgs, opts)
	if !l.IsRows() || l.IsColumns() {
		t.Errorf("mode = %q", l.Mode)
	}
	if l.LimitNodeSearch != layout.EstimateNodeSearch(600, 150) {
		t.Errorf("LimitNodeSearch = %d, want the estimate", l.LimitNodeSearch)
	}
	if l.LastRow != "justify" {
		t.Errorf("LastRow = %q", l.LastRow)
	}
	if l.RowCount != res.RowCount() {
		t.Errorf("RowCount = %d, want %d", l.RowCount, res.RowCount())
	}
	if len(l.Tiles) != 3 {
		t.Fatalf("got %d tiles", len(l.Tiles))
	}

	first := l.Tiles[0]
	if first.ID != "a" || first.Path != "a.jpg" || first.Caption != "First" {
		t.Errorf("tile 0 = %+v", first)
	}
	if first.Meta != nil {
		t.Errorf("well-known keys leaked into meta: %v", first.Meta)
	}
	if l.Tiles[1].Meta["rating"] != 5 {
		t.Errorf("custom meta lost: %v", l.Tiles[1].Meta)
	}
}

func TestFromResultColumns(t *testing.T) {
	imgs := testImages()
	opts := layout.Options{Mode: layout.ModeColumns, ContainerWidth: 1000, Margin: 10}
	res, err := layout.Compute(imgs, opts)
	if err != nil {
		t.Fatal(err)
	}
	l := FromResult(res, imgs, opts)
	if l.Columns != 3 {
		t.Errorf("Columns = %d, want default 3", l.Columns)
	}
	if l.TargetRowHeight != 0 || l.LastRow != "" {
		t.Errorf("row fields set on column layout: %+v", l)
	}
}

func TestRoundTripFile(t *testing.T) {
	imgs := testImages()
	opts := layout.Options{ContainerWidth: 600, TargetRowHeight: 150}
	res, err := layout.Compute(imgs, opts)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(FromResult(res, imgs, opts), path); err != nil {
		t.Fatal(err)
	}
	l, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatal(err)
	}

	back := l.Result()
	if back.ContainerHeight != res.ContainerHeight {
		t.Errorf("height = %g, want %g", back.ContainerHeight, res.ContainerHeight)
	}
	for i, p := range back.Placements {
		if p != res.Placements[i] {
			t.Errorf("placement %d = %+v, want %+v", i, p, res.Placements[i])
		}
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"malformed", `{`, errors.ErrCodeInvalidFormat},
		{"future version", `{"version": 99, "width": 10}`, errors.ErrCodeUnsupported},
		{"unknown mode", `{"mode": "grid", "width": 10}`, errors.ErrCodeInvalidMode},
		{"no width", `{"mode": "rows"}`, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestTileLabel(t *testing.T) {
	tests := []struct {
		tile Tile
		want string
	}{
		{Tile{ID: "x", Path: "p.jpg", Caption: "Cap"}, "Cap"},
		{Tile{ID: "x", Path: "p.jpg"}, "p.jpg"},
		{Tile{ID: "x"}, "x"},
	}
	for _, tt := range tests {
		if got := tt.tile.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}
