package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/gallery/pkg/errors"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10" fill="#d9d9d9"/></svg>`

func TestConvert(t *testing.T) {
	ctx := context.Background()
	if !Available() {
		_, err := ToPDF(ctx, []byte(squareSVG))
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Fatalf("ToPDF without %s: err = %v, want UNSUPPORTED", converter, err)
		}
		t.Skipf("%s not installed", converter)
	}

	png, err := ToPNG(ctx, []byte(squareSVG), 2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("ToPNG did not return a PNG: % x", png[:min(8, len(png))])
	}

	pdf, err := ToPDF(ctx, []byte(squareSVG))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("ToPDF did not return a PDF: %q", pdf[:min(8, len(pdf))])
	}
}
