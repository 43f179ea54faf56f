// Package manifest reads and writes gallery manifests: ordered lists of
// images with their intrinsic sizes.
//
// # Formats
//
// Manifests are stored as JSON or TOML, chosen by file extension:
//
//	{
//	  "title": "Holiday 2025",
//	  "images": [
//	    {"path": "beach.jpg", "width": 4032, "height": 3024},
//	    {"path": "dunes.jpg", "width": 3024, "height": 4032, "caption": "Dunes"}
//	  ]
//	}
//
// The same document in TOML:
//
//	title = "Holiday 2025"
//
//	[[images]]
//	path = "beach.jpg"
//	width = 4032
//	height = 3024
//
// Entry order is the display order. Paths are relative to the manifest's
// directory (see [errors.ValidatePath]). Entries without an ID receive a
// deterministic one derived from their path, so repeated loads of the same
// manifest agree.
//
// # Scanning
//
// [Scan] builds a manifest from a directory by reading only the image
// headers (JPEG, PNG, GIF, WebP, BMP and TIFF). Files are decoded
// concurrently; the resulting order is the lexical path order.
//
// [errors.ValidatePath]: github.com/matzehuels/gallery/pkg/errors.ValidatePath
package manifest
