package errors

import (
	"path"
	"slices"
	"strings"
	"unicode"
)

// ManifestExtensions are the manifest encodings the gallery reads, by file
// extension.
var ManifestExtensions = []string{".json", ".toml"}

// maxPathLength bounds image paths stored in a manifest.
const maxPathLength = 500

// ValidateManifestFilename checks that filename names a visible .json or
// .toml file. Errors carry ErrCodeInvalidManifest.
func ValidateManifestFilename(filename string) error {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	switch {
	case filename == "":
		return New(ErrCodeInvalidManifest, "manifest filename cannot be empty")
	case strings.IndexFunc(base, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidManifest, "manifest filename contains control characters")
	case strings.HasPrefix(base, "."):
		return New(ErrCodeInvalidManifest, "manifest filename cannot be a hidden file")
	}

	ext := strings.ToLower(path.Ext(base))
	if !slices.Contains(ManifestExtensions, ext) {
		return New(ErrCodeInvalidManifest, "unsupported manifest extension %q (want %s)",
			ext, strings.Join(ManifestExtensions, " or "))
	}
	return nil
}

// ValidatePath checks an image path stored in a manifest. Paths use forward
// slashes and resolve against the manifest's directory, which they may not
// leave: absolute paths, drive letters and ".." segments are rejected.
// Errors carry ErrCodeInvalidPath.
func ValidatePath(p string) error {
	switch {
	case p == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(p) > maxPathLength:
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	case strings.IndexFunc(p, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "path %q contains control characters", p)
	case strings.Contains(p, "\\"):
		return New(ErrCodeInvalidPath, "path %q must use forward slashes", p)
	case strings.HasPrefix(p, "/"), len(p) >= 2 && p[1] == ':':
		return New(ErrCodeInvalidPath, "path %q must be relative to the manifest", p)
	}

	if slices.Contains(strings.Split(p, "/"), "..") {
		return New(ErrCodeInvalidPath, "path %q leaves the manifest directory", p)
	}
	return nil
}
