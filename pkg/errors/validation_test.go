package errors

import "testing"

func TestValidateManifestFilename(t *testing.T) {
	valid := []string{
		"gallery.json",
		"gallery.toml",
		"GALLERY.JSON",
		"photos/2024/gallery.json",
		`photos\gallery.toml`,
	}
	invalid := []string{
		"",
		".gallery.json",
		"photos/.hidden.toml",
		"gallery.yaml",
		"gallery",
		"gal\x01lery.json",
	}

	for _, name := range valid {
		if err := ValidateManifestFilename(name); err != nil {
			t.Errorf("ValidateManifestFilename(%q) = %v, want nil", name, err)
		}
	}
	for _, name := range invalid {
		err := ValidateManifestFilename(name)
		if !Is(err, ErrCodeInvalidManifest) {
			t.Errorf("ValidateManifestFilename(%q) = %v, want %s", name, err, ErrCodeInvalidManifest)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"beach.jpg", false},
		{"2024/summer/beach.jpg", false},
		{"img.v2.final.png", false},
		{"wait..what.jpg", false},
		{"./beach.jpg", false},

		{"", true},
		{string(make([]byte, 600)), true},
		{"/etc/passwd", true},
		{"C:/photos/a.jpg", true},
		{"../../../etc/passwd", true},
		{"foo/../bar.jpg", true},
		{"foo/..", true},
		{"foo\x00bar", true},
		{`foo\bar.jpg`, true},
		{"foo\nbar", true},
	}

	for _, tt := range tests {
		err := ValidatePath(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePath(%q) = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidPath) {
			t.Errorf("ValidatePath(%q) code = %s, want %s", tt.input, GetCode(err), ErrCodeInvalidPath)
		}
	}
}
