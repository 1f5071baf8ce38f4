// Package background decodes still images used as replacement backgrounds.
package background

import (
	"bytes"
	"image"
	// register decoders for image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/spf13/afero"
	"github.com/tauraamui/xerror"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var fs afero.Fs = afero.NewOsFs()

// Load reads and decodes the image at path. An empty path means no
// background and yields a nil image without error.
func Load(path string) (image.Image, error) {
	if len(path) == 0 {
		return nil, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, xerror.Errorf("unable to read background image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, xerror.Errorf("unable to decode background image %s: %w", path, err)
	}

	if img.Bounds().Empty() {
		return nil, xerror.Errorf("background image %s (%s) is empty", path, format)
	}
	return img, nil
}
