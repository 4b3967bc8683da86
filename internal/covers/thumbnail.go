package covers

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/nfnt/resize"
)

// Thumbnail scales image data down so its longest side is at most maxDim
// pixels, re-encoding as JPEG. Images already small enough are returned
// unchanged with their original MIME type.
func Thumbnail(data []byte, maxDim uint) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	if uint(bounds.Dx()) <= maxDim && uint(bounds.Dy()) <= maxDim {
		return data, http.DetectContentType(data), nil
	}

	var scaled image.Image
	if bounds.Dx() >= bounds.Dy() {
		scaled = resize.Resize(maxDim, 0, img, resize.Lanczos3)
	} else {
		scaled = resize.Resize(0, maxDim, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", fmt.Errorf("encoding thumbnail: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}
