package imageedit

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"

	_ "golang.org/x/image/webp"
)

// MaxUploadBytes is the default limit on image file size.
const MaxUploadBytes = 10 << 20

var (
	ErrImageTooLarge = errors.New("image is too large")
	ErrNotImage      = errors.New("file is not an image")
)

// LoadImageFile reads an image file and returns it as a data URI. Files
// larger than maxBytes (0 = MaxUploadBytes) are rejected. With normalizePNG
// set, JPEG, GIF and WebP input is decoded and re-encoded as PNG, matching
// the image/png type the edit request declares.
func LoadImageFile(path string, maxBytes int64, normalizePNG bool) (string, error) {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// One byte past the limit marks an oversized file.
	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%s: %w (limit %d bytes)", path, ErrImageTooLarge, maxBytes)
	}

	return LoadImageBytes(data, normalizePNG)
}

// LoadImageBytes sniffs the MIME type of data and returns it as a data URI.
func LoadImageBytes(data []byte, normalizePNG bool) (string, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}

	if normalizePNG && mime != "image/png" {
		converted, err := NormalizePNG(data)
		if err != nil {
			return "", err
		}
		return EncodeDataURI("image/png", converted), nil
	}

	return EncodeDataURI(mime, data), nil
}

// NormalizePNG decodes any registered image format and re-encodes it as PNG.
func NormalizePNG(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if format == "png" {
		return data, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode %s as png: %w", format, err)
	}
	return buf.Bytes(), nil
}
