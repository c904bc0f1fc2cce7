package imageedit

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// PNGPrefix is the data URI prefix of a base64 PNG.
const PNGPrefix = "data:image/png;base64,"

// ErrNotDataURI is returned by DecodeDataURI for input that is not a base64
// data URI.
var ErrNotDataURI = errors.New("not a base64 data URI")

var imageURIPrefix = regexp.MustCompile(`^data:image/[a-zA-Z0-9.+-]+;base64,`)

// StripDataURI removes a leading "data:image/<fmt>;base64," from s. Input
// without the prefix is returned unchanged.
func StripDataURI(s string) string {
	return imageURIPrefix.ReplaceAllString(s, "")
}

// WrapPNG prefixes a base64 payload as a PNG data URI.
func WrapPNG(b64 string) string {
	return PNGPrefix + b64
}

// EncodeDataURI builds a base64 data URI for raw bytes.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a base64 data URI into its MIME type and raw bytes.
func DecodeDataURI(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, ErrNotDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode %s payload: %w", mime, err)
	}
	return mime, data, nil
}
