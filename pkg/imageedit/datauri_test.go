package imageedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripDataURI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"data:image/png;base64,QUJD", "QUJD"},
		{"data:image/jpeg;base64,QUJD", "QUJD"},
		{"data:image/webp;base64,QUJD", "QUJD"},
		{"data:image/svg+xml;base64,QUJD", "QUJD"},
		{"QUJD", "QUJD"},
		{"data:text/plain;base64,QUJD", "data:text/plain;base64,QUJD"},
		{"xdata:image/png;base64,QUJD", "xdata:image/png;base64,QUJD"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripDataURI(tt.in), tt.in)
	}
}

func TestWrapPNGRoundTrip(t *testing.T) {
	for _, payload := range []string{"QUJD", "", "iVBORw0KGgo="} {
		assert.Equal(t, payload, StripDataURI(WrapPNG(payload)))
	}
	assert.Equal(t, "data:image/png;base64,QUJD", WrapPNG("QUJD"))
}

func TestEncodeDecodeDataURI(t *testing.T) {
	uri := EncodeDataURI("image/gif", []byte("GIF89a"))
	assert.Equal(t, "data:image/gif;base64,R0lGODlh", uri)

	mime, data, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/gif", mime)
	assert.Equal(t, []byte("GIF89a"), data)
}

func TestDecodeDataURIErrors(t *testing.T) {
	for _, in := range []string{"QUJD", "data:image/png,QUJD", "data:image/png;base64"} {
		_, _, err := DecodeDataURI(in)
		assert.ErrorIs(t, err, ErrNotDataURI, in)
	}

	_, _, err := DecodeDataURI("data:image/png;base64,!!!")
	assert.Error(t, err)
}
