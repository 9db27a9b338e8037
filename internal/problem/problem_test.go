package problem

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantErr bool
	}{
		{"text", Text("Giải phương trình x^2 - 5x + 6 = 0"), false},
		{"blank text", Text("   \n\t"), true},
		{"empty text", Text(""), true},
		{"jpeg", FromFile(FileFromBytes("a.jpg", "image/jpeg", []byte{1})), false},
		{"pdf", FromFile(FileFromBytes("a.pdf", "application/pdf", []byte{1})), false},
		{"png with params", FromFile(FileFromBytes("a.png", "image/png; q=1", []byte{1})), false},
		{"zip", FromFile(FileFromBytes("a.zip", "application/zip", []byte{1})), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInput_TextIsVerbatim(t *testing.T) {
	in := Text("  2 + 2\n")
	assert.Equal(t, KindText, in.Kind())
	assert.Equal(t, "  2 + 2\n", in.Text())
	assert.NoError(t, in.Validate())

	_, ok := in.File()
	assert.False(t, ok)
}

func TestInput_UnsupportedMediaError(t *testing.T) {
	err := FromFile(FileFromBytes("a.txt", "text/plain", []byte("hi"))).Validate()
	var ume *UnsupportedMediaError
	require.True(t, errors.As(err, &ume))
	assert.Equal(t, "text/plain", ume.MediaType)
}

func TestEncode_RoundTrip(t *testing.T) {
	data := make([]byte, 2*1024*1024)
	r := rand.New(rand.NewPCG(1, 2))
	for i := range data {
		data[i] = byte(r.IntN(256))
	}
	// JPEG magic so sniffing agrees with the declared type.
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0})

	f := FileFromBytes("photo.jpg", "image/jpeg", data)
	enc, err := Encode(f)
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", enc.MediaType)
	decoded, err := base64.StdEncoding.DecodeString(enc.Data)
	require.NoError(t, err)
	assert.Len(t, decoded, len(data))
	assert.True(t, bytes.Equal(data, decoded))
}

func TestEncode_PayloadIsBareBase64(t *testing.T) {
	data := []byte("data:image/png;base64,iVBORw0KGgo=")
	enc, err := Encode(FileFromBytes("de.png", "image/png", data))
	require.NoError(t, err)

	assert.Equal(t, base64.StdEncoding.EncodeToString(data), enc.Data)
	decoded, hint, err := DecodeDataURL(enc.Data)
	require.NoError(t, err)
	assert.Empty(t, hint)
	assert.Equal(t, data, decoded)
}

func TestEncode_ReadFailure(t *testing.T) {
	f := NewFile("broken.png", "image/png", 10, func() (io.ReadCloser, error) {
		return io.NopCloser(&failingReader{}), nil
	})

	_, err := Encode(f)
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "broken.png", ioErr.Name)
}

func TestEncode_OpenFailure(t *testing.T) {
	f := NewFile("gone.pdf", "application/pdf", 10, func() (io.ReadCloser, error) {
		return nil, os.ErrNotExist
	})

	_, err := Encode(f)
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestStripDataURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"data:image/png;base64,AAAA", "AAAA"},
		{"data:application/pdf;base64,JVBERi0=", "JVBERi0="},
		{"AAAA", "AAAA"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripDataURL(tt.in), tt.in)
	}
}

func TestDecodeDataURL(t *testing.T) {
	payload := []byte("hello math")
	std := base64.StdEncoding.EncodeToString(payload)

	data, hint, err := DecodeDataURL("data:image/png;base64," + std)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image/png", hint)

	data, hint, err = DecodeDataURL(std)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Empty(t, hint)

	data, _, err = DecodeDataURL(base64.URLEncoding.EncodeToString([]byte{0xfb, 0xff}))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xfb, 0xff}, data)

	_, _, err = DecodeDataURL("data:image/png;base64,")
	assert.Error(t, err)

	_, _, err = DecodeDataURL("!!!")
	assert.Error(t, err)
}

func TestResolveMediaType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	pdf := []byte("%PDF-1.7\n")

	assert.Equal(t, "image/jpeg", ResolveMediaType("image/jpeg", "", "x.png", png))
	assert.Equal(t, "image/png", ResolveMediaType("application/octet-stream", "", "x.png", nil))
	assert.Equal(t, "image/webp", ResolveMediaType("", "image/webp", "x", nil))
	assert.Equal(t, "application/pdf", ResolveMediaType("", "", "De Thi.PDF", nil))
	assert.Equal(t, "image/png", ResolveMediaType("", "", "upload", png))
	assert.Equal(t, "application/pdf", ResolveMediaType("", "", "upload", pdf))
	assert.Equal(t, "application/octet-stream", ResolveMediaType("", "", "", nil))
}

func TestFileFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bai-tap.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644))

	f, err := FileFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "bai-tap.pdf", f.Name)
	assert.Equal(t, "application/pdf", f.MediaType)
	assert.EqualValues(t, 13, f.Size)

	enc, err := Encode(f)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 test")), enc.Data)
}

func TestFileFromPath_SniffsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.bin")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\nrest"), 0o644))

	f, err := FileFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.MediaType)
}

func TestFileFromPath_Missing(t *testing.T) {
	_, err := FileFromPath(filepath.Join(t.TempDir(), "nope.png"))
	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestFile_SizeLabel(t *testing.T) {
	assert.Equal(t, "2.00 MB", File{Size: 2 * 1024 * 1024}.SizeLabel())
	assert.Equal(t, "1.5 KB", File{Size: 1536}.SizeLabel())
}
