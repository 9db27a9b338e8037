package problem

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// Encoded is a file ready to be sent inline to the model.
type Encoded struct {
	// Data is the standard base64 encoding of the file bytes, with no
	// data-URL prefix.
	Data      string
	MediaType string
}

// IOError reports that an attached file could not be read.
type IOError struct {
	Name string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read file %q: %v", e.Name, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Encode reads the whole file and returns its base64 payload together with
// the file's media type.
func Encode(f File) (Encoded, error) {
	rc, err := f.Open()
	if err != nil {
		return Encoded{}, &IOError{Name: f.Name, Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return Encoded{}, &IOError{Name: f.Name, Err: err}
	}

	return Encoded{
		Data:      base64.StdEncoding.EncodeToString(data),
		MediaType: f.MediaType,
	}, nil
}

// StripDataURL removes a "data:<mime>;base64," prefix, returning only the
// payload after the first comma. Strings without the prefix are returned
// unchanged.
func StripDataURL(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[i+1:]
	}
	return s
}

// DecodeDataURL decodes raw base64 or a base64 data URL. The media type
// named in the data URL, if any, is returned as a hint.
func DecodeDataURL(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	var hint string
	if strings.HasPrefix(s, "data:") {
		if i := strings.IndexByte(s, ','); i >= 0 {
			meta := s[len("data:"):i]
			if j := strings.IndexByte(meta, ';'); j >= 0 {
				meta = meta[:j]
			}
			hint = meta
		}
		s = StripDataURL(s)
	}
	if s == "" {
		return nil, hint, fmt.Errorf("empty base64 payload")
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, hint, nil
	}
	if data, err2 := base64.URLEncoding.DecodeString(s); err2 == nil {
		return data, hint, nil
	}
	if data, err2 := base64.RawStdEncoding.DecodeString(s); err2 == nil {
		return data, hint, nil
	}
	return nil, hint, fmt.Errorf("decode base64: %w", err)
}
