package problem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies which variant of Input is populated.
type Kind int

const (
	KindText Kind = iota
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// ErrEmptyText is returned when a text problem is blank after trimming.
var ErrEmptyText = errors.New("problem text is empty")

// UnsupportedMediaError is returned for files that are neither an image
// nor a PDF.
type UnsupportedMediaError struct {
	MediaType string
}

func (e *UnsupportedMediaError) Error() string {
	if e.MediaType == "" {
		return "unsupported media type: unknown"
	}
	return fmt.Sprintf("unsupported media type: %s", e.MediaType)
}

// Input is a problem submitted by the user: either typed text or an
// attached file. Exactly one of the two is set.
type Input struct {
	kind Kind
	text string
	file File
}

// Text builds a text problem.
func Text(s string) Input {
	return Input{kind: KindText, text: s}
}

// FromFile builds a file problem.
func FromFile(f File) Input {
	return Input{kind: KindFile, file: f}
}

func (in Input) Kind() Kind { return in.kind }

// Text returns the problem text exactly as entered. Validate rejects
// blank text but surrounding whitespace is kept. It is empty for file
// problems.
func (in Input) Text() string {
	if in.kind != KindText {
		return ""
	}
	return in.text
}

// File returns the attached file and whether the input carries one.
func (in Input) File() (File, bool) {
	return in.file, in.kind == KindFile
}

// Validate checks the input can be sent to the model.
func (in Input) Validate() error {
	switch in.kind {
	case KindText:
		if strings.TrimSpace(in.text) == "" {
			return ErrEmptyText
		}
		return nil
	case KindFile:
		if !IsSupported(in.file.MediaType) {
			return &UnsupportedMediaError{MediaType: in.file.MediaType}
		}
		return nil
	default:
		return fmt.Errorf("unknown input kind %d", in.kind)
	}
}

// File is an uploaded image or PDF. The content is read lazily through
// the opener so large uploads are only loaded when the problem is sent.
type File struct {
	Name      string
	MediaType string
	Size      int64

	open func() (io.ReadCloser, error)
}

// NewFile builds a File backed by an arbitrary opener.
func NewFile(name, mediaType string, size int64, open func() (io.ReadCloser, error)) File {
	return File{Name: name, MediaType: mediaType, Size: size, open: open}
}

// FileFromBytes builds a File from in-memory content. An empty media type
// is resolved from the name and content.
func FileFromBytes(name, mediaType string, data []byte) File {
	if mediaType == "" {
		mediaType = ResolveMediaType("", "", name, data)
	}
	return File{
		Name:      name,
		MediaType: mediaType,
		Size:      int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FileFromPath stats the file at path and resolves its media type from
// the extension, sniffing the first bytes when the extension is unknown.
func FileFromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, &IOError{Name: path, Err: err}
	}
	if info.IsDir() {
		return File{}, &IOError{Name: path, Err: fmt.Errorf("is a directory")}
	}

	mediaType := mediaTypeByExt(path)
	if mediaType == "" {
		head, err := readHead(path)
		if err != nil {
			return File{}, &IOError{Name: path, Err: err}
		}
		mediaType = ResolveMediaType("", "", path, head)
	}

	return File{
		Name:      filepath.Base(path),
		MediaType: mediaType,
		Size:      info.Size(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// Open returns a reader over the file content.
func (f File) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, fmt.Errorf("file %q has no content", f.Name)
	}
	return f.open()
}

// SizeLabel formats the file size in KB or MB for previews.
func (f File) SizeLabel() string {
	const mb = 1024 * 1024
	if f.Size >= mb {
		return fmt.Sprintf("%.2f MB", float64(f.Size)/mb)
	}
	return fmt.Sprintf("%.1f KB", float64(f.Size)/1024)
}

func readHead(path string) ([]byte, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	buf := make([]byte, 512)
	n, err := io.ReadFull(fh, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}
