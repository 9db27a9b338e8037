package problem

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the input tab selected by the user.
type Mode string

const (
	ModeImage Mode = "image"
	ModePDF   Mode = "pdf"
	ModeText  Mode = "text"
)

// Modes lists the tabs in display order.
var Modes = []Mode{ModeImage, ModePDF, ModeText}

// ParseMode maps a form value to a Mode. Unknown values default to text.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeImage:
		return ModeImage
	case ModePDF:
		return ModePDF
	default:
		return ModeText
	}
}

// Label is the tab caption.
func (m Mode) Label() string {
	switch m {
	case ModeImage:
		return "Ảnh chụp"
	case ModePDF:
		return "File PDF"
	default:
		return "Nhập văn bản"
	}
}

// Accepts reports whether a file of mediaType may be submitted in this mode.
func (m Mode) Accepts(mediaType string) bool {
	mt := baseMediaType(mediaType)
	switch m {
	case ModeImage:
		return strings.HasPrefix(mt, "image/")
	case ModePDF:
		return mt == MediaTypePDF
	default:
		return false
	}
}

// Next returns the following tab, wrapping around.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Modes[0]
}

// User-facing validation errors raised before a problem is submitted.
var (
	ErrNoText = errors.New("Vui lòng nhập đề bài!")
	ErrNoFile = errors.New("Vui lòng tải lên một file!")
)

// WrongModeError is returned when the attached file does not match the
// selected tab.
type WrongModeError struct {
	Mode      Mode
	MediaType string
}

func (e *WrongModeError) Error() string {
	if e.Mode == ModePDF {
		return fmt.Sprintf("Vui lòng chọn một file PDF (nhận được %s).", e.MediaType)
	}
	return fmt.Sprintf("Vui lòng chọn một file ảnh (nhận được %s).", e.MediaType)
}

// Draft is the front-end's pending submission. It is the single source of
// truth for which input is active: switching modes clears everything.
type Draft struct {
	mode Mode
	text string
	file *File
}

// NewDraft starts an empty draft in the given mode.
func NewDraft(mode Mode) *Draft {
	return &Draft{mode: mode}
}

func (d *Draft) Mode() Mode { return d.mode }

func (d *Draft) Text() string { return d.text }

// File returns the attached file, or nil.
func (d *Draft) File() *File { return d.file }

// SwitchMode changes the tab and discards any text or file.
func (d *Draft) SwitchMode(m Mode) {
	d.mode = m
	d.text = ""
	d.file = nil
}

// SetText replaces the problem text.
func (d *Draft) SetText(s string) {
	d.text = s
}

// SetFile attaches a file, replacing any previous one.
func (d *Draft) SetFile(f File) {
	d.file = &f
}

// Clear empties the draft and keeps the current mode.
func (d *Draft) Clear() {
	d.text = ""
	d.file = nil
}

// Empty reports whether nothing has been entered yet.
func (d *Draft) Empty() bool {
	return strings.TrimSpace(d.text) == "" && d.file == nil
}

// Submit validates the draft and returns the Input to solve.
func (d *Draft) Submit() (Input, error) {
	if d.mode == ModeText {
		if strings.TrimSpace(d.text) == "" {
			return Input{}, ErrNoText
		}
		return Text(d.text), nil
	}

	if d.file == nil {
		return Input{}, ErrNoFile
	}
	if !d.mode.Accepts(d.file.MediaType) {
		return Input{}, &WrongModeError{Mode: d.mode, MediaType: d.file.MediaType}
	}

	in := FromFile(*d.file)
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}
