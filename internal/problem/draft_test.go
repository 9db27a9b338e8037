package problem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_TextMode(t *testing.T) {
	d := NewDraft(ModeText)

	_, err := d.Submit()
	assert.ErrorIs(t, err, ErrNoText)

	d.SetText("   ")
	_, err = d.Submit()
	assert.ErrorIs(t, err, ErrNoText)

	d.SetText("Giải phương trình x^2 - 5x + 6 = 0")
	in, err := d.Submit()
	require.NoError(t, err)
	assert.Equal(t, KindText, in.Kind())
	assert.Equal(t, "Giải phương trình x^2 - 5x + 6 = 0", in.Text())
}

func TestDraft_FileModes(t *testing.T) {
	d := NewDraft(ModeImage)

	_, err := d.Submit()
	assert.ErrorIs(t, err, ErrNoFile)

	d.SetFile(FileFromBytes("de.pdf", "application/pdf", []byte("%PDF")))
	_, err = d.Submit()
	var wm *WrongModeError
	require.True(t, errors.As(err, &wm))
	assert.Equal(t, ModeImage, wm.Mode)

	d.SetFile(FileFromBytes("de.jpg", "image/jpeg", []byte{0xFF, 0xD8}))
	in, err := d.Submit()
	require.NoError(t, err)
	f, ok := in.File()
	require.True(t, ok)
	assert.Equal(t, "de.jpg", f.Name)

	d.SwitchMode(ModePDF)
	d.SetFile(FileFromBytes("de.pdf", "application/pdf", []byte("%PDF")))
	_, err = d.Submit()
	require.NoError(t, err)
}

func TestDraft_SwitchModeClears(t *testing.T) {
	d := NewDraft(ModeText)
	d.SetText("1+1")
	d.SwitchMode(ModeImage)

	assert.Equal(t, ModeImage, d.Mode())
	assert.True(t, d.Empty())

	d.SetFile(FileFromBytes("a.png", "image/png", []byte{1}))
	assert.False(t, d.Empty())
	d.Clear()
	assert.True(t, d.Empty())
	assert.Equal(t, ModeImage, d.Mode())
}

func TestMode(t *testing.T) {
	assert.Equal(t, ModePDF, ParseMode(" PDF "))
	assert.Equal(t, ModeImage, ParseMode("image"))
	assert.Equal(t, ModeText, ParseMode("whatever"))

	assert.Equal(t, ModePDF, ModeImage.Next())
	assert.Equal(t, ModeText, ModePDF.Next())
	assert.Equal(t, ModeImage, ModeText.Next())

	assert.True(t, ModeImage.Accepts("image/heic"))
	assert.False(t, ModeImage.Accepts("application/pdf"))
	assert.True(t, ModePDF.Accepts("application/pdf"))
	assert.False(t, ModeText.Accepts("image/png"))
}

func TestSampleByKey(t *testing.T) {
	s, ok := SampleByKey("quadratic")
	require.True(t, ok)
	assert.Equal(t, "Giải phương trình x^2 - 5x + 6 = 0", s.Text)

	_, ok = SampleByKey("calculus")
	assert.False(t, ok)
	assert.Len(t, Samples, 4)
}
