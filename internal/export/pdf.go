// Package export writes solutions to PDF.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hoaithanh/giaitoan/internal/render"
)

// Options controls the PDF layout.
type Options struct {
	// FontPath is a UTF-8 TrueType font to embed. When empty a core font is
	// used and Vietnamese diacritics are folded to ASCII.
	FontPath string

	// Title is printed at the top of the first page.
	Title string

	// Problem is the typed problem or the uploaded file name, printed
	// under the title when set.
	Problem string

	PageSize  string
	MarginsMM float64
}

// DefaultOptions returns A4 with 15mm margins.
func DefaultOptions() Options {
	return Options{
		Title:     "Lời giải",
		PageSize:  "A4",
		MarginsMM: 15,
	}
}

const (
	fontFamily = "body"
	monoFamily = "Courier"
	lineHeight = 6.0
)

// PDF writes solution as a PDF document to w. LaTeX is kept as source and
// final-answer paragraphs are highlighted.
func PDF(w io.Writer, solution string, opts Options) error {
	def := DefaultOptions()
	if opts.PageSize == "" {
		opts.PageSize = def.PageSize
	}
	if opts.MarginsMM <= 0 {
		opts.MarginsMM = def.MarginsMM
	}
	if opts.Title == "" {
		opts.Title = def.Title
	}

	pdf := fpdf.New("P", "mm", opts.PageSize, "")
	pdf.SetMargins(opts.MarginsMM, opts.MarginsMM, opts.MarginsMM)
	pdf.SetAutoPageBreak(true, opts.MarginsMM)

	family := "Helvetica"
	text := fold
	if opts.FontPath != "" {
		pdf.AddUTF8Font(fontFamily, "", opts.FontPath)
		pdf.AddUTF8Font(fontFamily, "B", opts.FontPath)
		if pdf.Err() {
			return fmt.Errorf("load font %s: %w", opts.FontPath, pdf.Error())
		}
		family = fontFamily
		text = func(s string) string { return s }
	}

	pdf.SetTitle(text(opts.Title), opts.FontPath != "")
	pdf.SetCreator("giaitoan", false)
	pdf.SetCreationDate(time.Now())
	pdf.AddPage()

	title := cases.Upper(language.Vietnamese).String(opts.Title)
	pdf.SetFont(family, "B", 18)
	pdf.SetTextColor(79, 70, 229)
	pdf.CellFormat(0, 12, text(title), "", 1, "C", false, 0, "")
	if opts.Problem != "" {
		pdf.SetFont(family, "", 10)
		pdf.SetTextColor(100, 116, 139)
		pdf.MultiCell(0, 5, text(opts.Problem), "", "C", false)
	}
	pdf.Ln(6)

	writeBody(pdf, family, text, solution)

	if pdf.Err() {
		return fmt.Errorf("render pdf: %w", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func writeBody(pdf *fpdf.Fpdf, family string, text func(string) string, solution string) {
	for _, b := range render.Parse(solution) {
		switch b.Kind {
		case render.BlockBlank:
			pdf.Ln(2)
		case render.BlockHeading:
			pdf.Ln(2)
			pdf.SetFont(family, "B", 13)
			pdf.SetTextColor(79, 70, 229)
			pdf.MultiCell(0, 7, text(b.Text), "", "L", false)
		case render.BlockAnswer:
			pdf.Ln(1)
			pdf.SetFont(family, "B", 12)
			pdf.SetTextColor(21, 128, 61)
			pdf.SetFillColor(220, 252, 231)
			pdf.SetDrawColor(21, 128, 61)
			pdf.MultiCell(0, 8, text(b.Text), "1", "L", true)
			pdf.Ln(1)
		case render.BlockMath:
			pdf.SetFont(monoFamily, "", 10)
			pdf.SetTextColor(146, 64, 14)
			pdf.SetX(pdf.GetX() + 8)
			pdf.MultiCell(0, lineHeight, fold(b.Text), "", "L", false)
		case render.BlockRule:
			pdf.SetDrawColor(203, 213, 225)
			x, y := pdf.GetXY()
			w, _ := pdf.GetPageSize()
			left, _, right, _ := pdf.GetMargins()
			pdf.Line(x, y+2, w-right, y+2)
			pdf.SetX(left)
			pdf.Ln(4)
		case render.BlockText:
			line := b.Text
			switch {
			case b.Depth > 0 && b.Marker != "":
				line = strings.Repeat("  ", b.Depth-1) + strings.Replace(b.Marker, "•", "-", 1) + " " + line
			case b.Depth > 0:
				line = strings.Repeat("  ", b.Depth) + line
			}
			pdf.SetTextColor(15, 23, 42)
			pdf.SetFont(family, "", 11)
			if b.Depth > 0 {
				pdf.SetX(pdf.GetX() + 4)
			} else if len(b.Spans) > 0 && b.Spans[0].Strong {
				pdf.SetFont(family, "B", 11)
				pdf.SetTextColor(13, 148, 136)
			}
			pdf.MultiCell(0, lineHeight, text(line), "", "L", false)
		}
	}
}

var diacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold reduces text to ASCII for the core fonts: marks are removed, đ
// becomes d and any other non-ASCII rune becomes '?'.
func fold(s string) string {
	out, _, err := transform.String(diacritics, s)
	if err != nil {
		out = s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == 'đ':
			return 'd'
		case r == 'Đ':
			return 'D'
		case r == '\t':
			return ' '
		case r > unicode.MaxASCII:
			return '?'
		}
		return r
	}, out)
}

// Bytes renders the PDF in memory.
func Bytes(solution string, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := PDF(&buf, solution, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders the PDF to path.
func WriteFile(path, solution string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := PDF(f, solution, opts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// FileName returns a timestamped output name such as
// "loi-giai-20250102-150405.pdf".
func FileName(t time.Time) string {
	return "loi-giai-" + t.Format("20060102-150405") + ".pdf"
}
