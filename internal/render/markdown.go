package render

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/hoaithanh/giaitoan/internal/ui/theme"
)

const answerLabel = "Đáp án"

// IsAnswerLine reports whether a line starts a final-answer paragraph.
func IsAnswerLine(line string) bool {
	for _, b := range Parse(strings.TrimSpace(line)) {
		if b.Kind != BlockBlank {
			return b.Kind == BlockAnswer
		}
	}
	return false
}

// FinalAnswers returns every final answer in the solution, in order. An
// answer label on its own line takes the next non-empty block as its value.
func FinalAnswers(md string) []string {
	blocks := Parse(md)
	var out []string
	for i := 0; i < len(blocks); i++ {
		if blocks[i].Kind != BlockAnswer {
			continue
		}
		value, _ := answerValue(blocks[i].Text)
		for value == "" && i+1 < len(blocks) {
			i++
			if blocks[i].Kind == BlockAnswer {
				value, _ = answerValue(blocks[i].Text)
				continue
			}
			value = strings.TrimSpace(blocks[i].Text)
		}
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}

// FinalAnswer returns the final answers joined by newlines, or false when
// the solution has none.
func FinalAnswer(md string) (string, bool) {
	answers := FinalAnswers(md)
	if len(answers) == 0 {
		return "", false
	}
	return strings.Join(answers, "\n"), true
}

// answerValue returns what follows the "Đáp án:" label of a plain line.
func answerValue(line string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), answerLabel)
	if !ok {
		return "", false
	}
	rest, ok = strings.CutPrefix(strings.TrimLeft(rest, " \t"), ":")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// Terminal renders solution Markdown for a terminal of the given width.
// Headings and bold labels are colored, display math is indented and the
// final answer is boxed. LaTeX is left as source.
func Terminal(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	wrap := lipgloss.NewStyle().Width(width)

	var out []string
	for _, b := range Parse(md) {
		switch b.Kind {
		case BlockBlank:
			out = append(out, "")
		case BlockHeading:
			out = append(out, theme.Heading.Render(b.Text))
		case BlockAnswer:
			out = append(out, theme.Answer.Render(b.Text))
		case BlockMath:
			out = append(out, theme.Math.Render(b.Text))
		case BlockRule:
			out = append(out, theme.Hint.Render(strings.Repeat("─", min(width, 40))))
		default:
			out = append(out, wrap.Render(b.prefix()+terminalSpans(b.Spans)))
		}
	}
	return strings.Join(out, "\n")
}

func terminalSpans(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		switch {
		case s.Code:
			sb.WriteString(theme.Math.UnsetPaddingLeft().Render(s.Text))
		case s.Strong:
			sb.WriteString(theme.Strong.Render(s.Text))
		case s.Emph:
			sb.WriteString(theme.Body.Italic(true).Render(s.Text))
		default:
			sb.WriteString(theme.Body.Render(s.Text))
		}
	}
	return sb.String()
}

// BlockKind classifies one rendered line group of a solution.
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockBlank
	BlockHeading
	BlockAnswer
	BlockMath
	BlockRule
)

// Span is a run of inline text with a single style.
type Span struct {
	Text   string
	Strong bool
	Emph   bool
	Code   bool
}

// Block is one line of body text, a heading, a final answer, a display
// math group or a rule. Text is the plain text with Markdown markers
// removed, except for math which keeps its LaTeX source.
type Block struct {
	Kind  BlockKind
	Text  string
	Spans []Span

	// Marker is the list bullet of the first line of a list item.
	Marker string
	// Depth is the list nesting level.
	Depth int
}

func (b Block) prefix() string {
	if b.Depth == 0 {
		return ""
	}
	indent := strings.Repeat("  ", b.Depth)
	if b.Marker == "" {
		return indent + "  "
	}
	return indent + b.Marker + " "
}

var markdown = goldmark.New()

// Parse splits solution Markdown into display blocks. Display math
// delimited by $$ may span several lines of a paragraph and is kept as a
// single block.
func Parse(md string) []Block {
	src := []byte(strings.ReplaceAll(md, "\r\n", "\n"))
	doc := markdown.Parser().Parse(gmtext.NewReader(src))
	p := &blockParser{src: src}
	p.container(doc, 0)
	return p.out
}

type blockParser struct {
	src    []byte
	out    []Block
	marker string
}

func (p *blockParser) container(n ast.Node, depth int) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if len(p.out) > 0 && c.HasBlankPreviousLines() {
			p.out = append(p.out, Block{Kind: BlockBlank})
		}
		switch c := c.(type) {
		case *ast.Heading:
			var parts []string
			for _, l := range p.inlineLines(c) {
				parts = append(parts, plain(l))
			}
			p.out = append(p.out, Block{Kind: BlockHeading, Text: strings.TrimSpace(strings.Join(parts, " "))})
		case *ast.Paragraph, *ast.TextBlock:
			p.paragraph(c, depth)
		case *ast.List:
			num := c.Start
			for item := c.FirstChild(); item != nil; item = item.NextSibling() {
				p.marker = "•"
				if c.IsOrdered() {
					p.marker = strconv.Itoa(num) + "."
					num++
				}
				p.container(item, depth+1)
				p.marker = ""
			}
		case *ast.ThematicBreak:
			p.out = append(p.out, Block{Kind: BlockRule})
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			p.out = append(p.out, Block{Kind: BlockMath, Text: strings.Join(p.rawLines(c), "\n")})
		case *ast.HTMLBlock:
			for _, l := range p.rawLines(c) {
				p.text([]Span{{Text: l}}, depth)
			}
		default:
			p.container(c, depth)
		}
	}
}

// paragraph emits one block per source line, grouping $$ display math.
func (p *blockParser) paragraph(n ast.Node, depth int) {
	lines := p.inlineLines(n)
	raw := p.rawLines(n)
	source := func(i int) string {
		if len(raw) == len(lines) {
			return strings.TrimSpace(raw[i])
		}
		return strings.TrimSpace(plain(lines[i]))
	}

	var math []string
	for i, l := range lines {
		line := strings.TrimSpace(plain(l))
		if math != nil {
			math = append(math, source(i))
			if strings.HasSuffix(line, "$$") {
				p.out = append(p.out, Block{Kind: BlockMath, Text: strings.Join(math, "\n")})
				math = nil
			}
			continue
		}
		switch {
		case strings.HasPrefix(line, "$$") && (line == "$$" || !strings.HasSuffix(line[2:], "$$")):
			math = []string{source(i)}
		case strings.HasPrefix(line, "$$"):
			p.out = append(p.out, Block{Kind: BlockMath, Text: source(i)})
		case isAnswer(line):
			p.out = append(p.out, Block{Kind: BlockAnswer, Text: line})
		default:
			p.text(l, depth)
		}
	}
	if math != nil {
		p.out = append(p.out, Block{Kind: BlockMath, Text: strings.Join(math, "\n")})
	}
	p.marker = ""
}

func (p *blockParser) text(spans []Span, depth int) {
	p.out = append(p.out, Block{
		Kind:   BlockText,
		Text:   strings.TrimSpace(plain(spans)),
		Spans:  spans,
		Marker: p.marker,
		Depth:  depth,
	})
	p.marker = ""
}

func (p *blockParser) rawLines(n ast.Node) []string {
	segs := n.Lines()
	out := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		s := segs.At(i)
		out = append(out, strings.TrimRight(string(s.Value(p.src)), "\n"))
	}
	return out
}

// inlineLines splits the inline children of n at soft and hard line breaks.
func (p *blockParser) inlineLines(n ast.Node) [][]Span {
	w := &inlineWalker{src: p.src}
	w.walk(n, Span{})
	w.lines = append(w.lines, w.cur)
	return w.lines
}

type inlineWalker struct {
	src   []byte
	lines [][]Span
	cur   []Span
}

func (w *inlineWalker) add(text string, style Span) {
	if text == "" {
		return
	}
	style.Text = text
	w.cur = append(w.cur, style)
}

func (w *inlineWalker) walk(n ast.Node, style Span) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			w.add(string(c.Segment.Value(w.src)), style)
			if c.SoftLineBreak() || c.HardLineBreak() {
				w.lines = append(w.lines, w.cur)
				w.cur = nil
			}
		case *ast.String:
			w.add(string(c.Value), style)
		case *ast.Emphasis:
			s := style
			if c.Level >= 2 {
				s.Strong = true
			} else {
				s.Emph = true
			}
			w.walk(c, s)
		case *ast.CodeSpan:
			s := style
			s.Code = true
			w.walk(c, s)
		case *ast.AutoLink:
			w.add(string(c.Label(w.src)), style)
		case *ast.RawHTML:
			for i := 0; i < c.Segments.Len(); i++ {
				seg := c.Segments.At(i)
				w.add(string(seg.Value(w.src)), style)
			}
		default:
			w.walk(c, style)
		}
	}
}

func plain(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func isAnswer(line string) bool {
	_, ok := answerValue(line)
	return ok
}
