package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoaithanh/giaitoan/internal/solver"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name string
		res  solver.Result
		want string
	}{
		{
			name: "success verbatim",
			res:  solver.Result{Solution: "**Đáp án**: $$x = 2$$"},
			want: "**Đáp án**: $$x = 2$$",
		},
		{
			name: "configuration",
			res:  solver.Result{Err: &solver.Error{Kind: solver.KindConfiguration}},
			want: "**Lỗi:** Khóa API chưa được cấu hình. Vui lòng đảm bảo biến môi trường API_KEY đã được thiết lập.",
		},
		{
			name: "safety",
			res:  solver.Result{Err: &solver.Error{Kind: solver.KindSafetyBlocked, Reason: "SAFETY"}},
			want: "**Lỗi:** Yêu cầu đã bị chặn vì lý do an toàn: `SAFETY`. Vui lòng thử với một tệp khác hoặc nội dung khác.",
		},
		{
			name: "empty",
			res:  solver.Result{Err: &solver.Error{Kind: solver.KindEmptyResponse}},
			want: "**Lỗi:** AI không thể tạo ra phản hồi. Vui lòng thử lại.",
		},
		{
			name: "transport",
			res:  solver.Result{Err: &solver.Error{Kind: solver.KindTransport, Message: "Network error", Err: errors.New("Network error")}},
			want: "**Đã xảy ra lỗi:** Network error. Vui lòng thử lại sau.",
		},
		{
			name: "io",
			res:  solver.Result{Err: &solver.Error{Kind: solver.KindIO, Message: "de.pdf"}},
			want: `**Lỗi:** Không thể đọc tệp "de.pdf". Vui lòng thử lại với một tệp khác.`,
		},
		{
			name: "invalid input",
			res:  solver.Result{Err: &solver.Error{Kind: solver.KindInvalidInput, Message: "Vui lòng nhập đề bài!"}},
			want: "**Lỗi:** Vui lòng nhập đề bài!",
		},
		{
			name: "zero result",
			res:  solver.Result{},
			want: "**Lỗi:** AI không thể tạo ra phản hồi. Vui lòng thử lại.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.res))
		})
	}
}

func TestDisplay_NeverEmpty(t *testing.T) {
	kinds := []solver.ErrorKind{
		solver.KindConfiguration, solver.KindInvalidInput, solver.KindIO,
		solver.KindSafetyBlocked, solver.KindEmptyResponse, solver.KindTransport, "unknown",
	}
	for _, k := range kinds {
		assert.NotEmpty(t, Display(solver.Result{Err: &solver.Error{Kind: k}}), "kind %s", k)
	}
}

func TestFinalAnswer(t *testing.T) {
	tests := []struct {
		name   string
		md     string
		want   string
		wantOK bool
	}{
		{"bold label", "### Kết luận\n**Đáp án**: $$x = 2, x = 3$$", "$$x = 2, x = 3$$", true},
		{"plain label", "Đáp án: $y' = 3x^2$", "$y' = 3x^2$", true},
		{"bold colon inside", "**Đáp án:** 42", "42", true},
		{"value on next line", "**Đáp án**:\n\n$$S = 6$$\n", "$$S = 6$$", true},
		{"multiple problems", "Bài 1\nĐáp án: 1\nBài 2\nĐáp án: 2", "1\n2", true},
		{"none", "### Giải chi tiết\n**Bước 1**: ...", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FinalAnswer(tt.md)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTerminal(t *testing.T) {
	md := strings.Join([]string{
		"### Tóm tắt đề bài",
		"Giải phương trình $x^2 - 5x + 6 = 0$.",
		"",
		"**Bước 1**: Tính biệt thức",
		"$$",
		"\\Delta = 25 - 24 = 1",
		"$$",
		"- Hai nghiệm phân biệt",
		"**Đáp án**: $$x = 2, x = 3$$",
	}, "\n")

	out := Terminal(md, 120)

	require.NotEmpty(t, out)
	assert.Contains(t, out, "Tóm tắt đề bài")
	assert.NotContains(t, out, "###")
	assert.Contains(t, out, "Bước 1")
	assert.Contains(t, out, `\Delta = 25 - 24 = 1`)
	assert.Contains(t, out, "•")
	assert.Contains(t, out, "x = 2, x = 3")
}

func TestIsAnswerLine(t *testing.T) {
	assert.True(t, IsAnswerLine("  **Đáp án**: 5"))
	assert.True(t, IsAnswerLine("Đáp án: 5"))
	assert.False(t, IsAnswerLine("Phương pháp giải"))
}

func TestParse(t *testing.T) {
	md := strings.Join([]string{
		"## Giải chi tiết",
		"**Bước 1**: Tính biệt thức",
		"$$",
		"\\Delta = b^2 - 4ac",
		"$$",
		"",
		"1. Nghiệm thứ nhất `x = 2`",
		"2. Nghiệm thứ hai",
		"",
		"---",
		"*Lưu ý*: kiểm tra điều kiện.",
	}, "\n")

	blocks := Parse(md)

	var kinds []BlockKind
	for _, b := range blocks {
		kinds = append(kinds, b.Kind)
	}
	assert.Equal(t, []BlockKind{
		BlockHeading, BlockText, BlockMath, BlockBlank,
		BlockText, BlockText, BlockBlank, BlockRule, BlockText,
	}, kinds)

	assert.Equal(t, "Giải chi tiết", blocks[0].Text)
	assert.Equal(t, "Bước 1: Tính biệt thức", blocks[1].Text)
	require.NotEmpty(t, blocks[1].Spans)
	assert.True(t, blocks[1].Spans[0].Strong)
	assert.Equal(t, "$$\n\\Delta = b^2 - 4ac\n$$", blocks[2].Text)

	assert.Equal(t, "1.", blocks[4].Marker)
	assert.Equal(t, 1, blocks[4].Depth)
	assert.Equal(t, "Nghiệm thứ nhất x = 2", blocks[4].Text)
	assert.True(t, blocks[4].Spans[len(blocks[4].Spans)-1].Code)
	assert.Equal(t, "2.", blocks[5].Marker)

	assert.Equal(t, "Lưu ý: kiểm tra điều kiện.", blocks[8].Text)
	assert.True(t, blocks[8].Spans[0].Emph)
}

func TestParse_AnswerInsideList(t *testing.T) {
	blocks := Parse("- Hai nghiệm phân biệt\n**Đáp án**: $$x = 2, x = 3$$")

	require.Len(t, blocks, 2)
	assert.Equal(t, BlockText, blocks[0].Kind)
	assert.Equal(t, "•", blocks[0].Marker)
	assert.Equal(t, BlockAnswer, blocks[1].Kind)
	assert.Equal(t, "Đáp án: $$x = 2, x = 3$$", blocks[1].Text)
}

func TestFinalAnswer_IgnoresLabelInCodeFence(t *testing.T) {
	md := "```\nĐáp án: sai\n```\n\n**Đáp án**: 7"
	got, ok := FinalAnswer(md)
	assert.True(t, ok)
	assert.Equal(t, "7", got)
}
