package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestCompactFooterKeepsKeys(t *testing.T) {
	hints := []KeyHint{
		{Key: "Tab", Description: "Đổi chế độ"},
		{Key: "Enter", Description: "Giải"},
		{Key: "Ctrl+E", Description: "Đề mẫu"},
		{Key: "Ctrl+T", Description: "Giao diện"},
		{Key: "F1", Description: "Trợ giúp"},
		{Key: "Ctrl+C", Description: "Thoát"},
	}
	out := RenderFooter(hints, MinWidth)
	for _, h := range hints {
		if !strings.Contains(out, h.Key) {
			t.Errorf("compact footer dropped key %q:\n%s", h.Key, out)
		}
	}
	if strings.Contains(out, "Thoát") {
		t.Errorf("expected trailing descriptions dropped at width %d:\n%s", MinWidth, out)
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Giải bài", "gemini-2.5-flash", 100)
	for _, want := range []string{"Giải Toán THPT", "Giải bài", "gemini-2.5-flash"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Enter", Description: "Giải"}, {Key: "Tab", Description: "Chế độ"}}, 80)
	if !strings.Contains(out, "Enter") || !strings.Contains(out, "Chế độ") {
		t.Errorf("footer missing hints:\n%s", out)
	}
}

func TestRenderToast(t *testing.T) {
	out := RenderToast("Vui lòng nhập đề bài!", true, 80)
	if !strings.Contains(out, "Vui lòng nhập đề bài!") {
		t.Errorf("toast missing text:\n%s", out)
	}
}
