// Package render turns solver results into text for the front-ends.
package render

import (
	"fmt"

	"github.com/hoaithanh/giaitoan/internal/solver"
)

// User-facing messages, one per failure kind.
const (
	msgConfiguration = "**Lỗi:** Khóa API chưa được cấu hình. Vui lòng đảm bảo biến môi trường API_KEY đã được thiết lập."
	msgSafetyBlocked = "**Lỗi:** Yêu cầu đã bị chặn vì lý do an toàn: `%s`. Vui lòng thử với một tệp khác hoặc nội dung khác."
	msgEmpty         = "**Lỗi:** AI không thể tạo ra phản hồi. Vui lòng thử lại."
	msgTransport     = "**Đã xảy ra lỗi:** %s. Vui lòng thử lại sau."
	msgIO            = "**Lỗi:** Không thể đọc tệp %q. Vui lòng thử lại với một tệp khác."
	msgInvalidInput  = "**Lỗi:** %s"
)

// Display collapses a Result into the single Markdown string shown to the
// user: the solution on success, a fixed error message otherwise. The
// returned string is never empty.
func Display(res solver.Result) string {
	if res.Err == nil {
		if res.Solution == "" {
			return msgEmpty
		}
		return res.Solution
	}

	e := res.Err
	switch e.Kind {
	case solver.KindConfiguration:
		return msgConfiguration
	case solver.KindSafetyBlocked:
		return fmt.Sprintf(msgSafetyBlocked, e.Reason)
	case solver.KindEmptyResponse:
		return msgEmpty
	case solver.KindIO:
		return fmt.Sprintf(msgIO, e.Message)
	case solver.KindInvalidInput:
		return fmt.Sprintf(msgInvalidInput, e.Message)
	default:
		msg := e.Message
		if msg == "" {
			msg = "lỗi không xác định"
		}
		return fmt.Sprintf(msgTransport, msg)
	}
}
