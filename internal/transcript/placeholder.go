package transcript

import (
	"fmt"
	"strings"

	"vidsub/internal/services"
)

// Placeholder builds the body written when transcription fails. The first
// line names the failure category; the last two lines carry the audio path
// and the underlying error.
func Placeholder(tool string, category services.TranscriptionCategory, audioPath string, cause error) string {
	tool = strings.TrimSpace(tool)
	if tool == "" {
		tool = "whisper"
	}
	detail := "unknown error"
	if cause != nil {
		detail = cause.Error()
	}

	var b strings.Builder
	switch category {
	case services.CategoryToolchain:
		fmt.Fprintf(&b, "[%s 轉換失敗: 缺少編譯工具或模型]\n\n", tool)
		b.WriteString("請確認轉錄工具已安裝且模型檔案已下載，可執行 `vidsub status` 檢查。\n\n")
	case services.CategoryMissingInput:
		fmt.Fprintf(&b, "[%s 轉換失敗: 音檔檔案不存在]\n\n", tool)
	case services.CategoryTimeout:
		fmt.Fprintf(&b, "[%s 轉換失敗: 處理超時或被中斷]\n\n", tool)
		b.WriteString("音檔可能太大或系統資源不足\n\n")
	default:
		fmt.Fprintf(&b, "[%s 轉換失敗: %s]\n\n", tool, firstLine(detail))
	}
	fmt.Fprintf(&b, "音檔路徑: %s\n", audioPath)
	fmt.Fprintf(&b, "錯誤詳情: %s", detail)
	return b.String()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if line, _, ok := strings.Cut(s, "\n"); ok {
		return strings.TrimSpace(line)
	}
	return s
}
