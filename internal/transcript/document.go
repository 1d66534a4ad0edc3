package transcript

import (
	"fmt"
	"strings"
	"time"

	"vidsub/internal/services"
)

// Separator divides the header block from the body.
const Separator = "---"

// TimestampLayout formats the conversion time in the header.
const TimestampLayout = "2006/01/02 15:04:05"

const bytesPerMB = 1024 * 1024

// Document is a transcript file before serialization.
type Document struct {
	VideoID    string
	CreatedAt  time.Time
	Tool       string
	AudioBytes int64
	Body       string
}

// Render serializes the document with its header block.
func (d Document) Render() string {
	created := d.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s 文稿\n", d.VideoID)
	fmt.Fprintf(&b, "轉換時間: %s\n", created.Local().Format(TimestampLayout))
	fmt.Fprintf(&b, "轉換工具: %s\n", d.Tool)
	fmt.Fprintf(&b, "音檔大小: %.2f MB\n", SizeMB(d.AudioBytes))
	b.WriteString("\n" + Separator + "\n\n")
	body := strings.TrimSpace(d.Body)
	b.WriteString(body)
	if body != "" {
		b.WriteByte('\n')
	}
	return b.String()
}

// SizeMB converts a byte count to mebibytes.
func SizeMB(n int64) float64 {
	return float64(n) / bytesPerMB
}

// Body returns everything after the first separator, trimmed. A missing
// separator or an empty body is a format error.
func Body(content string) (string, error) {
	_, after, found := strings.Cut(content, Separator)
	if !found {
		return "", services.Wrap(services.ErrFormat, "transcript", "parse", "missing header separator", nil)
	}
	body := strings.TrimSpace(after)
	if body == "" {
		return "", services.Wrap(services.ErrFormat, "transcript", "parse", "empty body", nil)
	}
	return body, nil
}
