// internal/cycle/format.go
package cycle

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var counts = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators: 100000 -> "100,000".
func FormatCount(n int64) string {
	return counts.Sprintf("%d", n)
}

// FormatTimestamp renders t as D-M-YYYY H:MM (only minutes are padded).
func FormatTimestamp(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d %d:%02d", t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute())
}
