package speedtest

import "fmt"

// FormatBytes renders a payload size in decimal units: "500 bytes", "100KB",
// "10MB".
func FormatBytes(size int64) string {
	switch {
	case size < 1_000:
		return fmt.Sprintf("%d bytes", size)
	case size < 1_000_000:
		return fmt.Sprintf("%dKB", size/1_000)
	case size < 1_000_000_000:
		return fmt.Sprintf("%dMB", size/1_000_000)
	default:
		return fmt.Sprintf("%dGB", size/1_000_000_000)
	}
}
