package restore

import "fmt"

// Bytes returns the total size of the emitted records.
func (r *Result) Bytes() int {
	n := 0
	for _, e := range r.Emitted {
		n += e.Bytes
	}
	return n
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
