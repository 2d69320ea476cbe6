package countdown

import "fmt"

// FormatTime renders totalSeconds as HH:MM:SS with each field zero-padded
// to two digits. Negative input is treated as zero.
func FormatTime(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
