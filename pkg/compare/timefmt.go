package compare

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/user/vidcompare/pkg/ports"
)

// EmptyTimeText is shown until both videos are loaded.
const EmptyTimeText = "00:00 / 00:00"

// FormatTime renders seconds as zero-padded mm:ss, truncating fractions.
// Negative and non-finite input renders as 00:00.
func FormatTime(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "00:00"
	}
	total := int64(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// TimeText renders "position / upperBound" as times at the given frame rate.
func TimeText(position, upperBound int, fps float64) string {
	if fps <= 0 {
		return EmptyTimeText
	}
	return FormatTime(float64(position)/fps) + " / " + FormatTime(float64(upperBound)/fps)
}

// InfoText renders the per-slot information label.
func InfoText(info ports.VideoInfo) string {
	return fmt.Sprintf("File: %s\nSize: %dx%d | %.2f FPS | %.2fs",
		filepath.Base(info.Path), info.Width, info.Height, info.FrameRate, info.Duration())
}
