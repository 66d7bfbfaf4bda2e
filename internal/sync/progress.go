package sync

import "math"

// progressFallback is reported when a progress source supplies no usable
// counters. Progress is advisory, never load-bearing.
const progressFallback = 50

// progressCeiling caps estimated progress so the jump to 100 is reserved
// for the explicit completion signal.
const progressCeiling = 99

// estimateProgress derives a percentage from the cumulative read/write
// counters of a sync pass.
func estimateProgress(documentsRead, documentsWritten int64) int {
	total := documentsRead + documentsWritten
	if total <= 0 {
		return progressFallback
	}

	p := int(math.Round(float64(documentsWritten) / float64(total) * 100))
	if p > progressCeiling {
		p = progressCeiling
	}

	return p
}
