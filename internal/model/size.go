package model

import "strconv"

// BytesPerKB is the divisor used for every size shown to the user
const BytesPerKB = 1024

// ReductionUnavailable is shown when the baseline size rounds down to 0 KB
const ReductionUnavailable = "N/A"

// SizeReport holds the baseline (lossless) and compressed (lossy) encodings' sizes
type SizeReport struct {
	OriginalBytes   int64
	CompressedBytes int64
}

// OriginalKB returns the baseline size in whole kilobytes (fraction truncated)
func (r SizeReport) OriginalKB() int64 {
	return r.OriginalBytes / BytesPerKB
}

// CompressedKB returns the compressed size in whole kilobytes (fraction truncated)
func (r SizeReport) CompressedKB() int64 {
	return r.CompressedBytes / BytesPerKB
}

// Reduction returns the percentage saved, computed on the kilobyte figures.
// ok is false when the baseline is 0 KB.
func (r SizeReport) Reduction() (percent float64, ok bool) {
	original := r.OriginalKB()
	if original == 0 {
		return 0, false
	}
	return float64(original-r.CompressedKB()) / float64(original) * 100, true
}

// ReductionString formats Reduction with one decimal place
func (r SizeReport) ReductionString() string {
	percent, ok := r.Reduction()
	if !ok {
		return ReductionUnavailable
	}
	return strconv.FormatFloat(percent, 'f', 1, 64)
}
