package score

// normalize maps a 64-bit hash onto [0, 1).
//
// Only the top 53 bits are used so the result is an exactly representable
// float64 and can never round up to 1.0.
func normalize(h uint64) float64 {
	return float64(h>>11) / (1 << 53)
}
