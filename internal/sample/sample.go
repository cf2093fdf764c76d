// Package sample provides deterministic event sampling. Indices are computed
// from the event count alone, never randomly, so repeated runs over the same
// recording always observe the same events.
package sample

// Indices returns up to max evenly spaced indices into a list of n elements,
// in ascending order. If n <= max every index is returned.
func Indices(n, max int) []int {
	if n <= 0 || max <= 0 {
		return nil
	}
	if n <= max {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, max)
	for i := 0; i < max; i++ {
		idx[i] = i * n / max
	}
	return idx
}
