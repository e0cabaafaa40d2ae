package lightmap

import "golang.org/x/sync/errgroup"

// forEachBand splits the rows into one contiguous band per worker and runs fn
// on each. Bands never overlap, so fn may write any texel in its rows without
// locking. The per-band results are summed.
func (lm *Lightmapper) forEachBand(fn func(y0, y1 int) int) int {
	n := min(lm.workers, lm.height)
	if n < 2 {
		return fn(0, lm.height)
	}

	results := make([]int, n)
	var g errgroup.Group
	for i := range n {
		y0 := lm.height * i / n
		y1 := lm.height * (i + 1) / n
		g.Go(func() error {
			results[i] = fn(y0, y1)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, r := range results {
		total += r
	}
	return total
}
