package activityscan

// window is the inclusive block range of one scan. It is empty when to < from.
type window struct {
	from uint64
	to   uint64
}

// newWindow starts right after the caller's cursor and ends at the head or
// after maxWindow blocks, whichever comes first. When the cursor is at or
// past head the window is empty and to equals the cursor, so re-invoking
// with to never moves the cursor backwards.
func newWindow(start, head uint64, maxWindow int) window {
	from := start + 1
	if from > head {
		return window{from: from, to: start}
	}

	to := from + uint64(maxWindow) - 1
	if to > head {
		to = head
	}

	return window{from: from, to: to}
}

func (w window) isEmpty() bool {
	return w.to < w.from
}

// batches splits the window into consecutive runs of at most size blocks, in increasing order.
func (w window) batches(size int) [][]uint64 {
	if w.isEmpty() || size <= 0 {
		return nil
	}

	var (
		out   [][]uint64
		batch = make([]uint64, 0, size)
	)
	for n := w.from; n <= w.to; n++ {
		batch = append(batch, n)
		if len(batch) == size {
			out = append(out, batch)
			batch = make([]uint64, 0, size)
		}
	}

	if len(batch) > 0 {
		out = append(out, batch)
	}

	return out
}
