package strut

import "sync"

// chunked splits items into contiguous chunks, one per worker, and runs fn
// on every item. Vehicle.Step uses it to spread axle updates across
// goroutines; no suspension is shared between axles, so the chunks are
// independent and need no locking.
func chunked[T any](workers int, items []T, fn func(item T)) {
	var wg sync.WaitGroup
	chunkSize := (len(items) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, len(items))

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(items[i])
			}
		}(start, end)
	}
	wg.Wait()
}
