package dedupe

// defaultMaxSize bounds the dedupe cache when no option is given.
const defaultMaxSize = 50000

// Option applies a configuration option to the deduper.
type Option func(*memoryDeduper)

// WithMaxSize sets the maximum number of IDs to keep before the oldest
// are evicted. Non-positive values keep the default.
func WithMaxSize(size int) Option {
	return func(d *memoryDeduper) {
		if size > 0 {
			d.maxSize = size
		}
	}
}
