package repository

// defaultShardCount balances lock contention against iteration cost for
// the modest record volumes an ERP dashboard sees.
const defaultShardCount = 8

type storeConfig struct {
	shardCount int
}

// Option applies a configuration option to the store.
type Option func(*storeConfig)

// WithShardCount sets the number of shards. Non-positive values keep the
// default.
func WithShardCount(count int) Option {
	return func(c *storeConfig) {
		if count > 0 {
			c.shardCount = count
		}
	}
}
