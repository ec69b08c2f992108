package repository

type options struct {
	batchSize   int
	autoMigrate bool
}

func defaultOptions() options {
	return options{batchSize: 500, autoMigrate: true}
}

// Option applies a configuration option to a Store.
type Option func(*options)

// WithBatchSize sets how many rows go into one multi-row INSERT.
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

// WithAutoMigrate controls whether opening a SQL store migrates its schema
// to the latest version.
func WithAutoMigrate(enabled bool) Option {
	return func(o *options) {
		o.autoMigrate = enabled
	}
}
