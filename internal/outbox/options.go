package outbox

import "go.uber.org/zap"

type options struct {
	logger *zap.Logger
}

// Option configures a Dispatcher or DLQManager.
type Option func(*options)

// WithLogger overrides the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
