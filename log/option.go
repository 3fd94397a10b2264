package log

// Option configures a [Logger].
type Option func(*config)

func apply(c *config, opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
}
