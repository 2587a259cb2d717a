package xmlext

import "github.com/jacoelho/xmlext/pkg/logger"

// Option configures a Container at construction.
type Option func(*Container)

// WithLogger sets the logger used for parse trace events.
// A nil logger keeps the no-op default.
func WithLogger(l logger.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFactories registers factories in the given order.
func WithFactories(fs ...Factory) Option {
	return func(c *Container) {
		c.RegisterFactory(fs...)
	}
}
