package classify

import (
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
)

// Option configures a classification run.
type Option func(*config)

type config struct {
	metric        colorpoint.Metric
	topologyAware bool
	strict        bool
	logger        *zap.Logger
}

func defaultConfig() *config {
	return &config{
		metric: colorpoint.DefaultMetric,
		logger: zap.NewNop(),
	}
}

// WithMetric sets the distance used to rank point/centroid pairs.
func WithMetric(m colorpoint.Metric) Option {
	return func(c *config) {
		c.metric = m
	}
}

// WithTopologyAware forbids, for the other facelets of a corner or edge, the
// face opposite to a label already given to one of its facelets.
func WithTopologyAware(enabled bool) Option {
	return func(c *config) {
		c.topologyAware = enabled
	}
}

// WithStrict makes a point count that does not divide evenly among the
// centroids panic instead of leaving the remainder unassigned.
func WithStrict(enabled bool) Option {
	return func(c *config) {
		c.strict = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
