package cubescan

import (
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/fixer"
	"github.com/SeamusWaldron/cubescan/internal/oracle"
)

// Option configures a Resolver.
type Option func(*config)

type config struct {
	metric        colorpoint.Metric
	space         colorpoint.ColorSpace
	scale         float64
	topologyAware bool
	fixer         fixer.Config
	oracle        oracle.Oracle
	solver        oracle.Solver
	logger        *zap.Logger
}

func defaultConfig() *config {
	return &config{
		metric: colorpoint.DefaultMetric,
		space:  colorpoint.RGB,
		scale:  255,
		fixer:  fixer.DefaultConfig(),
		oracle: oracle.Default(),
		logger: zap.NewNop(),
	}
}

// WithMetric sets the distance used by both the classifier and the repair
// score.
func WithMetric(m colorpoint.Metric) Option {
	return func(c *config) {
		c.metric = m
	}
}

// WithColorSpace converts raw samples read on a [0, scale] range into space
// before classification.
func WithColorSpace(space colorpoint.ColorSpace, scale float64) Option {
	return func(c *config) {
		c.space = space
		if scale > 0 {
			c.scale = scale
		}
	}
}

// WithTopologyAware enables opposite-face forbidding within a piece during
// classification.
func WithTopologyAware(enabled bool) Option {
	return func(c *config) {
		c.topologyAware = enabled
	}
}

// WithFixerConfig sets the repair search settings. The metric is always
// taken from WithMetric.
func WithFixerConfig(cfg fixer.Config) Option {
	return func(c *config) {
		c.fixer = cfg
	}
}

// WithOracle sets the solvability check used by the repairer.
func WithOracle(o oracle.Oracle) Option {
	return func(c *config) {
		if o != nil {
			c.oracle = o
		}
	}
}

// WithSolver asks an external solver for a move sequence once a solvable
// notation is found.
func WithSolver(s oracle.Solver) Option {
	return func(c *config) {
		c.solver = s
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

// DefaultFixerConfig returns the standard repair search settings.
func DefaultFixerConfig() fixer.Config {
	return fixer.DefaultConfig()
}
