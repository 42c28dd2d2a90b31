package cloning

import (
	"github.com/zboralski/lattice"
	"go.uber.org/zap"

	"mixin-cloner/il"
	"mixin-cloner/internal/depgraph"
	"mixin-cloner/internal/diagnostic"
	"mixin-cloner/options"
)

// Context is one cloning operation of a source root type into a target root type.
type Context struct {
	source *il.TypeDefinition
	target *il.TypeDefinition
	config options.Config
	logger *zap.Logger

	executed bool
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg options.Config) Option {
	return func(c *Context) { c.config = cfg }
}

// NewContext creates a cloning operation of source into target.
func NewContext(source, target *il.TypeDefinition, opts ...Option) *Context {
	c := &Context{
		source: source,
		target: target,
		config: options.Default(),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Result describes a completed cloning operation.
type Result struct {
	// Cloners counts the invoked cloners per stage.
	Cloners map[Stage]int
	// Diagnostics holds the non-fatal notes, such as skipped members and
	// interfaces the target already implements.
	Diagnostics diagnostic.Diagnostics
	// Dependencies is the dependency graph of the source root, when recorded.
	Dependencies *lattice.Graph
}

// Execute clones every member of the source root into the target root.
// Failures found before the target is touched leave it unchanged; after
// that, a failed target is in an undefined state and must be discarded.
func (c *Context) Execute() (*Result, error) {
	if c.executed {
		return nil, diagnostic.Internal("context_executed", "cloning operation already executed")
	}

	c.executed = true

	if err := c.validate(); err != nil {
		return nil, err
	}

	name := c.source.FullName()
	logger := c.logger.With(zap.String("source", name), zap.String("target", c.target.FullName()))

	if err := precheck(c.source, c.target, c.config.SkipAttribute); err != nil {
		return nil, diagnostic.Attribute(err, name)
	}

	result := &Result{}

	registry := NewRegistry(logger)
	importer := NewRootImporter(registry, c.target)

	g := newGatherer(registry, importer, c.config, logger, &result.Diagnostics, c.source, c.target)
	if err := g.gather(); err != nil {
		return nil, diagnostic.Attribute(err, name)
	}

	logger.Debug("gathered cloners", zap.Int("cloners", registry.Len()))
	registry.Seal()

	if err := registry.InvokeCloners(); err != nil {
		return nil, diagnostic.Attribute(err, name)
	}

	result.Cloners = registry.Stats()

	if c.config.RecordDependencies {
		result.Dependencies = depgraph.Build(c.source)
	}

	logger.Debug("cloning complete",
		zap.Int("cloners", registry.Len()),
		zap.Int("warnings", len(result.Diagnostics.Warnings)),
		zap.Int("infos", len(result.Diagnostics.Infos)),
	)

	return result, nil
}

func (c *Context) validate() error {
	switch {
	case c.source == nil || c.target == nil:
		return diagnostic.Configuration("nil_root", "source and target types are required")
	case c.source == c.target:
		return diagnostic.Configuration("same_root", "type %s cannot be cloned into itself", c.source)
	case c.target.Module == nil:
		return diagnostic.Configuration("target_detached", "target %s belongs to no module", c.target)
	}

	if err := c.config.Validate(); err != nil {
		return &diagnostic.Error{
			Category: diagnostic.CategoryConfiguration,
			Code:     "invalid_options",
			Type:     c.source.FullName(),
			Message:  "cloning options are invalid",
			Err:      err,
		}
	}

	return nil
}

// Execute clones source into target with the given options.
func Execute(source, target *il.TypeDefinition, opts ...Option) (*Result, error) {
	return NewContext(source, target, opts...).Execute()
}
