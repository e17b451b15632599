package template

import (
	"context"
	"fmt"

	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/port/option"

	"go.llib.dev/seqgen/pkg/combinator"
	"go.llib.dev/seqgen/pkg/generator"
	"go.llib.dev/seqgen/pkg/randkit"
	"go.llib.dev/seqgen/pkg/seqkit"
)

type Option interface {
	option.Option[Config]
}

type Config struct {
	// Source is shared by every block of the template.
	Source randkit.Source
	// Seed makes the build reproducible when no Source is given.
	Seed    *uint64
	Metrics *generator.Metrics
	// Logger overrides the default logger.
	Logger *logging.Logger
}

func (c Config) Configure(t *Config) { *t = c }

func WithSource(src randkit.Source) Option {
	return option.Func[Config](func(c *Config) { c.Source = src })
}

func WithSeed(seed uint64) Option {
	return option.Func[Config](func(c *Config) { c.Seed = &seed })
}

func WithMetrics(m *generator.Metrics) Option {
	return option.Func[Config](func(c *Config) { c.Metrics = m })
}

func WithLogger(l *logging.Logger) Option {
	return option.Func[Config](func(c *Config) { c.Logger = l })
}

type builder struct {
	opts  []generator.Option
	debug func(ctx context.Context, msg string, ds ...logging.Detail)
	warn  func(ctx context.Context, msg string, ds ...logging.Detail)
}

// Build validates the template and makes the generator of its root block.
func (t Template) Build(ctx context.Context, opts ...Option) (*generator.Generator[string], error) {
	c := option.ToConfig[Config](opts)
	b := builder{debug: logger.Debug, warn: logger.Warn}
	if c.Logger != nil {
		b.debug, b.warn = c.Logger.Debug, c.Logger.Warn
	}

	if err := t.Validate(); err != nil {
		b.warn(ctx, "invalid template",
			logging.Field("template", t.Name),
			logging.ErrField(err))
		return nil, err
	}

	src := c.Source
	if src == nil && c.Seed != nil {
		src = randkit.New(*c.Seed)
	}
	if src != nil {
		b.opts = append(b.opts, generator.WithSource(src))
	}
	if c.Metrics != nil {
		b.opts = append(b.opts, generator.WithMetrics(c.Metrics))
	}
	return b.block(ctx, t.Block, t.Name)
}

func (b builder) block(ctx context.Context, blk Block, path string) (*generator.Generator[string], error) {
	sources := make([]seqkit.Iterator[[]string], 0, len(blk.Items))
	for i, item := range blk.Items {
		src, err := b.item(ctx, item, fmt.Sprintf("%s.items[%d]", path, i))
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	g, err := generator.New(generator.Config{
		Combinator: blk.Combinator,
		Compositor: blk.Compositor,
		Permutator: blk.Permutator,
		Percentage: blk.Percentage,
	}, sources, b.opts...)
	if err != nil {
		b.warn(ctx, "invalid template block",
			logging.Field("block", path),
			logging.ErrField(err))
		return nil, ErrInvalidTemplate.Wrap(err)
	}

	s := g.Strategies()
	b.debug(ctx, "template block generator",
		logging.Field("block", path),
		logging.Field("combinator", s.Combinator.String()),
		logging.Field("compositor", s.Compositor.String()),
		logging.Field("permutator", s.Permutator.String()),
		logging.Field("items", len(sources)))
	return g, nil
}

// item makes the source of alternative sub-sequences of one block item.
func (b builder) item(ctx context.Context, item Item, path string) (seqkit.Iterator[[]string], error) {
	switch {
	case item.Block != nil:
		g, err := b.block(ctx, *item.Block, path)
		if err != nil {
			return nil, err
		}
		return g, nil
	case len(item.Sequences) > 0:
		return seqkit.FromSlice(item.Sequences), nil
	case len(item.Operands) == 0:
		return seqkit.Single([]string{item.Call}), nil
	default:
		return calls(item.Call, item.Operands)
	}
}

// calls yields one single-instruction sub-sequence for every combination of the operands.
func calls(name string, operands [][]string) (seqkit.Iterator[[]string], error) {
	slots := make([]seqkit.Iterator[string], len(operands))
	for i, alts := range operands {
		slots[i] = seqkit.FromSlice(alts)
	}
	c, err := combinator.New(combinator.PRODUCT, slots)
	if err != nil {
		return nil, ErrInvalidTemplate.Wrap(err)
	}
	sized, err := c.Sized()
	if err != nil {
		return nil, ErrInvalidTemplate.Wrap(err)
	}
	return seqkit.Map[[]string, []string](sized, func(ops []string) []string {
		return []string{Render(name, ops)}
	}), nil
}
