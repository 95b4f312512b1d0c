package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/modu-ai/kickstart/internal/buildtool"
	"github.com/modu-ai/kickstart/internal/defs"
	"github.com/modu-ai/kickstart/internal/platform"
	"github.com/modu-ai/kickstart/internal/template"
	"github.com/modu-ai/kickstart/pkg/models"
)

// Option configures Create.
type Option func(*options)

type options struct {
	desc    platform.Descriptor
	catalog *template.Catalog
	logger  *slog.Logger
}

// WithPlatform sets the platform descriptor. The embedded default is used
// when none is given.
func WithPlatform(desc platform.Descriptor) Option {
	return func(o *options) { o.desc = desc }
}

// WithCatalog sets the template catalog.
func WithCatalog(c *template.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Create scaffolds the project described by cfg. It never panics on bad
// input and never returns nil: every failure is reported in the Outcome.
// Nothing is written when cfg is invalid. Files written before a later
// failure are kept.
func Create(ctx context.Context, cfg models.ProjectConfig, opts ...Option) *Outcome {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.catalog == nil {
		o.catalog = template.Default()
	}

	cfg = cfg.Clone()
	if cfg.Root != "" {
		cfg.Root = filepath.Clean(cfg.Root)
	}
	b := &outcomeBuilder{o: Outcome{dryRun: cfg.DryRun}}
	logger := o.logger.With("root", cfg.Root)

	if err := ctx.Err(); err != nil {
		return b.fail(err)
	}

	desc := o.desc
	if desc == nil {
		d, err := platform.Default()
		if err != nil {
			return b.fail(fmt.Errorf("%w: %w", ErrPlatformUnavailable, err))
		}
		desc = d
	}

	subs, err := template.Resolve(cfg, desc)
	if err != nil {
		logger.Warn("invalid project configuration", "error", err)
		return b.fail(err)
	}
	deps, err := template.Dependencies(cfg, desc)
	if err != nil {
		return b.fail(err)
	}
	tool, err := buildtool.For(cfg.EffectiveBuildTool())
	if err != nil {
		return b.fail(fmt.Errorf("%w: %w", models.ErrInvalidConfiguration, err))
	}

	state, warnings, err := DetectState(cfg.Root, tool.BuildTool())
	if err != nil {
		return b.fail(err)
	}
	b.o.state = state
	b.warn(warnings...)

	logger.Info("creating project",
		"tool", tool.BuildTool(),
		"state", state,
		"group", cfg.GroupID,
		"artifact", cfg.ArtifactID,
		"dryRun", cfg.DryRun,
	)

	if err := ctx.Err(); err != nil {
		return b.fail(err)
	}
	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.Root, defs.DirPerm); err != nil {
			return b.fail(fmt.Errorf("create root %s: %w", cfg.Root, err))
		}
	}

	w := &scaffoldWriter{root: cfg.Root, catalog: o.catalog, subs: subs, dryRun: cfg.DryRun, logger: logger}
	dirs, err := w.ensureDirs(skeletonDirs)
	b.o.directories = dirs
	if err != nil {
		return b.fail(err)
	}

	changes, warnings, err := tool.WriteDescriptor(ctx, cfg.Root, o.catalog, subs, subs.Requirements(deps), cfg.DryRun)
	b.record(changes...)
	b.warn(warnings...)
	if err != nil {
		logger.Error("descriptor step failed", "error", err)
		return b.fail(err)
	}

	changes, err = w.writeFiles(ctx, planFiles(subs))
	b.record(changes...)
	if err != nil {
		logger.Error("scaffold step failed", "error", err)
		return b.fail(err)
	}

	out := b.build()
	logger.Info("project created",
		"created", len(out.Created()),
		"updated", len(out.Updated()),
		"skipped", len(out.Skipped()),
		"warnings", len(out.Warnings()),
	)
	return out
}

// CreateProject is a fluent builder for a create operation. Setters
// return the builder; Execute snapshots the accumulated configuration, so
// later setter calls never affect a running operation.
type CreateProject struct {
	cfg  models.ProjectConfig
	opts []Option
}

// NewCreateProject starts a create operation targeting root. A nil desc
// selects the embedded platform descriptor.
func NewCreateProject(root string, desc platform.Descriptor) *CreateProject {
	c := &CreateProject{cfg: models.ProjectConfig{Root: root}}
	if desc != nil {
		c.opts = append(c.opts, WithPlatform(desc))
	}
	return c
}

func (c *CreateProject) GroupID(v string) *CreateProject    { c.cfg.GroupID = v; return c }
func (c *CreateProject) ArtifactID(v string) *CreateProject { c.cfg.ArtifactID = v; return c }
func (c *CreateProject) Version(v string) *CreateProject    { c.cfg.Version = v; return c }
func (c *CreateProject) ClassName(v string) *CreateProject  { c.cfg.ClassName = v; return c }

// BuildTool selects the build ecosystem.
func (c *CreateProject) BuildTool(bt models.BuildTool) *CreateProject {
	c.cfg.BuildTool = bt
	return c
}

// SpringController switches the sample class to the Spring flavor.
func (c *CreateProject) SpringController(on bool) *CreateProject {
	c.cfg.Features.SpringController = on
	return c
}

// ResourcePath sets the path served by the sample class.
func (c *CreateProject) ResourcePath(p string) *CreateProject {
	c.cfg.Features.ResourcePath = p
	return c
}

// Extensions adds dependencies, as artifact ids or group:artifact[:version].
func (c *CreateProject) Extensions(specs ...string) *CreateProject {
	c.cfg.Extensions = append(c.cfg.Extensions, specs...)
	return c
}

// PlatformOverride replaces one platform descriptor value for this run.
func (c *CreateProject) PlatformOverride(key, value string) *CreateProject {
	if c.cfg.PlatformOverrides == nil {
		c.cfg.PlatformOverrides = make(map[string]string)
	}
	c.cfg.PlatformOverrides[key] = value
	return c
}

// DryRun plans the changes without writing anything.
func (c *CreateProject) DryRun(on bool) *CreateProject {
	c.cfg.DryRun = on
	return c
}

// Logger sets the logger.
func (c *CreateProject) Logger(l *slog.Logger) *CreateProject {
	c.opts = append(c.opts, WithLogger(l))
	return c
}

// Catalog sets the template catalog.
func (c *CreateProject) Catalog(cat *template.Catalog) *CreateProject {
	c.opts = append(c.opts, WithCatalog(cat))
	return c
}

// Config returns a copy of the accumulated configuration.
func (c *CreateProject) Config() models.ProjectConfig {
	return c.cfg.Clone()
}

// Execute runs the operation on a snapshot of the configuration.
func (c *CreateProject) Execute(ctx context.Context) *Outcome {
	return Create(ctx, c.Config(), c.opts...)
}
