// Package builder drives a full site build: fetch the route catalog, cache
// it, render one page per route, regenerate the static pages and the sitemap.
//
// A build is a single linear pass. Only a missing data source or a missing
// template stops it; failures on individual routes or pages are recorded in
// the Report and the build carries on.
package builder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/shrishtravels/routegen/pkg/routegen/config"
	"github.com/shrishtravels/routegen/pkg/routegen/dal"
	"github.com/shrishtravels/routegen/pkg/routegen/logging"
	"github.com/shrishtravels/routegen/pkg/routegen/render"
	"github.com/shrishtravels/routegen/pkg/routegen/sitemap"
	"github.com/shrishtravels/routegen/pkg/routegen/source"
)

var (
	// ErrTemplateMissing is returned when the route template or a fragment
	// cannot be read.
	ErrTemplateMissing = errors.New("template missing")

	// ErrWriteFailure marks an output file that could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// TracerName names the tracer that emits the build stage spans.
const TracerName = "github.com/shrishtravels/routegen/pkg/routegen/builder"

// Fetcher provides the route catalog.
type Fetcher interface {
	FetchRoutes(ctx context.Context) (*source.Catalog, error)
}

// Builder builds the site described by its Config.
type Builder struct {
	cfg      *config.Config
	fetcher  Fetcher
	log      *zap.Logger
	renderer render.Renderer
	rewriter *render.Rewriter
	tracer   trace.Tracer
	now      func() time.Time
}

// New returns a Builder.
func New(cfg *config.Config, fetcher Fetcher, log *zap.Logger) *Builder {
	return &Builder{
		cfg:      cfg,
		fetcher:  fetcher,
		log:      log,
		renderer: render.Renderer{EscapeHTML: cfg.EscapeHTML},
		rewriter: render.NewRewriter(cfg.SitemapPages...),
		tracer:   otel.Tracer(TracerName),
		now:      time.Now,
	}
}

type fragments struct {
	template  string
	header    string
	footer    string
	mobileNav string
}

// Build runs the pipeline. The returned Report is never nil. The error is
// non-nil only when the build could not produce any route page at all, in
// which case it wraps source.ErrDataSourceUnavailable or ErrTemplateMissing.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	report := &Report{BuildID: uuid.NewString()}
	log := b.log.With(zap.String("build_id", report.BuildID))

	ctx, span := b.tracer.Start(ctx, "build", trace.WithAttributes(attribute.String("build_id", report.BuildID)))
	defer span.End()

	log.Info("starting build", zap.String("site_dir", b.cfg.SiteDir))
	start := b.now()

	outDir := b.cfg.Path(b.cfg.OutputDir)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Error("creating output directory", zap.String("dir", outDir), zap.Error(err))
	}

	catalog, err := b.fetch(ctx)
	if err != nil {
		log.Error("no route data, aborting build", zap.Error(err))
		endSpan(span, err)
		return report, err
	}
	report.Source = catalog.Source

	report.CacheWritten = b.writeCache(ctx, log, catalog.Routes)

	frags, err := b.loadFragments()
	if err != nil {
		log.Error("cannot render pages, aborting build", zap.Error(err))
		endSpan(span, err)
		return report, err
	}

	report.Routes = b.renderRoutes(ctx, log, frags, catalog.Routes)

	if len(b.cfg.StaticPages) > 0 {
		report.Pages = b.buildPages(ctx, log, frags)
	}

	if b.cfg.Sitemap {
		report.SitemapWritten = b.writeSitemap(ctx, log, report.Slugs())
	}

	log.Info("build complete",
		zap.String("source", report.Source),
		zap.Int("routes_written", report.Succeeded()),
		zap.Int("failures", report.Failed()),
		zap.Duration("duration", b.now().Sub(start)),
	)
	return report, nil
}

func (b *Builder) fetch(ctx context.Context) (*source.Catalog, error) {
	ctx, span := b.tracer.Start(ctx, "fetch")
	defer span.End()

	catalog, err := b.fetcher.FetchRoutes(ctx)
	if err == nil && (catalog == nil || len(catalog.Routes) == 0) {
		err = source.ErrDataSourceUnavailable
	}
	if err != nil {
		endSpan(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("source", catalog.Source), attribute.Int("routes", len(catalog.Routes)))
	return catalog, nil
}

// writeCache stores the catalog as fetched, original keys included, so a
// later build can run offline.
func (b *Builder) writeCache(ctx context.Context, log *zap.Logger, routes []dal.RawRoute) bool {
	_, span := b.tracer.Start(ctx, "cache")
	defer span.End()

	path := b.cfg.Path(b.cfg.CacheFile)
	data, err := json.MarshalIndent(routes, "", "    ")
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0755)
	}
	if err == nil {
		err = os.WriteFile(path, data, 0644)
	}
	if err != nil {
		log.Error("saving route cache", zap.String("path", path), zap.Error(err))
		endSpan(span, err)
		return false
	}
	log.Info("saved route cache", zap.String("path", path), zap.Int("count", len(routes)))
	return true
}

func (b *Builder) loadFragments() (fragments, error) {
	var f fragments
	var err error
	if f.template, err = readTemplate(b.cfg.Path(b.cfg.Template)); err != nil {
		return f, err
	}
	if f.header, err = readTemplate(b.cfg.Path(b.cfg.Header)); err != nil {
		return f, err
	}
	if f.footer, err = readTemplate(b.cfg.Path(b.cfg.Footer)); err != nil {
		return f, err
	}
	if b.cfg.MobileNav != "" {
		if f.mobileNav, err = readTemplate(b.cfg.Path(b.cfg.MobileNav)); err != nil {
			return f, err
		}
	}
	return f, nil
}

func readTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateMissing, err)
	}
	return string(data), nil
}

func (b *Builder) renderRoutes(ctx context.Context, log *zap.Logger, f fragments, routes []dal.RawRoute) []Outcome {
	_, span := b.tracer.Start(ctx, "render")
	defer span.End()

	header := b.rewriter.Rewrite(f.header)
	footer := b.rewriter.Rewrite(f.footer)
	tmpl := render.InjectFragment(f.template, render.MobileNavToken, b.rewriter.Rewrite(f.mobileNav))
	outDir := b.cfg.Path(b.cfg.OutputDir)

	seen := make(map[string]int, len(routes))
	outcomes := make([]Outcome, 0, len(routes))
	for i, raw := range routes {
		origin, destination := raw.Label()
		o := Outcome{Index: i, Origin: origin, Destination: destination}

		route, err := dal.Normalize(raw)
		if err != nil {
			o.Err = err
			log.Error("skipping route", append(logging.Route("", origin, destination), zap.Int("index", i), zap.Error(err))...)
			outcomes = append(outcomes, o)
			continue
		}
		o.Slug, o.Origin, o.Destination = route.Slug, route.Origin, route.Destination
		o.Path = filepath.Join(outDir, route.Slug+".html")

		if prev, dup := seen[route.Slug]; dup {
			log.Warn("duplicate slug overwrites earlier route", append(logging.Route(route.Slug, route.Origin, route.Destination), zap.Int("index", i), zap.Int("previous", prev))...)
		}
		seen[route.Slug] = i

		page := b.renderer.Render(tmpl, header, footer, route)
		if left := render.Unresolved(page); len(left) > 0 {
			log.Warn("placeholders left after rendering", append(logging.Route(route.Slug, route.Origin, route.Destination), zap.Strings("tokens", left))...)
		}
		if err := writeFile(o.Path, page); err != nil {
			o.Err = err
			log.Error("writing route page", append(logging.Route(route.Slug, route.Origin, route.Destination), zap.Error(err))...)
		} else {
			log.Debug("generated route page", zap.String("path", o.Path))
		}
		outcomes = append(outcomes, o)
	}

	log.Info("generated route pages", zap.Int("count", countOK(outcomes)), zap.Int("total", len(routes)))
	span.SetAttributes(attribute.Int("pages", countOK(outcomes)))
	return outcomes
}

// buildPages regenerates the static top-level pages. They live at the site
// root, so the fragments go in without path rewriting.
func (b *Builder) buildPages(ctx context.Context, log *zap.Logger, f fragments) []Outcome {
	_, span := b.tracer.Start(ctx, "static")
	defer span.End()

	outcomes := make([]Outcome, 0, len(b.cfg.StaticPages))
	for _, name := range b.cfg.StaticPages {
		o := b.buildPage(name, f)
		if o.Err != nil {
			log.Error("building static page", zap.String("page", name), zap.Error(o.Err))
		} else {
			log.Info("built static page", zap.String("page", name), zap.String("path", o.Path))
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

func (b *Builder) buildPage(name string, f fragments) Outcome {
	o := Outcome{Slug: name}
	src := filepath.Join(b.cfg.Path(b.cfg.TemplatesDir), name)

	data, err := os.ReadFile(src)
	if err != nil {
		o.Err = fmt.Errorf("%w: %v", ErrTemplateMissing, err)
		return o
	}

	var page string
	if filepath.Ext(name) == ".md" {
		name = strings.TrimSuffix(name, ".md") + ".html"
		layout, err := readTemplate(b.cfg.Path(b.cfg.PageLayout))
		if err != nil {
			o.Err = err
			return o
		}
		body, meta, err := render.Markdown(data)
		if err != nil {
			o.Err = err
			return o
		}
		page = render.RenderPage(layout, f.header, f.footer, body, meta)
	} else {
		page = render.InjectFragments(string(data), f.header, f.footer)
	}
	page = render.InjectFragment(page, render.MobileNavToken, f.mobileNav)

	o.Path = b.cfg.Path(name)
	o.Err = writeFile(o.Path, page)
	return o
}

func (b *Builder) writeSitemap(ctx context.Context, log *zap.Logger, slugs []string) bool {
	_, span := b.tracer.Start(ctx, "sitemap")
	defer span.End()

	sm := sitemap.Build(sitemap.Site{
		Domain:     b.cfg.Domain,
		Pages:      b.cfg.SitemapPages,
		RoutesPath: b.cfg.RoutesPath(),
		Slugs:      slugs,
	}, b.now())

	path := b.cfg.Path(b.cfg.SitemapFile)
	data, err := sm.Marshal()
	if err == nil {
		err = writeFile(path, string(data))
	}
	if err != nil {
		log.Error("writing sitemap", zap.String("path", path), zap.Error(err))
		endSpan(span, err)
		return false
	}
	log.Info("wrote sitemap", zap.String("path", path), zap.Int("urls", len(sm.URLs)))
	return true
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
