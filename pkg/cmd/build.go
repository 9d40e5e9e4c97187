package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shrishtravels/routegen/pkg/routegen/builder"
	"github.com/shrishtravels/routegen/pkg/routegen/config"
	"github.com/shrishtravels/routegen/pkg/routegen/render"
	"github.com/shrishtravels/routegen/pkg/routegen/source"
	"github.com/shrishtravels/routegen/pkg/routegen/tracing"
)

var BuildCmd = &cobra.Command{
	Use:   BuildCmdName,
	Short: BuildCmdShort,
	Long:  BuildCmdLong,
	Args:  cobra.NoArgs,
	RunE:  buildCmdFunc,
}

func init() {
	flags := BuildCmd.Flags()
	flags.String(config.KeyRemoteURL, "", "JSON endpoint serving the route catalog")
	flags.Duration(config.KeyTimeout, 10*time.Second, "remote fetch timeout")
	flags.String(config.KeySheetID, "", "Google Sheets spreadsheet id")
	flags.String(config.KeySheetTab, "routes", "worksheet holding the routes")
	flags.String(config.KeyCredentialsFile, "shrish-credentials.json", "service account key file (GOOGLE_CREDENTIALS takes precedence)")
	flags.String(config.KeyOutputDir, "routes", "directory for route pages")
	flags.String(config.KeyTemplate, "route_template.html", "route page template")
	flags.String(config.KeyHeader, "components/_header.html", "header fragment")
	flags.String(config.KeyFooter, "components/_footer.html", "footer fragment")
	flags.String(config.KeyMobileNav, "", "optional mobile navigation fragment")
	flags.String(config.KeyTemplatesDir, "templates", "directory holding static page sources")
	flags.String(config.KeyPageLayout, "templates/_layout.html", "layout for markdown static pages")
	flags.StringSlice(config.KeyStaticPages, []string{"index.html"}, "static pages to regenerate")
	flags.Bool(config.KeySitemap, true, "regenerate the sitemap")
	flags.String(config.KeySitemapFile, "sitemap.xml", "sitemap output path")
	flags.StringSlice(config.KeySitemapPages, render.TopLevelPages, "static pages listed in the sitemap")
	flags.String(config.KeyDomain, "www.shrishtravels.com", "site domain used in sitemap URLs")
	flags.Bool(config.KeyEscapeHTML, false, "HTML-escape record values")
	flags.Bool(config.KeyTrace, false, "write build stage spans to stderr")
	v.BindPFlags(flags)
}

func buildCmdFunc(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if cfg.Trace {
		shutdown, err := tracing.Setup(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn("flushing spans", zap.Error(err))
			}
		}()
	}
	b := builder.New(cfg, builder.NewResolver(ctx, cfg, log), log)

	report, err := b.Build(ctx)
	switch {
	case errors.Is(err, source.ErrDataSourceUnavailable):
		return fmt.Errorf("no route data from any source: %w", err)
	case errors.Is(err, builder.ErrTemplateMissing):
		return fmt.Errorf("cannot render route pages: %w", err)
	case err != nil:
		return err
	}

	warnFailures(log, report)
	return nil
}

// warnFailures summarizes failed pages. The builder has already logged each
// one with its cause.
func warnFailures(log *zap.Logger, report *builder.Report) {
	if n := report.Failed(); n > 0 {
		log.Warn("build finished with failures",
			zap.String("build_id", report.BuildID),
			zap.Int("failed", n),
			zap.Int("succeeded", report.Succeeded()),
		)
	}
}
