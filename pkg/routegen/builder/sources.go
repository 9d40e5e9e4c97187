package builder

import (
	"context"

	"go.uber.org/zap"

	"github.com/shrishtravels/routegen/pkg/routegen/config"
	"github.com/shrishtravels/routegen/pkg/routegen/source"
)

// NewResolver chains the configured remote sources ahead of the local cache.
// A Sheets source that cannot authenticate is logged and left out.
func NewResolver(ctx context.Context, cfg *config.Config, log *zap.Logger) *source.Resolver {
	var sources []source.Source

	if cfg.SheetID != "" {
		creds, err := cfg.Credentials()
		if err == nil {
			var s *source.SheetsSource
			if s, err = source.NewSheetsSource(ctx, cfg.SheetID, cfg.SheetTab, creds, cfg.Timeout); err == nil {
				sources = append(sources, s)
			}
		}
		if err != nil {
			log.Warn("google sheets source disabled", zap.String("sheet_id", cfg.SheetID), zap.Error(err))
		}
	}
	if cfg.RemoteURL != "" {
		sources = append(sources, source.NewHTTPSource(cfg.RemoteURL, cfg.Timeout))
	}
	sources = append(sources, &source.FileSource{Path: cfg.Path(cfg.CacheFile)})

	return source.NewResolver(log, sources...)
}
