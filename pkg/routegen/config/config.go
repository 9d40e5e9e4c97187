package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/shrishtravels/routegen/pkg/routegen/render"
)

// EnvPrefix prefixes every environment override, e.g. ROUTEGEN_REMOTE_URL.
const EnvPrefix = "ROUTEGEN"

// Keys shared by flags, the config file and the environment.
const (
	KeyEnv             = "env"
	KeyLogLevel        = "log-level"
	KeySiteDir         = "site-dir"
	KeyDomain          = "domain"
	KeyRemoteURL       = "remote-url"
	KeyTimeout         = "timeout"
	KeySheetID         = "sheet-id"
	KeySheetTab        = "sheet-tab"
	KeyCredentialsFile = "credentials-file"
	KeyCredentialsJSON = "credentials-json"
	KeyCacheFile       = "cache-file"
	KeyOutputDir       = "output-dir"
	KeyTemplate        = "template"
	KeyHeader          = "header"
	KeyFooter          = "footer"
	KeyMobileNav       = "mobile-nav"
	KeyTemplatesDir    = "templates-dir"
	KeyPageLayout      = "page-layout"
	KeyStaticPages     = "static-pages"
	KeySitemap         = "sitemap"
	KeySitemapFile     = "sitemap-file"
	KeySitemapPages    = "sitemap-pages"
	KeyEscapeHTML      = "escape-html"
	KeyAddr            = "addr"
	KeyTrace           = "trace"
)

// Config holds all configuration for a build or a preview server.
type Config struct {
	Env      string
	LogLevel string

	SiteDir   string
	Domain    string
	RemoteURL string
	Timeout   time.Duration

	SheetID         string
	SheetTab        string
	CredentialsFile string
	CredentialsJSON string

	CacheFile    string
	OutputDir    string
	Template     string
	Header       string
	Footer       string
	MobileNav    string
	TemplatesDir string
	PageLayout   string
	StaticPages  []string

	Sitemap      bool
	SitemapFile  string
	SitemapPages []string

	EscapeHTML bool
	Addr       string
	Trace      bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEnv, "development")
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeySiteDir, ".")
	v.SetDefault(KeyDomain, "www.shrishtravels.com")
	v.SetDefault(KeyTimeout, 10*time.Second)
	v.SetDefault(KeySheetTab, "routes")
	v.SetDefault(KeyCredentialsFile, "shrish-credentials.json")
	v.SetDefault(KeyCacheFile, "assets/data/routes.json")
	v.SetDefault(KeyOutputDir, "routes")
	v.SetDefault(KeyTemplate, "route_template.html")
	v.SetDefault(KeyHeader, "components/_header.html")
	v.SetDefault(KeyFooter, "components/_footer.html")
	v.SetDefault(KeyMobileNav, "")
	v.SetDefault(KeyTemplatesDir, "templates")
	v.SetDefault(KeyPageLayout, "templates/_layout.html")
	v.SetDefault(KeyStaticPages, []string{"index.html"})
	v.SetDefault(KeySitemap, true)
	v.SetDefault(KeySitemapFile, "sitemap.xml")
	v.SetDefault(KeySitemapPages, render.TopLevelPages)
	v.SetDefault(KeyEscapeHTML, false)
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyTrace, false)
}

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyCredentialsJSON, "GOOGLE_CREDENTIALS")
	return v
}

// Load reads configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:             v.GetString(KeyEnv),
		LogLevel:        v.GetString(KeyLogLevel),
		SiteDir:         v.GetString(KeySiteDir),
		Domain:          v.GetString(KeyDomain),
		RemoteURL:       v.GetString(KeyRemoteURL),
		Timeout:         v.GetDuration(KeyTimeout),
		SheetID:         v.GetString(KeySheetID),
		SheetTab:        v.GetString(KeySheetTab),
		CredentialsFile: v.GetString(KeyCredentialsFile),
		CredentialsJSON: v.GetString(KeyCredentialsJSON),
		CacheFile:       v.GetString(KeyCacheFile),
		OutputDir:       v.GetString(KeyOutputDir),
		Template:        v.GetString(KeyTemplate),
		Header:          v.GetString(KeyHeader),
		Footer:          v.GetString(KeyFooter),
		MobileNav:       v.GetString(KeyMobileNav),
		TemplatesDir:    v.GetString(KeyTemplatesDir),
		PageLayout:      v.GetString(KeyPageLayout),
		StaticPages:     v.GetStringSlice(KeyStaticPages),
		Sitemap:         v.GetBool(KeySitemap),
		SitemapFile:     v.GetString(KeySitemapFile),
		SitemapPages:    v.GetStringSlice(KeySitemapPages),
		EscapeHTML:      v.GetBool(KeyEscapeHTML),
		Addr:            v.GetString(KeyAddr),
		Trace:           v.GetBool(KeyTrace),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings a build cannot run without.
func (c *Config) Validate() error {
	if c.SiteDir == "" {
		return errors.New("site-dir must not be empty")
	}
	if c.OutputDir == "" {
		return errors.New("output-dir must not be empty")
	}
	if c.CacheFile == "" {
		return errors.New("cache-file must not be empty")
	}
	if c.Template == "" {
		return errors.New("template must not be empty")
	}
	if c.Sitemap && c.Domain == "" {
		return errors.New("domain is required when sitemap is enabled")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

// Path resolves p against SiteDir unless it is absolute.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.SiteDir, p)
}

// RoutesPath is the output directory as a URL path below the site root.
func (c *Config) RoutesPath() string {
	rel, err := filepath.Rel(c.SiteDir, c.Path(c.OutputDir))
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(c.OutputDir)
	}
	return filepath.ToSlash(rel)
}

// Credentials returns the service account key, preferring the inline JSON
// over the key file.
func (c *Config) Credentials() ([]byte, error) {
	if c.CredentialsJSON != "" {
		return []byte(c.CredentialsJSON), nil
	}
	if c.CredentialsFile == "" {
		return nil, errors.New("no credentials configured")
	}
	return os.ReadFile(c.Path(c.CredentialsFile))
}
