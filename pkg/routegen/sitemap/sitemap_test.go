package sitemap

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	sm := Build(Site{
		Domain:     "www.shrishtravels.com",
		Pages:      []string{"index.html", "tariff.html"},
		RoutesPath: "routes",
		Slugs:      []string{"chennai-to-thiruvarur"},
	}, now)

	expected := []URL{
		{Loc: "https://www.shrishtravels.com/", LastMod: "2026-10-17", Priority: "1.0"},
		{Loc: "https://www.shrishtravels.com/tariff.html", LastMod: "2026-10-17", Priority: "0.8"},
		{Loc: "https://www.shrishtravels.com/routes/chennai-to-thiruvarur.html", LastMod: "2026-10-17", Priority: "0.7"},
	}
	assert.Equal(t, expected, sm.URLs)
}

func TestMarshal(t *testing.T) {
	sm := Build(Site{Domain: "example.com", Pages: []string{"index.html"}, RoutesPath: "routes", Slugs: []string{"chennai-to-ooty"}}, time.Now())

	out, err := sm.Marshal()
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, "<?xml"))
	assert.Contains(t, doc, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, doc, "<loc>https://example.com/routes/chennai-to-ooty.html</loc>")

	var parsed Sitemap
	require.NoError(t, xml.Unmarshal(out, &parsed))
	assert.Len(t, parsed.URLs, 2)
}
