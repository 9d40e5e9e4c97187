package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrishtravels/routegen/pkg/routegen/dal"
)

const routeTemplate = `<html><body>
<!--HEADER-->
<h1>{origin} to {destination}</h1>
<a href="/book?to={destination_slug}">Book</a>
<p>{distance} km, {duration} hrs</p>
<p>{description}</p>
<img src="{image_url}">
<span id="price-sedan">{price_sedan}</span>
<span id="price-innova">{price_innova}</span>
<span id="price-crysta">{price_crysta}</span>
<span id="price-tempo">{price_tempo}</span>
<!--FOOTER-->
</body></html>`

func mustNormalize(t *testing.T, raw dal.RawRoute) dal.Route {
	t.Helper()
	r, err := dal.Normalize(raw)
	require.NoError(t, err)
	return r
}

func TestRenderResolvesEveryToken(t *testing.T) {
	routes := []dal.RawRoute{
		{"Origin": "Chennai", "Destination": "Pondicherry"},
		{"origin": "Chennai", "destination": "Ooty", "price_sedan": "9000", "description": "Hills"},
		{"Destination": "Tirupati"},
	}
	for _, raw := range routes {
		page := Render(routeTemplate, "<header/>", "<footer/>", mustNormalize(t, raw))
		assert.Empty(t, Unresolved(page))
		assert.NotContains(t, page, HeaderToken)
		assert.NotContains(t, page, FooterToken)
	}
}

func TestRenderDefaults(t *testing.T) {
	page := Render(routeTemplate, "", "", mustNormalize(t, dal.RawRoute{
		"origin":       "Chennai",
		"destination":  "Thiruvarur",
		"distance_km":  320.0,
		"price_innova": "6500",
	}))

	assert.Contains(t, page, `<span id="price-sedan">Ask</span>`)
	assert.Contains(t, page, `<span id="price-innova">6500</span>`)
	assert.Contains(t, page, "320 km, N/A hrs")
	assert.Contains(t, page, "/book?to=thiruvarur")
	assert.Contains(t, page, `src="../assets/images/default-route.jpg"`)
}

func TestRenderInsertsValuesVerbatim(t *testing.T) {
	route := mustNormalize(t, dal.RawRoute{
		"Origin":      "Chennai",
		"Destination": "Ooty",
		"Description": "<b>{origin}</b> & more",
	})

	page := Render(routeTemplate, "", "", route)
	assert.Contains(t, page, "<p><b>{origin}</b> & more</p>", "no escaping and no second substitution pass")

	escaped := Renderer{EscapeHTML: true}.Render(routeTemplate, "", "", route)
	assert.Contains(t, escaped, "<p>&lt;b&gt;{origin}&lt;/b&gt; &amp; more</p>")
}

func TestInjectFragmentsWithoutTokens(t *testing.T) {
	assert.Equal(t, "<p>plain</p>", InjectFragments("<p>plain</p>", "<header/>", "<footer/>"))
}

func TestInjectFragment(t *testing.T) {
	assert.Equal(t, "<nav/><main/>", InjectFragment(MobileNavToken+"<main/>", MobileNavToken, "<nav/>"))
	assert.Equal(t, "<main/>", InjectFragment("<main/>", MobileNavToken, "<nav/>"))
}

func TestRewrite(t *testing.T) {

	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{
			name:     "TopLevelPage",
			in:       `<a href="tariff.html">Tariff</a>`,
			expected: `<a href="../tariff.html">Tariff</a>`,
		},
		{
			name:     "Assets",
			in:       `<img src="assets/images/logo.png"><link href="assets/css/main.css">`,
			expected: `<img src="../assets/images/logo.png"><link href="../assets/css/main.css">`,
		},
		{
			name:     "AlreadyRelative",
			in:       `<a href="../index.html">Home</a>`,
			expected: `<a href="../index.html">Home</a>`,
		},
		{
			name:     "UnknownLink",
			in:       `<a href="gallery.html">Gallery</a><a href="https://wa.me/91">WhatsApp</a>`,
			expected: `<a href="gallery.html">Gallery</a><a href="https://wa.me/91">WhatsApp</a>`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Rewrite(tc.in))
		})
	}
}

func TestRewriteIdempotent(t *testing.T) {
	var b strings.Builder
	for _, p := range TopLevelPages {
		b.WriteString(`<a href="` + p + `">x</a>`)
	}
	once := Rewrite(b.String())
	assert.Equal(t, once, Rewrite(once))
	assert.NotContains(t, once, "../../")
}

func TestNewRewriterExtraPages(t *testing.T) {
	rw := NewRewriter("gallery.html")
	assert.Equal(t, `<a href="../gallery.html">`, rw.Rewrite(`<a href="gallery.html">`))
	assert.Equal(t, `<a href="../blog.html">`, rw.Rewrite(`<a href="blog.html">`))

	dup := NewRewriter(append([]string{"gallery.html", ""}, TopLevelPages...)...)
	assert.Equal(t, `<a href="../gallery.html"><a href="../index.html">`, dup.Rewrite(`<a href="gallery.html"><a href="index.html">`))
}

func TestMarkdownPage(t *testing.T) {
	src := []byte("---\ntitle: About Us\ndescription: Cabs & tours\n---\n# Who we are\n\nOutstation cabs from Chennai.\n")

	body, m, err := Markdown(src)
	require.NoError(t, err)
	assert.Equal(t, "About Us", m.Title)
	assert.Contains(t, body, `<h1 id="who-we-are">Who we are</h1>`)

	page := RenderPage("<title>{title}</title><meta content=\"{description}\"><!--HEADER--><!--CONTENT--><!--FOOTER-->", "<nav/>", "<foot/>", body, m)
	assert.Contains(t, page, "<title>About Us</title>")
	assert.Contains(t, page, `content="Cabs &amp; tours"`)
	assert.Contains(t, page, "<nav/><h1")
	assert.True(t, strings.HasSuffix(page, "<foot/>"))
}
