// Package render turns route records into HTML pages by literal placeholder
// substitution.
//
// There is no template language: a token in the page template is replaced by
// the string form of one record field, and nothing else is evaluated. Values
// are inserted verbatim unless Renderer.EscapeHTML is set, so pages built from
// an untrusted data source should enable it.
package render

import (
	"html"
	"strings"

	"github.com/shrishtravels/routegen/pkg/routegen/dal"
)

// Fragment tokens.
const (
	HeaderToken    = "<!--HEADER-->"
	FooterToken    = "<!--FOOTER-->"
	MobileNavToken = "<!--MOBILE_NAV-->"
	ContentToken   = "<!--CONTENT-->"
)

// Placeholder binds a template token to a Route field.
type Placeholder struct {
	Token string
	Value func(dal.Route) string
}

// Placeholders is the closed set of record tokens a route template may use.
var Placeholders = []Placeholder{
	{"{origin}", func(r dal.Route) string { return r.Origin }},
	{"{destination}", func(r dal.Route) string { return r.Destination }},
	{"{destination_slug}", dal.Route.DestinationSlug},
	{"{distance}", func(r dal.Route) string { return r.DistanceKm }},
	{"{duration}", func(r dal.Route) string { return r.DurationHours }},
	{"{description}", func(r dal.Route) string { return r.Description }},
	{"{image_url}", func(r dal.Route) string { return r.ImageURL }},
	{"{price_sedan}", func(r dal.Route) string { return r.PriceSedan }},
	{"{price_innova}", func(r dal.Route) string { return r.PriceInnova }},
	{"{price_crysta}", func(r dal.Route) string { return r.PriceCrysta }},
	{"{price_tempo}", func(r dal.Route) string { return r.PriceTempo }},
}

// Renderer renders route pages.
type Renderer struct {
	// EscapeHTML escapes record values before substitution.
	EscapeHTML bool
}

// Render injects header and footer into tmpl, then substitutes every record
// placeholder in a single pass, so values that happen to contain a token are
// not substituted again.
func (rr Renderer) Render(tmpl, header, footer string, route dal.Route) string {
	page := InjectFragments(tmpl, header, footer)

	pairs := make([]string, 0, len(Placeholders)*2)
	for _, p := range Placeholders {
		v := p.Value(route)
		if rr.EscapeHTML {
			v = html.EscapeString(v)
		}
		pairs = append(pairs, p.Token, v)
	}
	return strings.NewReplacer(pairs...).Replace(page)
}

// Render renders with the zero Renderer (no escaping).
func Render(tmpl, header, footer string, route dal.Route) string {
	return Renderer{}.Render(tmpl, header, footer, route)
}

// InjectFragments replaces the header and footer tokens when present.
func InjectFragments(tmpl, header, footer string) string {
	tmpl = InjectFragment(tmpl, HeaderToken, header)
	return InjectFragment(tmpl, FooterToken, footer)
}

// InjectFragment replaces token with fragment when the token is present.
func InjectFragment(tmpl, token, fragment string) string {
	if !strings.Contains(tmpl, token) {
		return tmpl
	}
	return strings.ReplaceAll(tmpl, token, fragment)
}

// Unresolved returns the record tokens still present in page. A value that
// itself contains a token leaves it behind.
func Unresolved(page string) []string {
	var left []string
	for _, p := range Placeholders {
		if strings.Contains(page, p.Token) {
			left = append(left, p.Token)
		}
	}
	return left
}
