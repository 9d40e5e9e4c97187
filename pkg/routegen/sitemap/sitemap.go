package sitemap

import (
	"encoding/xml"
	"path"
	"strings"
	"time"
)

const (
	Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

	PriorityHome  = "1.0"
	PriorityPage  = "0.8"
	PriorityRoute = "0.7"

	homePage = "index.html"
)

// Sitemap represents the structure of an XML sitemap.
type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL represents a single URL entry in the sitemap.
type URL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
	Priority string `xml:"priority,omitempty"`
}

// Site describes what goes into the sitemap.
type Site struct {
	Domain     string
	Pages      []string
	RoutesPath string
	Slugs      []string
}

// Build lists the static pages followed by one entry per route slug.
func Build(site Site, now time.Time) Sitemap {
	base := "https://" + strings.Trim(site.Domain, "/")
	lastmod := now.Format("2006-01-02")

	sm := Sitemap{Xmlns: Namespace}
	for _, p := range site.Pages {
		u := URL{Loc: base + "/" + p, LastMod: lastmod, Priority: PriorityPage}
		if p == homePage {
			u.Loc = base + "/"
			u.Priority = PriorityHome
		}
		sm.URLs = append(sm.URLs, u)
	}
	for _, slug := range site.Slugs {
		sm.URLs = append(sm.URLs, URL{
			Loc:      base + "/" + path.Join(site.RoutesPath, slug+".html"),
			LastMod:  lastmod,
			Priority: PriorityRoute,
		})
	}
	return sm
}

// Marshal renders the sitemap document with an XML declaration.
func (s Sitemap) Marshal() ([]byte, error) {
	out, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}
