package builder

// Outcome is the result of generating one route page or static page.
type Outcome struct {
	Index       int
	Slug        string
	Origin      string
	Destination string
	Path        string
	Err         error
}

// OK reports whether the page was written.
func (o Outcome) OK() bool { return o.Err == nil }

// Report summarizes a build.
type Report struct {
	BuildID        string
	Source         string
	CacheWritten   bool
	Routes         []Outcome
	Pages          []Outcome
	SitemapWritten bool
}

// Succeeded counts route pages written.
func (r *Report) Succeeded() int { return countOK(r.Routes) }

// Failed counts route and static pages that were not written.
func (r *Report) Failed() int {
	return len(r.Routes) - countOK(r.Routes) + len(r.Pages) - countOK(r.Pages)
}

// Slugs lists the distinct slugs of written route pages in catalog order.
func (r *Report) Slugs() []string {
	seen := make(map[string]bool)
	var slugs []string
	for _, o := range r.Routes {
		if o.OK() && !seen[o.Slug] {
			seen[o.Slug] = true
			slugs = append(slugs, o.Slug)
		}
	}
	return slugs
}

func countOK(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}
