package render

import "strings"

// TopLevelPages are the pages that live at the site root. Fragments link to
// them root-relatively.
var TopLevelPages = []string{
	"index.html",
	"services.html",
	"routes.html",
	"tariff.html",
	"booking.html",
	"career.html",
	"contact.html",
	"blog.html",
	"privacy-policy.html",
	"terms-of-service.html",
}

// assetRefs are attribute prefixes pointing into the root assets directory.
var assetRefs = []string{
	`src="assets/`,
	`href="assets/`,
}

// Rewriter moves root-relative references in a fragment one directory up.
type Rewriter struct {
	replacer *strings.Replacer
}

// NewRewriter builds a Rewriter for TopLevelPages plus any extra pages.
// Duplicates are ignored.
func NewRewriter(extra ...string) *Rewriter {
	seen := make(map[string]bool)
	var pairs []string
	for _, p := range append(append([]string{}, TopLevelPages...), extra...) {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		pairs = append(pairs, `href="`+p+`"`, `href="../`+p+`"`)
	}
	for _, ref := range assetRefs {
		attr, path := splitAttr(ref)
		pairs = append(pairs, ref, attr+"../"+path)
	}
	return &Rewriter{replacer: strings.NewReplacer(pairs...)}
}

// Rewrite returns fragment with every known root-relative reference
// prefixed with "../". Anything not in the table is left alone.
func (r *Rewriter) Rewrite(fragment string) string {
	return r.replacer.Replace(fragment)
}

var defaultRewriter = NewRewriter()

// Rewrite applies the default table.
func Rewrite(fragment string) string {
	return defaultRewriter.Rewrite(fragment)
}

// splitAttr splits `src="assets/` into `src="` and `assets/`.
func splitAttr(ref string) (string, string) {
	i := strings.Index(ref, `"`)
	return ref[:i+1], ref[i+1:]
}
