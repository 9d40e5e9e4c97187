package cmd

const (
	RootCmdName  = "routegen"
	RootCmdShort = "Static site generator for route pages"
	RootCmdLong  = `routegen fetches the route catalog from Google Sheets, a JSON endpoint or
the local cache, renders one HTML page per route from a shared template,
and regenerates the home page and the sitemap.`

	BuildCmdName  = "build"
	BuildCmdShort = "Generate route pages, static pages and the sitemap"
	BuildCmdLong  = `Fetch the route catalog (falling back to the local cache when the remote
source fails), save it to the cache, render every route page and regenerate
the static pages and sitemap. Exits non-zero only when no route data or no
template is available.`

	ServeCmdName  = "serve"
	ServeCmdShort = "Preview the generated site"
	ServeCmdLong  = `Serve the site directory over HTTP together with a /api/routes endpoint
backed by the local route cache.`
)
