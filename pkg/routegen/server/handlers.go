package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/shrishtravels/routegen/pkg/routegen/dal"
)

// GetRoutes defines a GET handler serving the cached route catalog
func (h *httpServer) GetRoutes(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()
	w.Header().Add("Content-Type", "application/json")

	slug, err := validateSlug(w, vars)
	if err != nil {
		h.log.Info("slug validation failed", zap.Error(err))
		return
	}

	filter := routeFilter{
		origin:      strings.TrimSpace(vars.Get("origin")),
		destination: strings.TrimSpace(vars.Get("destination")),
		slug:        slug,
	}

	raw, err := h.cache.Fetch(r.Context())
	if err != nil {
		h.log.Error("reading route cache", zap.String("source", h.cache.Name()), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "route data unavailable")
		return
	}

	resp := dal.RoutesResponse{Routes: []dal.Route{}}
	for _, rr := range raw {
		route, err := dal.Normalize(rr)
		if err != nil {
			continue
		}
		if filter.match(route) {
			resp.Routes = append(resp.Routes, route)
		}
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("encoding routes", zap.Error(err))
	}
}

func validateSlug(w http.ResponseWriter, vars url.Values) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(vars.Get("slug")))
	if slug == "" {
		return "", nil
	}
	if err := dal.ValidateSlug(slug); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", errors.New("invalid slug")
	}
	return slug, nil
}

type routeFilter struct {
	origin      string
	destination string
	slug        string
}

func (f routeFilter) match(r dal.Route) bool {
	if f.origin != "" && !strings.EqualFold(f.origin, r.Origin) {
		return false
	}
	if f.destination != "" && !strings.EqualFold(f.destination, r.Destination) {
		return false
	}
	return f.slug == "" || f.slug == r.Slug
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
